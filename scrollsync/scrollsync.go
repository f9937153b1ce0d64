// Package scrollsync keeps two scrollable panes aligned proportionally,
// such as a raw editor and its rendered preview.
package scrollsync

import (
	"math"
	"sync"
	"time"
)

// Region is one scrollable pane. Offsets and heights share a unit (cells or
// pixels); ScrollHeight is the full content height, ClientHeight the
// visible portion.
type Region interface {
	ScrollTop() int
	SetScrollTop(top int)
	ScrollHeight() int
	ClientHeight() int
}

// edgeTolerance snaps a pane to the counterpart's edge when it sits within
// this distance of its own top or bottom, so both panes land exactly at the
// boundaries together.
const edgeTolerance = 1

// echoWindow bounds how long a programmatic scroll may go unobserved before
// its suppression token expires. Guards against a pane that swallows the
// write and never reports it back.
const echoWindow = 150 * time.Millisecond

// Synchronizer mirrors scrolling between two regions. Each programmatic
// write arms a token on the written pane; the next scroll event from that
// pane consumes the token instead of echoing back, which is what breaks the
// feedback loop between the two panes.
type Synchronizer struct {
	mu      sync.Mutex
	first   Region
	second  Region
	pending [2]int
}

func New(first, second Region) *Synchronizer {
	return &Synchronizer{first: first, second: second}
}

// FirstScrolled reports a scroll event on the first region and mirrors it
// to the second.
func (s *Synchronizer) FirstScrolled() { s.propagate(0) }

// SecondScrolled reports a scroll event on the second region and mirrors it
// to the first.
func (s *Synchronizer) SecondScrolled() { s.propagate(1) }

func (s *Synchronizer) propagate(src int) {
	s.mu.Lock()
	if s.pending[src] > 0 {
		s.pending[src]--
		s.mu.Unlock()
		return
	}
	from, to := s.first, s.second
	dst := 1
	if src == 1 {
		from, to = s.second, s.first
		dst = 0
	}
	target := mirror(from, to)
	if target == to.ScrollTop() {
		s.mu.Unlock()
		return
	}
	s.pending[dst]++
	idx := dst
	time.AfterFunc(echoWindow, func() {
		s.mu.Lock()
		if s.pending[idx] > 0 {
			s.pending[idx]--
		}
		s.mu.Unlock()
	})
	s.mu.Unlock()
	to.SetScrollTop(target)
}

// mirror computes the destination offset matching the source's relative
// scroll position. Positions within edgeTolerance of the source's top or
// bottom snap to the destination's corresponding edge.
func mirror(from, to Region) int {
	fromMax := from.ScrollHeight() - from.ClientHeight()
	toMax := to.ScrollHeight() - to.ClientHeight()
	if toMax < 0 {
		toMax = 0
	}
	top := from.ScrollTop()
	if fromMax <= 0 || top <= edgeTolerance {
		return 0
	}
	if top >= fromMax-edgeTolerance {
		return toMax
	}
	ratio := float64(top) / float64(fromMax)
	if ratio > 1 {
		ratio = 1
	}
	return int(math.Round(ratio * float64(toMax)))
}
