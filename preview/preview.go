// Package preview renders markdown to sanitized HTML and to a plain-text
// line projection suitable for a terminal pane.
package preview

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown source. It is safe to reuse across documents;
// the sanitizer policies are immutable after construction.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	strip  *bluemonday.Policy
}

func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(ghtml.WithHardWraps()),
		),
		policy: bluemonday.UGCPolicy(),
		strip:  bluemonday.StrictPolicy(),
	}
}

// HTML renders markdown source and sanitizes the result. A render failure
// yields an empty document rather than an error; the preview simply shows
// nothing for input goldmark cannot process.
func (r *Renderer) HTML(source string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return ""
	}
	return r.policy.Sanitize(buf.String())
}

var (
	blockEndRe = regexp.MustCompile(`(?i)</(?:p|h[1-6]|li|blockquote|pre|tr|div)>|<br\s*/?>|<hr\s*/?>`)
	headingRe  = regexp.MustCompile(`(?is)<h([1-6])[^>]*>(.*?)</h[1-6]>`)
	bulletRe   = regexp.MustCompile(`(?is)<li[^>]*>`)
)

// Lines flattens rendered markdown into plain-text lines for a terminal
// preview pane. Headings keep a leading marker so structure stays visible
// without styling; list items get a bullet.
func (r *Renderer) Lines(source string) []string {
	doc := r.HTML(source)
	doc = headingRe.ReplaceAllStringFunc(doc, func(m string) string {
		sub := headingRe.FindStringSubmatch(m)
		depth := int(sub[1][0] - '0')
		return strings.Repeat("#", depth) + " " + sub[2] + "\n"
	})
	doc = bulletRe.ReplaceAllString(doc, "• ")
	doc = blockEndRe.ReplaceAllString(doc, "\n")
	doc = r.strip.Sanitize(doc)
	doc = html.UnescapeString(doc)

	raw := strings.Split(doc, "\n")
	lines := make([]string, 0, len(raw))
	blank := true
	for _, line := range raw {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			// Collapse runs of blank lines left behind by stripped tags.
			if !blank {
				lines = append(lines, "")
			}
			blank = true
			continue
		}
		blank = false
		lines = append(lines, line)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
