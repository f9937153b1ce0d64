package editor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fileState is the remembered viewing position for one document, so
// reopening a file lands where the user left off.
type fileState struct {
	Path      string `json:"path"`
	Caret     int    `json:"caret"`
	ScrollRow int    `json:"scroll_row"`
}

func sessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "markedit", "sessions")
}

func sessionPath(filePath string) string {
	hash := sha256.Sum256([]byte(filePath))
	return filepath.Join(sessionDir(), fmt.Sprintf("%x.json", hash[:8]))
}

func (e *Editor) saveSession() {
	if e.doc.Path == "" {
		return
	}
	state := fileState{
		Path:      e.doc.Path,
		Caret:     e.caretOffset(),
		ScrollRow: e.scrollRow,
	}
	dir := sessionDir()
	if dir == "" {
		return
	}
	os.MkdirAll(dir, 0755)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return
	}
	os.WriteFile(sessionPath(e.doc.Path), data, 0644)
}

func (e *Editor) restoreSession() bool {
	if e.doc.Path == "" {
		return false
	}
	data, err := os.ReadFile(sessionPath(e.doc.Path))
	if err != nil {
		return false
	}
	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		return false
	}
	if state.Path != e.doc.Path {
		return false
	}
	e.ctrl.SetSelection(state.Caret, state.Caret)
	e.anchor, _ = e.ctrl.Selection()
	// Not clamped here: the row model does not exist until the first
	// layout pass, which clamps the scroll itself.
	e.scrollRow = state.ScrollRow
	return true
}
