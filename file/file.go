// Package file loads and saves documents, handling encoding detection,
// line-ending preservation, and save-time cleanup.
package file

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"markedit/textenc"
)

// MaxSize guards against opening files the editor cannot hold comfortably.
const MaxSize = 100 << 20

// ErrTooLarge is returned for files over MaxSize.
var ErrTooLarge = errors.New("file too large to open")

// Line-ending labels as shown in the status bar.
const (
	LF   = "LF"
	CRLF = "CRLF"
)

// Document is an open file: its text normalized to LF line endings, plus
// the metadata needed to write it back the way it was found.
type Document struct {
	Path       string
	Text       string
	Encoding   string
	LineEnding string
	ReadOnly   bool
}

// SaveOptions control save-time cleanup.
type SaveOptions struct {
	TrimTrailingSpace  bool
	InsertFinalNewline bool
}

// NewDocument returns an empty untitled document with default metadata.
func NewDocument() *Document {
	return &Document{Encoding: textenc.UTF8, LineEnding: LF}
}

// Read opens path and decodes it. A missing file yields a fresh document
// bound to the path, so "open then save" creates it.
func Read(path string) (*Document, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		doc := NewDocument()
		doc.Path = path
		return doc, nil
	}
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxSize {
		return nil, ErrTooLarge
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	enc := textenc.Detect(raw)
	// Binary-looking content opens read-only rather than not at all.
	binary := enc == textenc.UTF8 && looksBinary(raw)
	text, err := textenc.Decode(raw, enc)
	if err != nil {
		return nil, err
	}
	ending := LF
	if strings.Contains(text, "\r\n") {
		ending = CRLF
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	readOnly := binary || info.Mode().Perm()&0200 == 0
	return &Document{
		Path:       path,
		Text:       text,
		Encoding:   enc,
		LineEnding: ending,
		ReadOnly:   readOnly,
	}, nil
}

// looksBinary samples the head of the data for NUL bytes, which never
// appear in the text encodings read without a BOM.
func looksBinary(data []byte) bool {
	n := len(data)
	if n > 8192 {
		n = 8192
	}
	for _, b := range data[:n] {
		if b == 0 {
			return true
		}
	}
	return false
}

// Content builds the exact bytes-to-be of a save: cleanup applied, line
// endings restored, still UTF-8. Split out from Save so callers can diff
// against the on-disk state.
func (d *Document) Content(text string, opts SaveOptions) string {
	if opts.TrimTrailingSpace {
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimRight(line, " \t")
		}
		text = strings.Join(lines, "\n")
	}
	if opts.InsertFinalNewline && text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if d.LineEnding == CRLF {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	return text
}

// Save writes text to the document's path in its encoding, applying the
// cleanup options, and updates d.Text to what was written (in normalized
// form).
func (d *Document) Save(text string, opts SaveOptions) error {
	if d.Path == "" {
		return errors.New("no file name")
	}
	out := d.Content(text, opts)
	raw, err := textenc.Encode(out, d.Encoding)
	if err != nil {
		return err
	}
	if err := os.WriteFile(d.Path, raw, 0644); err != nil {
		return err
	}
	d.Text = strings.ReplaceAll(out, "\r\n", "\n")
	return nil
}
