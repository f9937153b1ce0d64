package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// EditorConfigSettings holds the .editorconfig properties honored when
// saving a document. Zero values mean the property was not set.
type EditorConfigSettings struct {
	EndOfLine              string // "lf" or "crlf"
	TrimTrailingWhitespace *bool
	InsertFinalNewline     *bool
	Charset                string // "utf-8", "utf-8-bom", "latin1", ...
}

// FindEditorConfig searches for .editorconfig files from the file's
// directory upward, parses sections matching the file name, and returns
// the merged settings. Returns nil when nothing applies.
func FindEditorConfig(filePath string) *EditorConfigSettings {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil
	}

	fileName := filepath.Base(absPath)
	dir := filepath.Dir(absPath)

	// Collect matching sections from closest to farthest.
	var configs []map[string]string
	for {
		ecPath := filepath.Join(dir, ".editorconfig")
		props, isRoot := parseEditorConfig(ecPath, fileName)
		if props != nil {
			configs = append(configs, props)
		}
		if isRoot {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if len(configs) == 0 {
		return nil
	}

	// Closer files win, so apply farthest first and overwrite.
	merged := make(map[string]string)
	for i := len(configs) - 1; i >= 0; i-- {
		for k, v := range configs[i] {
			merged[k] = v
		}
	}

	return settingsFromMap(merged)
}

// parseEditorConfig reads one .editorconfig file and returns the merged
// properties of sections matching fileName. The bool reports whether
// root = true was seen, which stops the upward search.
func parseEditorConfig(path, fileName string) (map[string]string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	props := make(map[string]string)
	isRoot := false
	inMatchingSection := false
	inPreamble := true

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}

		if line[0] == '[' && line[len(line)-1] == ']' {
			inPreamble = false
			pattern := line[1 : len(line)-1]
			inMatchingSection = matchPattern(pattern, fileName)
			continue
		}

		eqIdx := strings.IndexByte(line, '=')
		if eqIdx < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:eqIdx]))
		value := strings.ToLower(strings.TrimSpace(line[eqIdx+1:]))

		if inPreamble && key == "root" && value == "true" {
			isRoot = true
			continue
		}

		if inMatchingSection {
			props[key] = value
		}
	}

	if len(props) == 0 {
		return nil, isRoot
	}
	return props, isRoot
}

// matchPattern checks a file name against an editorconfig glob,
// expanding {a,b} alternatives and testing each with filepath.Match.
func matchPattern(pattern, fileName string) bool {
	for _, p := range expandBraces(pattern) {
		if matched, _ := filepath.Match(p, fileName); matched {
			return true
		}
	}
	return false
}

func expandBraces(pattern string) []string {
	braceStart := strings.IndexByte(pattern, '{')
	if braceStart < 0 {
		return []string{pattern}
	}

	braceEnd := -1
	depth := 0
	for i := braceStart; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				braceEnd = i
			}
		}
		if braceEnd >= 0 {
			break
		}
	}
	if braceEnd < 0 {
		return []string{pattern}
	}

	prefix := pattern[:braceStart]
	suffix := pattern[braceEnd+1:]

	var results []string
	for _, alt := range splitAlternatives(pattern[braceStart+1 : braceEnd]) {
		results = append(results, expandBraces(prefix+alt+suffix)...)
	}
	return results
}

// splitAlternatives splits "a,b,c" respecting nested braces.
func splitAlternatives(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func settingsFromMap(m map[string]string) *EditorConfigSettings {
	s := &EditorConfigSettings{}
	hasAny := false

	if v, ok := m["end_of_line"]; ok && (v == "lf" || v == "crlf") {
		s.EndOfLine = v
		hasAny = true
	}
	if v, ok := m["trim_trailing_whitespace"]; ok {
		b := v == "true"
		s.TrimTrailingWhitespace = &b
		hasAny = true
	}
	if v, ok := m["insert_final_newline"]; ok {
		b := v == "true"
		s.InsertFinalNewline = &b
		hasAny = true
	}
	if v, ok := m["charset"]; ok {
		s.Charset = v
		hasAny = true
	}

	if !hasAny {
		return nil
	}
	return s
}
