// Package scanner discovers translatable strings in theme and plugin source
// files by matching gettext-style marker function calls, feeding the results
// into the string catalog. Discovery is idempotent: a string's catalog id is
// derived from its text and domain, so re-scanning never duplicates entries.
package scanner

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nesmachny/translio"
	"github.com/nesmachny/translio/catalog"
)

// SupportedExtensions lists file extensions scanned for marker calls.
var SupportedExtensions = map[string]bool{
	".php":  true,
	".inc":  true,
	".js":   true,
	".jsx":  true,
	".ts":   true,
	".tsx":  true,
	".twig": true,
}

// skipDirs contains directory names to skip during source file scanning.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"cache":        true,
}

// markerPattern matches gettext-style marker calls with two or three quoted
// arguments: __('text', 'domain'), _e("text", "domain"),
// _x('text', 'context', 'domain') and the esc_* variants.
// RE2 has no backreferences, so single- and double-quoted strings are
// separate alternatives.
var markerPattern = regexp.MustCompile(
	`\b(__|_e|_x|esc_html__|esc_attr__|esc_html_e|esc_attr_e)\s*\(\s*` +
		quoted + `\s*,\s*(?:` + quoted + `\s*,\s*)?` + quoted + `\s*\)`)

const quoted = `("(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*')`

// Found is one discovered marker call.
type Found struct {
	Text    string
	Domain  string
	Context string // disambiguation argument of _x-style markers
	File    string
	Line    int
}

// ID returns the string's deterministic catalog id.
func (f Found) ID() string {
	return translio.StringID(f.Text, f.Domain)
}

// ScanDir walks root and scans every supported source file. Common
// non-source directories are skipped.
func ScanDir(root string) ([]Found, error) {
	var all []Found
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !SupportedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		found, err := ScanFile(path)
		if err != nil {
			return err
		}
		all = append(all, found...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// ScanFile scans one source file line by line.
func ScanFile(path string) ([]Found, error) {
	f, err := os.Open(path) // #nosec G304 - scanning user-specified source trees
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var found []Found
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		for _, m := range matchLine(scanner.Text()) {
			m.File = path
			m.Line = line
			found = append(found, m)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return found, nil
}

// ScanSource scans an in-memory source string; file/line metadata is left empty.
func ScanSource(src string) []Found {
	var found []Found
	for _, line := range strings.Split(src, "\n") {
		found = append(found, matchLine(line)...)
	}
	return found
}

func matchLine(line string) []Found {
	var out []Found
	for _, m := range markerPattern.FindAllStringSubmatch(line, -1) {
		text := unquote(m[2])
		middle := m[3] // context arg of three-argument markers; empty otherwise
		domain := unquote(m[4])
		if text == "" || domain == "" {
			continue
		}
		f := Found{Text: text, Domain: domain}
		if middle != "" {
			f.Context = unquote(middle)
		}
		out = append(out, f)
	}
	return out
}

// unquote strips the surrounding quotes and resolves simple escapes.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	q := s[0]
	body := s[1 : len(s)-1]
	switch q {
	case '\'':
		body = strings.ReplaceAll(body, `\'`, `'`)
	case '"':
		body = strings.ReplaceAll(body, `\"`, `"`)
	}
	return strings.ReplaceAll(body, `\\`, `\`)
}

// RecordAll records every found string into the catalog, deduplicating by
// derived id. Returns how many distinct strings were recorded.
func RecordAll(ctx context.Context, cat catalog.Catalog, found []Found) (int, error) {
	seen := make(map[string]bool, len(found))
	for _, f := range found {
		id := f.ID()
		if seen[id] {
			continue
		}
		seen[id] = true
		err := cat.RecordString(ctx, catalog.ScannedString{
			ID:      id,
			Text:    f.Text,
			Domain:  f.Domain,
			Context: f.Context,
		})
		if err != nil {
			return len(seen), err
		}
	}
	return len(seen), nil
}
