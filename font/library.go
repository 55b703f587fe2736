package font

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/opentype"
)

// Weight is a font weight query, loosely modeled on CSS font-weight
// numeric values (400 = regular, 700 = bold).
type Weight int

const (
	WeightRegular Weight = 400
	WeightBold    Weight = 700
)

// Style selects an italic/upright face.
type Style int

const (
	StyleNormal Style = iota
	StyleItalic
)

// ConstructionError is returned by NewLibrary when the embedded default
// face cannot be parsed. This is fatal: per spec.md §7, a
// ConstructionError at startup means the whole renderer fails to
// construct.
type ConstructionError struct {
	Reason string
}

func (e *ConstructionError) Error() string {
	return "font: construction failed: " + e.Reason
}

// Library indexes system font directories plus one bundled default
// face, and resolves family+weight+style queries to loadable face
// bytes.
//
// Library itself does no fallback-chain reasoning — that is
// FontManager's job (see the fontmanager package). Library only answers
// "does this exact family/weight/style combination exist, and if so
// what are its bytes."
type Library struct {
	searchDirs []string
	embedded   []byte
}

// Option configures a Library at construction.
type Option func(*Library)

// WithSearchDirs overrides the system font directories scanned by
// Resolve. When omitted, a platform-conventional default list is used.
func WithSearchDirs(dirs ...string) Option {
	return func(l *Library) { l.searchDirs = dirs }
}

// NewLibrary constructs a Library. embeddedDefault must be the raw bytes
// of a monospace font face; it is parsed immediately to validate the
// "always succeeds" contract for EmbeddedDefault — if it fails to parse,
// NewLibrary returns a *ConstructionError and the caller must abort
// renderer construction per spec.md §7.
func NewLibrary(embeddedDefault []byte, opts ...Option) (*Library, error) {
	if len(embeddedDefault) == 0 {
		return nil, &ConstructionError{Reason: "embedded default font is empty"}
	}
	if _, err := opentype.Parse(embeddedDefault); err != nil {
		return nil, &ConstructionError{Reason: fmt.Sprintf("embedded default font failed to parse: %v", err)}
	}

	l := &Library{
		embedded:   embeddedDefault,
		searchDirs: defaultSearchDirs(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// EmbeddedDefault returns the bytes of the bundled monospace face. This
// call always succeeds once the Library has been constructed, since
// NewLibrary already validated the bytes parse.
func (l *Library) EmbeddedDefault() []byte {
	return l.embedded
}

// Resolve consults the OS font database for a family+weight+style
// match. A miss returns (nil, false) — a normal "not present" signal
// per spec.md §4.1's FontResolveMiss, not an error. Resolve never
// recurses into fallback search; that is FontManager's responsibility.
func (l *Library) Resolve(family string, weight Weight, style Style) ([]byte, bool) {
	if family == "" {
		return nil, false
	}
	target := normalizeFamily(family)

	for _, dir := range l.searchDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			ext := strings.ToLower(filepath.Ext(name))
			if ext != ".ttf" && ext != ".otf" && ext != ".ttc" {
				continue
			}
			if !matchesFamily(name, target, weight, style) {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				continue
			}
			return data, true
		}
	}
	return nil, false
}

// matchesFamily applies a conservative filename heuristic: the
// normalized family name must appear in the filename, and a requested
// bold/italic style must be reflected by the corresponding filename
// marker. This mirrors how headless font directory scans typically key
// off filename conventions in the absence of a full fontconfig-style
// database.
func matchesFamily(filename, wantFamily string, weight Weight, style Style) bool {
	name := normalizeFamily(strings.TrimSuffix(filename, filepath.Ext(filename)))
	if !strings.Contains(name, wantFamily) {
		return false
	}
	wantBold := weight >= WeightBold
	wantItalic := style == StyleItalic
	hasBold := strings.Contains(name, "bold")
	hasItalic := strings.Contains(name, "italic") || strings.Contains(name, "oblique")
	return hasBold == wantBold && hasItalic == wantItalic
}

func normalizeFamily(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func defaultSearchDirs() []string {
	dirs := []string{
		"/usr/share/fonts",
		"/usr/local/share/fonts",
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".fonts"), filepath.Join(home, ".local/share/fonts"))
	}
	var out []string
	for _, d := range dirs {
		out = append(out, walkableDirs(d)...)
	}
	return out
}

// walkableDirs expands a root into itself plus its immediate
// subdirectories (most system font trees are one level of
// family/vendor subdirectories deep); Resolve's ReadDir call is
// non-recursive by design to keep lookups cheap.
func walkableDirs(root string) []string {
	out := []string{root}
	entries, err := os.ReadDir(root)
	if err != nil {
		return out
	}
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, filepath.Join(root, e.Name()))
		}
	}
	return out
}
