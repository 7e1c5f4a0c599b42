// Package pipeline drives a comparative run from configuration discovery to
// the written report.
package pipeline

import (
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultPattern is where funnel configurations are looked up.
const DefaultPattern = "configs/*.yaml"

// ConfigRef identifies one funnel configuration.
type ConfigRef struct {
	Path string
	Name string // display name: NFC-normalized base name, unique per run
}

// NewConfigRef derives the display name from path.
func NewConfigRef(path string) ConfigRef {
	return ConfigRef{Path: path, Name: norm.NFC.String(filepath.Base(path))}
}

// stem is the display name without its extension. Exports are named after
// it, so it must be unique too.
func (r ConfigRef) stem() string {
	return strings.TrimSuffix(r.Name, filepath.Ext(r.Name))
}

// Discover expands pattern and returns the matches sorted by path, so row
// and section order do not depend on directory listing order. No match is
// not an error.
func Discover(pattern string) ([]ConfigRef, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, &ConfigurationDiscoveryError{Pattern: pattern, Err: err}
	}
	sort.Strings(paths)

	refs := make([]ConfigRef, 0, len(paths))
	owner := make(map[string]string, len(paths))
	for _, p := range paths {
		ref := NewConfigRef(p)
		if prev, dup := owner[ref.stem()]; dup {
			return nil, &ConfigurationDiscoveryError{
				Pattern: pattern,
				Err:     &DuplicateNameError{Name: ref.stem(), Paths: [2]string{prev, p}},
			}
		}
		owner[ref.stem()] = p
		refs = append(refs, ref)
	}
	return refs, nil
}
