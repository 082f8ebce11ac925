// Package registry holds the files discovered in the saves directory and
// tracks which one is selected.
package registry

import (
	"errors"
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/studiowebux/bl3edit/internal/types"
)

// ErrNotRegistered is returned when selecting a file that is not in the registry
var ErrNotRegistered = errors.New("file is not registered")

// Registry is an ordered, deduplicated list of loaded files plus the selection.
//
// The selection always refers to a value present in Files, except between
// Replace and the next Select or Reselect call: during a reload the previous
// selection is kept so the caller can compare against it.
type Registry struct {
	files       []types.LoadedFile
	selected    types.LoadedFile
	hasSelected bool
}

// New creates an empty registry
func New() *Registry {
	return &Registry{}
}

// Replace swaps the whole file list. Files are sorted by name then kind and
// structural duplicates are dropped. The selection is left as it was.
func (r *Registry) Replace(files []types.LoadedFile) {
	sorted := make([]types.LoadedFile, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Less(sorted[j])
	})

	deduped := sorted[:0]
	for _, f := range sorted {
		if len(deduped) > 0 && deduped[len(deduped)-1].Equal(f) {
			continue
		}
		deduped = append(deduped, f)
	}
	r.files = deduped
}

// Select makes f the current selection. The registered value is stored, not f.
func (r *Registry) Select(f types.LoadedFile) error {
	found, ok := r.Find(f)
	if !ok {
		return ErrNotRegistered
	}
	r.selected = found
	r.hasSelected = true
	return nil
}

// Reselect selects the entry structurally equal to f, falling back to the
// first file. It reports whether f itself was found.
func (r *Registry) Reselect(f types.LoadedFile) (types.LoadedFile, bool) {
	if found, ok := r.Find(f); ok {
		r.selected = found
		r.hasSelected = true
		return found, true
	}

	first, ok := r.First()
	if !ok {
		r.ClearSelection()
		return types.LoadedFile{}, false
	}
	r.selected = first
	r.hasSelected = true
	return first, false
}

// Selected returns the current selection
func (r *Registry) Selected() (types.LoadedFile, bool) {
	return r.selected, r.hasSelected
}

// ClearSelection drops the current selection
func (r *Registry) ClearSelection() {
	r.selected = types.LoadedFile{}
	r.hasSelected = false
}

// Find returns the registered entry structurally equal to f
func (r *Registry) Find(f types.LoadedFile) (types.LoadedFile, bool) {
	i := sort.Search(len(r.files), func(i int) bool {
		return !r.files[i].Less(f)
	})
	if i < len(r.files) && r.files[i].Equal(f) {
		return r.files[i], true
	}
	return types.LoadedFile{}, false
}

// First returns the first file in display order
func (r *Registry) First() (types.LoadedFile, bool) {
	if len(r.files) == 0 {
		return types.LoadedFile{}, false
	}
	return r.files[0], true
}

// Files returns the files in display order. The slice must not be modified.
func (r *Registry) Files() []types.LoadedFile {
	return r.files
}

// Len returns the number of registered files
func (r *Registry) Len() int {
	return len(r.files)
}

// Index returns the position of f in display order, or -1
func (r *Registry) Index(f types.LoadedFile) int {
	for i, candidate := range r.files {
		if candidate.Equal(f) {
			return i
		}
	}
	return -1
}

// fileSource adapts the file list for fuzzy matching
type fileSource []types.LoadedFile

func (s fileSource) String(i int) string { return s[i].FileName }
func (s fileSource) Len() int            { return len(s) }

// Filter returns the files whose name fuzzy-matches query, best match first.
// An empty query returns every file in display order.
func (r *Registry) Filter(query string) []types.LoadedFile {
	if query == "" {
		out := make([]types.LoadedFile, len(r.files))
		copy(out, r.files)
		return out
	}

	matches := fuzzy.FindFrom(query, fileSource(r.files))
	out := make([]types.LoadedFile, 0, len(matches))
	for _, m := range matches {
		out = append(out, r.files[m.Index])
	}
	return out
}
