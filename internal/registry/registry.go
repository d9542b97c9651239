// Package registry keeps the append-only set of group ids a department has
// ever published. Clients use it to validate group codes typed by students,
// so ids are never removed even when a later scrape stops reporting them.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"timetable-go/internal/storage"
)

// Registry is an ordered set of group ids backed by a JSON array file. It is
// not safe for concurrent use; each department run owns its own registry.
type Registry struct {
	path string
	ids  []string
	seen map[string]struct{}
}

// New returns an in-memory registry seeded with ids.
func New(path string, ids ...string) *Registry {
	r := &Registry{path: path, seen: make(map[string]struct{})}
	r.Add(ids...)
	return r
}

// Open reads the registry at path. A missing file is an empty registry. A
// file that is not a JSON array of strings is an error: overwriting it would
// drop ids that must be kept.
func Open(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(path), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", path, err)
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode registry %s: %w", path, err)
	}
	return New(path, ids...), nil
}

// Add appends the ids not yet registered and returns them in order.
func (r *Registry) Add(ids ...string) []string {
	var added []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := r.seen[id]; ok {
			continue
		}
		r.seen[id] = struct{}{}
		r.ids = append(r.ids, id)
		added = append(added, id)
	}
	return added
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id string) bool {
	_, ok := r.seen[id]
	return ok
}

// IDs returns a copy of the registered ids in insertion order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Len is the number of registered ids.
func (r *Registry) Len() int { return len(r.ids) }

// Flush writes the registry atomically. A failed flush leaves the previous
// file in place.
func (r *Registry) Flush() error {
	ids := r.ids
	if ids == nil {
		ids = []string{}
	}
	if err := storage.WriteJSON(r.path, ids); err != nil {
		return fmt.Errorf("flush registry: %w", err)
	}
	return nil
}

// Merge is the per-scrape persistence step: read the registry at path,
// append ids, and flush once if anything was new. It returns the new ids.
func Merge(path string, ids []string) ([]string, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	added := r.Add(ids...)
	if len(added) == 0 {
		return nil, nil
	}
	if err := r.Flush(); err != nil {
		return nil, err
	}
	return added, nil
}
