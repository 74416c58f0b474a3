package template

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

// mergeFS implements fs.FS over an ordered list of filesystems.
// Earlier filesystems shadow later ones.
type mergeFS struct {
	// A cache for minimizing ascertaining which layer holds the template.
	cache map[string]fs.FS

	layers []fs.FS

	mu sync.RWMutex
}

func newMergeFS(layers ...fs.FS) *mergeFS {
	nonNil := make([]fs.FS, 0, len(layers))
	for _, l := range layers {
		if l != nil {
			nonNil = append(nonNil, l)
		}
	}

	return &mergeFS{cache: make(map[string]fs.FS), layers: nonNil}
}

// Open opens the file matching the name from the first layer holding it,
// checking the cache first.
//
// Whenever a file is found and is not present in the cache, it is added.
// Nothing removes references from the cache.
// If a file is removed from a layer at runtime,
// a reference to it from the cache returns the same error (fs.ErrNotExist)
// as if the cache did not have that reference.
func (mfs *mergeFS) Open(name string) (fs.File, error) {
	mfs.mu.RLock()
	layer, ok := mfs.cache[name]
	mfs.mu.RUnlock()
	if ok {
		return layer.Open(name)
	}

	for _, layer := range mfs.layers {
		file, err := layer.Open(name)
		if err == nil {
			mfs.mu.Lock()
			mfs.cache[name] = layer
			mfs.mu.Unlock()

			return file, nil
		}

		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			continue
		}

		return nil, fmt.Errorf("unable to open template %s: %w", name, err)
	}

	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
