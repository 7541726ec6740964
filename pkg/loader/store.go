package loader

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Store indexes loaded action definitions by id.
type Store struct {
	actions map[string]Definition
}

// NewStore builds a store from already parsed definitions. Duplicate ids are
// rejected.
func NewStore(defs ...Definition) (*Store, error) {
	store := &Store{actions: make(map[string]Definition, len(defs))}
	for _, def := range defs {
		if err := store.add(def); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// LoadFS walks the provided filesystem and parses every JSON/YAML action
// definition file. When fsys is nil or holds no definition files the returned
// store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{actions: make(map[string]Definition)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("loader: read %s: %w", path, err)
		}

		defs, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, def := range defs {
			if err := store.add(def); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

func (s *Store) add(def Definition) error {
	id := strings.TrimSpace(def.ID)
	if id == "" {
		return fmt.Errorf("loader: action id is required (file %s)", def.Source)
	}
	if existing, exists := s.actions[id]; exists {
		return fmt.Errorf("loader: duplicate action %q (files %s and %s)", id, existing.Source, def.Source)
	}
	s.actions[id] = def
	return nil
}

// Action returns the definition for the supplied action id.
func (s *Store) Action(id string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	def, ok := s.actions[strings.TrimSpace(id)]
	return def, ok
}

// IDs lists the stored action ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.actions))
	for id := range s.actions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any actions.
func (s *Store) Empty() bool {
	return s == nil || len(s.actions) == 0
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
