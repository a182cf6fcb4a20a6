package hidden

import (
	"encoding/json"
	"errors"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog/log"
)

// Set holds slash separated folder paths relative to the file root.
type Set map[string]struct{}

func (s Set) Has(rel string) bool {
	_, ok := s[rel]
	return ok
}

// Covers reports whether rel or one of its ancestors is hidden.
func (s Set) Covers(rel string) bool {
	for rel != "." && rel != "" {
		if s.Has(rel) {
			return true
		}
		rel = path.Dir(rel)
	}
	return false
}

func (s Set) Sorted() []string {
	list := make([]string, 0, len(s))
	for rel := range s {
		list = append(list, rel)
	}
	slices.Sort(list)
	return list
}

type Store interface {
	// ReadAll returns an empty set and a nil error when nothing is stored
	// yet. On a read or parse failure it returns an empty set with the error.
	ReadAll() (Set, error)
	WriteAll(Set) error
}

// FileStore keeps the set as a JSON array of strings.
type FileStore struct {
	Path string
}

func (f *FileStore) ReadAll() (Set, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Set{}, nil
		}
		return Set{}, err
	}

	var list []string
	if err = json.Unmarshal(data, &list); err != nil {
		return Set{}, err
	}

	set := make(Set, len(list))
	for _, rel := range list {
		set[filepath.ToSlash(rel)] = struct{}{}
	}
	return set, nil
}

func (f *FileStore) WriteAll(set Set) (err error) {
	defer func() {
		if err != nil {
			log.Error().Err(err).Str("Path", f.Path).Msg("Write hidden folders failed")
		}
	}()

	data, err := json.MarshalIndent(set.Sorted(), "", "  ")
	if err != nil {
		return
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.Path), ".hidden-*")
	if err != nil {
		return
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return
	}
	if err = tmp.Close(); err != nil {
		return
	}
	return os.Rename(tmp.Name(), f.Path)
}

// Toggle flips rel in the stored set and reports whether it is now hidden.
// It is a plain read-modify-write; concurrent toggles may lose an update.
func Toggle(s Store, rel string) (hidden bool, err error) {
	set, err := s.ReadAll()
	if err != nil {
		log.Warn().Err(err).Msg("Read hidden folders failed, starting from an empty set")
	}

	rel = filepath.ToSlash(rel)
	if set.Has(rel) {
		delete(set, rel)
	} else {
		set[rel] = struct{}{}
		hidden = true
	}

	err = s.WriteAll(set)
	return
}
