package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FSStore keeps each document as a JSON file under base/<namespace>/<key>.json.
type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./data"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

// Put writes the document atomically: write to a temp file in the same
// directory, then rename over the destination. Readers never observe a
// half-written record.
func (s *FSStore) Put(namespace, key string, doc []byte) error {
	if !validKey(namespace) || !validKey(key) {
		return fmt.Errorf("%w: %s/%s", ErrBadKey, namespace, key)
	}
	dir := filepath.Join(s.base, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, key+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(dir, key+".json"))
}

func (s *FSStore) Get(namespace, key string) ([]byte, error) {
	if !validKey(namespace) || !validKey(key) {
		return nil, fmt.Errorf("%w: %s/%s", ErrBadKey, namespace, key)
	}
	doc, err := os.ReadFile(filepath.Join(s.base, namespace, key+".json"))
	if os.IsNotExist(err) {
		return nil, ErrNotExist
	}
	return doc, err
}

// List returns every document in the namespace, ordered by key.
func (s *FSStore) List(namespace string) ([][]byte, error) {
	if !validKey(namespace) {
		return nil, fmt.Errorf("%w: %s", ErrBadKey, namespace)
	}
	entries, err := os.ReadDir(filepath.Join(s.base, namespace))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	out := make([][]byte, 0, len(names))
	for _, name := range names {
		doc, err := os.ReadFile(filepath.Join(s.base, namespace, name))
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// validKey rejects anything that could traverse outside the collection
// directory or collide with temp files.
func validKey(k string) bool {
	if k == "" || len(k) > 128 {
		return false
	}
	for _, r := range k {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
