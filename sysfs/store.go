package sysfs

import (
	"os"
	"path/filepath"
)

// Store reads the kernel device tree from a real filesystem. The root
// is normally "/" and backs the --sysroot override, which points the
// whole tree at a captured copy of /sys.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	if root == "" {
		root = "/"
	}
	return &Store{root: root}
}

func (store *Store) Read(path string) (string, error) {
	content, err := os.ReadFile(filepath.Join(store.root, path))
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func (store *Store) List(path string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(store.root, path))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

func (store *Store) Exists(path string) bool {
	_, err := os.Stat(filepath.Join(store.root, path))
	return err == nil
}
