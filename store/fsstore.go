package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cormoran/zmk-module-runtime-input-processor/xdg"
)

// FSStore is a reference [Store] backed by one file per key under the
// XDG state directory, grounded directly on the teacher library's
// xdg.StateFile helper: "current state of the application that can be
// reused on a restart" is exactly what a persisted-blob settings record
// is. Production firmware supplies its own non-volatile KV backend;
// FSStore exists so the module is runnable and its persistence-round-
// trip property testable without one.
type FSStore struct {
	// Dir is the subdirectory under $XDG_STATE_HOME keys are namespaced
	// into (e.g. "inputproc"), forming $XDG_STATE_HOME/<Dir>/<key>.
	Dir string
}

// NewFSStore builds an FSStore namespaced under dir.
func NewFSStore(dir string) *FSStore {
	return &FSStore{Dir: dir}
}

// Save implements [Store].
func (s *FSStore) Save(key string, data []byte) error {
	file, err := xdg.StateFile(filepath.Join(s.Dir, key))
	if err != nil {
		return fmt.Errorf("store: save %q: %w", key, err)
	}
	defer file.Close()

	if err := file.Truncate(0); err != nil {
		return fmt.Errorf("store: save %q: %w", key, err)
	}

	if _, err := file.WriteAt(data, 0); err != nil {
		return fmt.Errorf("store: save %q: %w", key, err)
	}

	return nil
}

// Load implements [Store].
func (s *FSStore) Load(key string) ([]byte, bool, error) {
	file, err := xdg.StateFile(filepath.Join(s.Dir, key))
	if err != nil {
		return nil, false, fmt.Errorf("store: load %q: %w", key, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, false, fmt.Errorf("store: load %q: %w", key, err)
	}

	if info.Size() == 0 {
		return nil, false, nil
	}

	data, err := io.ReadAll(file)
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return nil, false, fmt.Errorf("store: load %q: %w", key, err)
	}

	return data, true, nil
}
