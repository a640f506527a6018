package sessions

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/opencourse/opencourse/internal/file"
	"github.com/pkg/errors"
)

// FileStore is a Store persisted as a JSON file on the local filesystem,
// typically somewhere under the user's home directory. It survives process
// restarts, which makes it the durable half of a session-- the Session
// itself is reconstructed from this store on every startup.
type FileStore struct {
	path    string
	mu      sync.Mutex
	entries map[string]string
}

// NewFileStore returns a FileStore backed by the file at the given path,
// loading any entries a previous process persisted there.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		entries: map[string]string{},
	}
	if !file.Exists(path) {
		return s, nil
	}
	entriesBytes, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading session file at %s", path)
	}
	if err := json.Unmarshal(entriesBytes, &s.entries); err != nil {
		return nil, errors.Wrapf(err, "error parsing session file at %s", path)
	}
	return s, nil
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.entries[key]
	return value, ok
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return s.persist()
}

func (s *FileStore) SetAll(entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = map[string]string{}
	for k, v := range entries {
		s.entries[k] = v
	}
	return s.persist()
}

func (s *FileStore) RemoveAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = map[string]string{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "error deleting session file at %s", s.path)
	}
	return nil
}

// persist writes the current entries to disk. Callers must hold s.mu.
func (s *FileStore) persist() error {
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(
				err,
				"error checking for existence of directory %s",
				dir,
			)
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return errors.Wrapf(err, "error creating directory %s", dir)
		}
	}
	entriesBytes, err := json.Marshal(s.entries)
	if err != nil {
		return errors.Wrap(err, "error marshaling session entries")
	}
	if err := ioutil.WriteFile(s.path, entriesBytes, 0600); err != nil {
		return errors.Wrapf(err, "error writing to %s", s.path)
	}
	return nil
}
