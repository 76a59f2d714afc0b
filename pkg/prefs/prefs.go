// Package prefs persists the client-local printing preference that seeds the
// default template and scale when a print call does not specify them.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// PrintPrefs is the single persisted preference record.
type PrintPrefs struct {
	Template  string `json:"template"`
	Scale     int    `json:"scale"`
	AutoScale bool   `json:"autoScale"`
}

// Defaults returns the preference used when nothing has been persisted yet.
func Defaults() PrintPrefs {
	return PrintPrefs{
		Template:  "58mm",
		Scale:     100,
		AutoScale: true,
	}
}

// Store reads and writes the preference file. Writes go through a temp file
// and rename so a crash never leaves a half-written preference behind.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted preference, or the defaults when the file is
// missing or unreadable. A corrupt file is not an error; printing must keep
// working.
func (s *Store) Load() PrintPrefs {
	p, ok := s.Persisted()
	if !ok {
		return Defaults()
	}
	if p.Scale <= 0 {
		p.Scale = Defaults().Scale
	}
	if p.Template == "" {
		p.Template = Defaults().Template
	}
	return p
}

// Persisted returns the raw preference from disk and whether one was
// actually stored. Callers that layer the preference over another
// configuration source need to tell "nothing persisted" apart from the
// sanitized defaults Load hands out.
func (s *Store) Persisted() (PrintPrefs, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return Defaults(), false
	}

	var p PrintPrefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Defaults(), false
	}
	return p, true
}

// Save persists the preference atomically.
func (s *Store) Save(p PrintPrefs) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("prefs: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("prefs: create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*")
	if err != nil {
		return fmt.Errorf("prefs: create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("prefs: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("prefs: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("prefs: rename into place: %w", err)
	}
	return nil
}
