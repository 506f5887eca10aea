// Package catalog loads the ordered question lists the bot asks.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/set-night/intakebot/internal/domain"
)

// LoadError reports a missing or malformed question catalog.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load question catalog %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Catalog holds both question sequences. It is read-only after loading.
type Catalog struct {
	Register []domain.Question
	Consult  []domain.Question
}

// rawQuestion accepts "field" and the legacy "key" as the identifier.
type rawQuestion struct {
	Field    string `json:"field"`
	Key      string `json:"key"`
	Question string `json:"question"`
}

// Load reads one catalog from fsys.
func Load(fsys fs.FS, name string) ([]domain.Question, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}
	return parse(name, data)
}

// LoadFile reads one catalog from disk.
func LoadFile(path string) ([]domain.Question, error) {
	return Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// LoadAll reads the registration and consultation catalogs.
func LoadAll(fsys fs.FS, registerName, consultName string) (*Catalog, error) {
	register, err := Load(fsys, registerName)
	if err != nil {
		return nil, err
	}
	consult, err := Load(fsys, consultName)
	if err != nil {
		return nil, err
	}
	return &Catalog{Register: register, Consult: consult}, nil
}

func parse(source string, data []byte) ([]domain.Question, error) {
	var raw []rawQuestion
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("decode json: %w", err)}
	}
	if len(raw) == 0 {
		return nil, &LoadError{Source: source, Err: domain.ErrEmptyCatalog}
	}

	questions := make([]domain.Question, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, q := range raw {
		field := q.Field
		if field == "" {
			field = q.Key
		}
		if field == "" {
			return nil, &LoadError{Source: source, Err: fmt.Errorf("entry %d: missing field identifier", i)}
		}
		if q.Question == "" {
			return nil, &LoadError{Source: source, Err: fmt.Errorf("entry %d (%s): missing question text", i, field)}
		}
		if seen[field] {
			return nil, &LoadError{Source: source, Err: fmt.Errorf("entry %d: duplicate field %q", i, field)}
		}
		seen[field] = true
		questions = append(questions, domain.Question{Field: field, Prompt: q.Question})
	}
	return questions, nil
}

// IsLoadError reports whether err came from loading a catalog.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
