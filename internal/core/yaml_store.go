package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// YAMLStore provides generic YAML file I/O operations. Both the run
// configuration and the system configuration load through it.
type YAMLStore[T any] struct {
	path         string
	allowMissing bool // If true, missing file returns zero value instead of error
}

// NewYAMLStore creates a new YAML store for type T at the given path.
// If allowMissing is true, Load() returns the zero value for missing files
// instead of an error.
func NewYAMLStore[T any](path string, allowMissing bool) *YAMLStore[T] {
	return &YAMLStore[T]{path: path, allowMissing: allowMissing}
}

// Path returns the full file path
func (s *YAMLStore[T]) Path() string {
	return s.path
}

// Load reads and unmarshals the YAML file into type T
func (s *YAMLStore[T]) Load() (T, error) {
	var result T

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && s.allowMissing {
			return result, nil // Return zero value
		}
		return result, err
	}

	if err := yaml.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("invalid %s: %w", filepath.Base(s.path), err)
	}

	return result, nil
}

// Save marshals and writes type T to the YAML file
func (s *YAMLStore[T]) Save(data T) error {
	bytes, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(s.path), err)
	}

	if err := os.WriteFile(s.path, bytes, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(s.path), err)
	}

	return nil
}
