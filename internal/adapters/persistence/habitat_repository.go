package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

// FileHabitatRepository stores habitats as JSON files
type FileHabitatRepository struct{}

// NewFileHabitatRepository creates a new file-backed habitat repository
func NewFileHabitatRepository() *FileHabitatRepository {
	return &FileHabitatRepository{}
}

// Load reads and decodes the habitat at path
func (r *FileHabitatRepository) Load(ctx context.Context, path string) (habitat.HabitatState, error) {
	if err := ctx.Err(); err != nil {
		return habitat.HabitatState{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return habitat.HabitatState{}, fmt.Errorf("failed to read habitat: %w", err)
	}
	state, err := DecodeHabitat(data)
	if err != nil {
		return habitat.HabitatState{}, fmt.Errorf("%s: %w", path, err)
	}
	return state, nil
}

// Save writes state to path, replacing any existing file atomically
func (r *FileHabitatRepository) Save(ctx context.Context, path string, state habitat.HabitatState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := EncodeHabitat(state)
	if err != nil {
		return fmt.Errorf("failed to encode habitat: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create habitat directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".habitat-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write habitat: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write habitat: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to save habitat: %w", err)
	}
	return nil
}

// Encode renders state in the compact wire format
func (r *FileHabitatRepository) Encode(state habitat.HabitatState) ([]byte, error) {
	return EncodeHabitat(state)
}

// Decode parses the wire format
func (r *FileHabitatRepository) Decode(data []byte) (habitat.HabitatState, error) {
	return DecodeHabitat(data)
}
