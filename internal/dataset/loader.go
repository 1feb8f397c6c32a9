package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/itinerary"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/model"
	"gopkg.in/yaml.v3"
)

// document is the on-disk shape. A bare list of concerts is also accepted.
type document struct {
	Concerts []model.Concert `yaml:"concerts"`
}

// Decode parses a YAML or JSON dataset. JSON is valid YAML, so one decoder
// serves both.
func Decode(data []byte) ([]model.Concert, error) {
	var list []model.Concert
	if err := yaml.Unmarshal(data, &list); err == nil {
		return checked(list)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return checked(doc.Concerts)
}

func checked(concerts []model.Concert) ([]model.Concert, error) {
	if len(concerts) == 0 {
		return nil, ErrEmptyDataset
	}
	if err := itinerary.Validate(concerts); err != nil {
		return nil, err
	}
	return concerts, nil
}

// LoadFile reads and decodes the dataset at path.
func LoadFile(path string) ([]model.Concert, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	concerts, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return concerts, nil
}

// Source yields the candidate pool for a run.
type Source interface {
	Concerts(ctx context.Context) ([]model.Concert, error)
}

// SampleSource serves the built-in pool.
type SampleSource struct{}

// Concerts implements Source.
func (SampleSource) Concerts(context.Context) ([]model.Concert, error) {
	return Sample(), nil
}

// FileSource reads the pool from a file on every call so edits are picked up.
type FileSource struct {
	Path string
}

// Concerts implements Source.
func (s FileSource) Concerts(context.Context) ([]model.Concert, error) {
	return LoadFile(s.Path)
}

// NewSource returns a FileSource for a non-empty path, SampleSource otherwise.
func NewSource(path string) Source {
	if path == "" {
		return SampleSource{}
	}
	return FileSource{Path: path}
}
