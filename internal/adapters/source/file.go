package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/tally/internal/domain/model"
	"github.com/okian/tally/pkg/metrics"
)

// FileSource loads resources from a local directory laid out the same way
// as the HTTP source: config.json plus month<ID>.json files.
type FileSource struct {
	dir string
}

// NewFileSource creates a directory-backed source.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Dir returns the backing directory, for wiring a change watcher.
func (s *FileSource) Dir() string {
	return s.dir
}

// Manifest reads and parses config.json.
func (s *FileSource) Manifest(_ context.Context) (Manifest, error) {
	data, err := s.read(manifestFile)
	if err != nil {
		return Manifest{}, err
	}
	return parseManifest(data)
}

// Month reads and parses month<ID>.json.
func (s *FileSource) Month(_ context.Context, id string) (model.Month, error) {
	data, err := s.read(monthFile(id))
	if err != nil {
		metrics.RecordMonthLoadFailure(metrics.ReasonLoad)
		return model.Month{}, err
	}

	month, err := parseMonth(id, data)
	if err != nil {
		metrics.RecordMonthLoadFailure(metrics.ReasonParse)
		return model.Month{}, err
	}

	metrics.RecordMonthLoad()
	return month, nil
}

func (s *FileSource) read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", name, ErrLoad, err)
	}
	return data, nil
}
