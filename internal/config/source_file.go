package config

import (
	"context"
	"os"

	"github.com/chaosforge/damage-api/internal/errors"
)

// FileSource loads configuration documents from a yaml file on disk.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed document source.
func NewFileSource(path string) (*FileSource, error) {
	if path == "" {
		return nil, errors.InvalidArgument("path is required")
	}
	return &FileSource{path: path}, nil
}

// Load reads and decodes the document set.
func (s *FileSource) Load(_ context.Context) (*Documents, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeConfiguration, "failed to read configuration file %s", s.path)
	}
	return ParseDocuments(data)
}
