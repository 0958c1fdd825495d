package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"stayscan/hotelworker/internal/scraper"
	"stayscan/hotelworker/logger"
	apperr "stayscan/hotelworker/pkg/errors"
)

// JSONWriter persists crawl documents as indented JSON files under a data
// directory, creating the directory on first save.
type JSONWriter struct {
	dataDir string
	log     *logger.Logger
}

// NewJSONWriter creates a writer rooted at dataDir
func NewJSONWriter(dataDir string) *JSONWriter {
	return &JSONWriter{dataDir: dataDir, log: logger.ForStorage()}
}

// Save writes the document to dataDir/filename and returns the full path
func (w *JSONWriter) Save(doc *scraper.Document, filename string) (string, error) {
	if err := os.MkdirAll(w.dataDir, 0o755); err != nil {
		return "", apperr.NewStorage("mkdir", "failed to create data directory", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", apperr.NewStorage("marshal", "failed to encode document", err)
	}

	path := filepath.Join(w.dataDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperr.NewStorage("write", "failed to write "+path, err)
	}
	w.log.Debug().Str("path", path).Int("bytes", len(data)).Msg("Wrote document")
	return path, nil
}
