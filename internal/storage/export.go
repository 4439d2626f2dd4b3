package storage

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
)

type ExportData struct {
	Run        RunMetadata     `json:"run"`
	Population []*EntityRecord `json:"population"`
}

// ExportJSON writes a run's metadata and population snapshot as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	records, err := s.LoadPopulation(runID)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: *meta, Population: records})
}
