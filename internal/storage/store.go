package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/phaseviz/internal/config"
	"github.com/san-kum/phaseviz/internal/population"
)

const (
	metadataFile   = "metadata.json"
	populationFile = "population.csv"
	configFile     = "config.yaml"
	AnimationFile  = "animation.gif"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Variant   string             `json:"variant"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	K         float64            `json:"k"`
	Frames    int                `json:"frames"`
	Entities  int                `json:"entities"`
	Tracers   int                `json:"tracers"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// EntityRecord is one row of a population snapshot.
type EntityRecord struct {
	Index    int     `csv:"index"`
	Kind     string  `csv:"kind"`
	Q        float64 `csv:"q"`
	P        float64 `csv:"p"`
	HomeQ    float64 `csv:"home_q"`
	HomeP    float64 `csv:"home_p"`
	Age      int     `csv:"age"`
	Anchored bool    `csv:"anchored"`
}

const (
	KindPrimary = "primary"
	KindTracer  = "tracer"
)

// Snapshot flattens a population into records, primaries first.
func Snapshot(pop *population.Population) []*EntityRecord {
	if pop == nil {
		return nil
	}
	out := make([]*EntityRecord, 0, pop.Len())
	add := func(kind string, es []population.Entity) {
		for i, e := range es {
			out = append(out, &EntityRecord{
				Index:    i,
				Kind:     kind,
				Q:        e.Pos.Q,
				P:        e.Pos.P,
				HomeQ:    e.Home.Q,
				HomeP:    e.Home.P,
				Age:      e.Age,
				Anchored: e.Anchored,
			})
		}
	}
	add(KindPrimary, pop.Primary())
	add(KindTracer, pop.Tracers())
	return out
}

// Save writes a new run directory and returns its ID. cfg and records may be nil.
func (s *Store) Save(meta RunMetadata, cfg *config.Config, records []*EntityRecord) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	runID, runDir, err := s.newRunDir(meta.Variant, meta.Timestamp)
	if err != nil {
		return "", err
	}
	meta.ID = runID

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	if cfg != nil {
		if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
			return "", fmt.Errorf("write config: %w", err)
		}
	}

	if len(records) == 0 {
		return runID, nil
	}
	csvFile, err := os.Create(filepath.Join(runDir, populationFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()
	if err := gocsv.MarshalFile(&records, csvFile); err != nil {
		return "", fmt.Errorf("write population: %w", err)
	}
	return runID, nil
}

func (s *Store) newRunDir(variant string, ts time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%d", variant, ts.Unix())
	runID := base
	for n := 1; ; n++ {
		dir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return runID, dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, n)
	}
}

// Path returns the location of a file inside a run directory.
func (s *Store) Path(runID, name string) string {
	return filepath.Join(s.baseDir, runID, name)
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(s.Path(runID, metadataFile))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadConfig reads the config a run was recorded with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(s.Path(runID, configFile))
}

func (s *Store) LoadPopulation(runID string) ([]*EntityRecord, error) {
	f, err := os.Open(s.Path(runID, populationFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []*EntityRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("read population: %w", err)
	}
	return records, nil
}
