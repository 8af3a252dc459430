package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/bifurcation/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	pointsFile   = "points.csv"
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
	ID        string        `json:"id"`
	Map       string        `json:"map"`
	MapID     int           `json:"map_id"`
	Timestamp time.Time     `json:"timestamp"`
	X0        float64       `json:"x0"`
	RMin      float64       `json:"r_min"`
	RMax      float64       `json:"r_max"`
	RPoints   int           `json:"r_points"`
	Skip      int           `json:"skip"`
	Samples   int           `json:"samples"`
	Workers   int           `json:"workers"`
	Points    int           `json:"points"`
	Elapsed   time.Duration `json:"elapsed_ns"`
}

// Save writes a run directory holding metadata.json and points.csv and
// returns the run id. meta.ID, Timestamp and Points are filled in by Save.
func (s *Store) Save(meta RunMetadata, points []dynamo.Point) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Map, now.UnixNano())
	meta.Timestamp = now
	meta.Points = len(points)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writePoints(filepath.Join(runDir, pointsFile), points); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writePoints(path string, points []dynamo.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"r", "x"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.Param, 'g', -1, 64),
			strconv.FormatFloat(p.State, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

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

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadPoints reads the points of a run. Values are stored with full
// precision, so NaN and Inf states survive the round trip.
func (s *Store) LoadPoints(runID string) ([]dynamo.Point, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, pointsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 2

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []dynamo.Point{}, nil
	}

	points := make([]dynamo.Point, 0, len(records)-1)
	for i, record := range records[1:] {
		param, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", pointsFile, i+2, err)
		}
		state, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", pointsFile, i+2, err)
		}
		points = append(points, dynamo.Point{Param: param, State: state})
	}

	return points, nil
}
