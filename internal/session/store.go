package session

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Store persists sessions under a base directory, one subdirectory per
// session: metadata.json plus trace.csv.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Metadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Frames    int                `json:"frames"`
	Events    []Event            `json:"events"`
	Stats     map[string]float64 `json:"stats"`
}

// Save writes the recording and returns its session ID.
func (s *Store) Save(rec *Recorder, stats map[string]float64) (string, error) {
	frames, events := rec.Snapshot()

	id := fmt.Sprintf("%s_%s", time.Now().Format("20060102-150405"), rec.ID())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := Metadata{
		ID:        id,
		Timestamp: time.Now(),
		Frames:    len(frames),
		Events:    events,
		Stats:     stats,
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "x", "y", "angle", "expression"}); err != nil {
		return "", err
	}
	for _, f := range frames {
		row := []string{
			strconv.FormatFloat(f.T, 'f', 4, 64),
			strconv.FormatFloat(f.X, 'f', 3, 64),
			strconv.FormatFloat(f.Y, 'f', 3, 64),
			strconv.FormatFloat(f.Angle, 'f', 4, 64),
			f.Expression,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return id, nil
}

func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	sessions := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta Metadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		sessions = append(sessions, meta)
	}
	return sessions, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads the trace back. Malformed rows are skipped.
func (s *Store) LoadFrames(id string) ([]Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Frame{}, nil
	}

	frames := make([]Frame, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 5 {
			continue
		}
		t, err1 := strconv.ParseFloat(rec[0], 64)
		x, err2 := strconv.ParseFloat(rec[1], 64)
		y, err3 := strconv.ParseFloat(rec[2], 64)
		angle, err4 := strconv.ParseFloat(rec[3], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		frames = append(frames, Frame{T: t, X: x, Y: y, Angle: angle, Expression: rec[4]})
	}
	return frames, nil
}
