package session

import (
	"encoding/json"
	"io"
	"os"
)

type exportData struct {
	ID     string             `json:"id"`
	Frames int                `json:"frames"`
	Times  []float64          `json:"times"`
	X      []float64          `json:"x"`
	Y      []float64          `json:"y"`
	Angle  []float64          `json:"angle"`
	Events []Event            `json:"events"`
	Stats  map[string]float64 `json:"stats"`
}

// ExportJSON writes a session as a single JSON document.
func ExportJSON(w io.Writer, meta *Metadata, frames []Frame) error {
	data := exportData{
		ID:     meta.ID,
		Frames: len(frames),
		Times:  make([]float64, len(frames)),
		X:      make([]float64, len(frames)),
		Y:      make([]float64, len(frames)),
		Angle:  make([]float64, len(frames)),
		Events: meta.Events,
		Stats:  meta.Stats,
	}
	for i, f := range frames {
		data.Times[i] = f.T
		data.X[i] = f.X
		data.Y[i] = f.Y
		data.Angle[i] = f.Angle
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONFile writes the export to path.
func ExportJSONFile(path string, meta *Metadata, frames []Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, frames)
}
