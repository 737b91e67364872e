package camera

import (
	"encoding/json"
	"fmt"
	"os"
)

// Segment holds one input for a number of frames.
type Segment struct {
	Input
	Frames int `json:"frames"`
}

// Track is a recorded flight.
type Track []Segment

// Expand returns one Input per frame.
func (tr Track) Expand() []Input {
	var out []Input
	for _, s := range tr {
		for i := 0; i < s.Frames; i++ {
			out = append(out, s.Input)
		}
	}
	return out
}

// LoadTrack reads a JSON array of segments.
func LoadTrack(path string) (Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("camera: read track %s: %w", path, err)
	}
	var tr Track
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("camera: parse track %s: %w", path, err)
	}
	for i, s := range tr {
		if s.Frames < 0 {
			return nil, fmt.Errorf("camera: track %s: segment %d has %d frames", path, i, s.Frames)
		}
	}
	return tr, nil
}
