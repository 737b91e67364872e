package batch

import (
	"encoding/json"
	"os"

	"raymarch-renderer/internal/mathutil"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Index    int           `json:"index"`
	Image    string        `json:"image"`
	Preview  string        `json:"preview,omitempty"`
	Position mathutil.Vec3 `json:"position"`
	Pitch    float64       `json:"pitch"`
	Yaw      float64       `json:"yaw"`
	Forward  mathutil.Vec3 `json:"forward"`
	Right    mathutil.Vec3 `json:"right"`
	Up       mathutil.Vec3 `json:"up"`
}

// WriteManifest writes manifest.json for the successfully rendered frames.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		tr := r.Shot.Transform
		entries = append(entries, ManifestEntry{
			Index:    r.Shot.Index,
			Image:    r.Image,
			Preview:  r.Preview,
			Position: tr.Position,
			Pitch:    tr.Pitch,
			Yaw:      tr.Yaw,
			Forward:  tr.Forward(),
			Right:    tr.Right(),
			Up:       tr.Up(),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
