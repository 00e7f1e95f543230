// Package diag writes the small JSON startup snapshot the CLI emits
// next to its debug log, in the same jsoniter idiom the teacher's
// internal/storage package uses for its own on-disk state
// (var json = jsoniter.ConfigCompatibleWithStandardLibrary, then
// json.Marshal) — see DESIGN.md.
package diag

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Snapshot is the startup state dumped alongside the debug log: which
// sample sets loaded, and what got installed on which channel.
type Snapshot struct {
	SampleSets []string          `json:"sample_sets"`
	Channels   map[string]string `json:"channels"`
	OSCHost    string            `json:"osc_host"`
	OSCPort    int               `json:"osc_port"`
}

// WriteFile marshals snap as indented JSON and writes it to path.
func WriteFile(path string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("diag: marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("diag: write %s: %w", path, err)
	}
	return nil
}
