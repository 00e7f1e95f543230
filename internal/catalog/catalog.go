// Package catalog loads the on-disk sample layout described in §6.2
// (catalog_root/<set_name>/*.wav) into an in-memory name -> ordered
// byte-slice mapping that the scheduler checks events against.
//
// Grounded on the teacher's internal/storage.LoadFiles (directory scan
// and lexicographic sort) and internal/getbpm.Length (WAV decoding
// with github.com/go-audio/wav), both adapted here to build a byte
// catalog instead of a file browser.
package catalog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-audio/wav"
)

// Catalog is a read-only, post-initialization map of sample set name
// to its ordered list of raw WAV file byte slices (header included),
// one per variation.
type Catalog struct {
	sets map[string][][]byte
}

// Load scans each root's immediate subdirectories as sample sets: every
// .wav file inside a set directory, sorted lexicographically by file
// name, becomes one variation. A file that fails to decode as WAV is
// skipped with a logged warning rather than aborting the whole load —
// catalog loading must tolerate a stray non-audio file.
func Load(roots ...string) (*Catalog, error) {
	c := &Catalog{sets: make(map[string][][]byte)}
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s: %w", root, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			setName := entry.Name()
			setDir := filepath.Join(root, entry.Name())
			variations, err := loadSet(setDir)
			if err != nil {
				log.Printf("catalog: skipping set %s: %v", setName, err)
				continue
			}
			if len(variations) == 0 {
				continue
			}
			c.sets[setName] = append(c.sets[setName], variations...)
		}
	}
	return c, nil
}

func loadSet(dir string) ([][]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	var out [][]byte
	for _, name := range files {
		data, err := decodeWav(filepath.Join(dir, name))
		if err != nil {
			log.Printf("catalog: skipping %s: %v", name, err)
			continue
		}
		out = append(out, data)
	}
	return out, nil
}

// decodeWav validates the file as a real WAV file — the same
// IsValidFile/ReadInfo check the teacher's getbpm package runs before
// trusting a file's duration — then returns its raw bytes as the
// catalog's "ordered sequence of raw sample bytes" payload. The sink
// adapter hands these bytes to the audio back end unchanged; decoding
// PCM frames out of them is that back end's job, not the catalog's.
func decodeWav(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file")
	}
	d.ReadInfo()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return data, nil
}

// Bytes returns the n-th variation's raw sample bytes for name, or
// false on a catalog miss — a missing name or an out-of-range
// variation, both of which §7 requires the scheduler to drop silently
// rather than treat as fatal.
func (c *Catalog) Bytes(name string, n int) ([]byte, bool) {
	variations, ok := c.sets[name]
	if !ok || n < 0 || n >= len(variations) {
		return nil, false
	}
	return variations[n], true
}

// Names returns the sorted list of loaded sample set names.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.sets))
	for name := range c.sets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// VariationCount returns how many variations are loaded for name.
func (c *Catalog) VariationCount(name string) int {
	return len(c.sets[name])
}
