package catalog

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// writeMinimalWav writes a valid 16-bit PCM mono WAV file containing
// payload as its data chunk, using a hand-built canonical 44-byte
// header rather than a library encoder.
func writeMinimalWav(t *testing.T, path string, payload []byte) {
	t.Helper()
	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+len(payload)))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], 1) // mono
	binary.LittleEndian.PutUint32(header[24:28], 44100)
	binary.LittleEndian.PutUint32(header[28:32], 44100*2)
	binary.LittleEndian.PutUint16(header[32:34], 2)
	binary.LittleEndian.PutUint16(header[34:36], 16)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(len(payload)))

	out := append(header[:], payload...)
	assert.NoError(t, os.WriteFile(path, out, 0o644))
}

func TestLoadReadsSetsAndVariationsSorted(t *testing.T) {
	root := t.TempDir()
	bdDir := filepath.Join(root, "bd")
	assert.NoError(t, os.MkdirAll(bdDir, 0o755))
	writeMinimalWav(t, filepath.Join(bdDir, "1.wav"), []byte{1, 2, 3, 4})
	writeMinimalWav(t, filepath.Join(bdDir, "0.wav"), []byte{5, 6, 7, 8})

	cpDir := filepath.Join(root, "cp")
	assert.NoError(t, os.MkdirAll(cpDir, 0o755))
	writeMinimalWav(t, filepath.Join(cpDir, "0.wav"), []byte{9, 9})

	c, err := Load(root)
	assert.NoError(t, err)

	assert.Equal(t, []string{"bd", "cp"}, c.Names())
	assert.Equal(t, 2, c.VariationCount("bd"))
	assert.Equal(t, 1, c.VariationCount("cp"))

	first, ok := c.Bytes("bd", 0)
	assert.True(t, ok)
	assert.Contains(t, string(first), string([]byte{5, 6, 7, 8}))

	second, ok := c.Bytes("bd", 1)
	assert.True(t, ok)
	assert.Contains(t, string(second), string([]byte{1, 2, 3, 4}))
}

func TestBytesMissesAreReportedNotFatal(t *testing.T) {
	root := t.TempDir()
	bdDir := filepath.Join(root, "bd")
	assert.NoError(t, os.MkdirAll(bdDir, 0o755))
	writeMinimalWav(t, filepath.Join(bdDir, "0.wav"), []byte{1})

	c, err := Load(root)
	assert.NoError(t, err)

	_, ok := c.Bytes("missing", 0)
	assert.False(t, ok)

	_, ok = c.Bytes("bd", 5)
	assert.False(t, ok)

	_, ok = c.Bytes("bd", -1)
	assert.False(t, ok)
}

func TestLoadToleratesStrayNonAudioFile(t *testing.T) {
	root := t.TempDir()
	bdDir := filepath.Join(root, "bd")
	assert.NoError(t, os.MkdirAll(bdDir, 0o755))
	writeMinimalWav(t, filepath.Join(bdDir, "0.wav"), []byte{1, 2})
	assert.NoError(t, os.WriteFile(filepath.Join(bdDir, "readme.txt"), []byte("not audio"), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(bdDir, "1.wav"), []byte("not a wav file at all"), 0o644))

	c, err := Load(root)
	assert.NoError(t, err)
	assert.Equal(t, 1, c.VariationCount("bd"))
}

func TestLoadAcrossMultipleRoots(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	aDir := filepath.Join(rootA, "bd")
	bDir := filepath.Join(rootB, "bd")
	assert.NoError(t, os.MkdirAll(aDir, 0o755))
	assert.NoError(t, os.MkdirAll(bDir, 0o755))
	writeMinimalWav(t, filepath.Join(aDir, "0.wav"), []byte{1})
	writeMinimalWav(t, filepath.Join(bDir, "0.wav"), []byte{2})

	c, err := Load(rootA, rootB)
	assert.NoError(t, err)
	assert.Equal(t, 2, c.VariationCount("bd"))
}

func TestLoadErrorsOnMissingRoot(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}
