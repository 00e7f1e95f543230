package pattern

import (
	"strconv"
	"strings"

	"github.com/schollz/cyclo/internal/control"
)

// Sound turns a pattern of sample-name strings into a pattern of
// ControlMaps: the text before the first ':' becomes the "s" key, and
// an optional "n:variation" suffix becomes an integer "n" key,
// defaulting to 0 when absent.
func Sound(sp Pattern[string]) Pattern[control.Map] {
	return Fmap(sp, func(s string) control.Map {
		name, variation := splitVariation(s)
		m := control.Map{"s": control.String(name)}
		m = m.With("n", control.Int(variation))
		return m
	})
}

func splitVariation(s string) (string, int64) {
	name, rest, found := strings.Cut(s, ":")
	if !found {
		return s, 0
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return name, 0
	}
	return name, n
}

// Pan wraps a pattern of floats into a pattern of ControlMaps carrying
// a single "pan" key.
func Pan(fp Pattern[float64]) Pattern[control.Map] {
	return Fmap(fp, func(f float64) control.Map {
		return control.Map{"pan": control.Float(f)}
	})
}
