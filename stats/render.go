// Package stats renders a lirs.Stats snapshot as a human-readable
// report or as JSON, keeping the engine itself free of any formatting
// or I/O concerns (the same separation the cache this package's
// neighbors are descended from draws between its Metrics interface and
// a concrete exporter).
package stats

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/traustis/lirsim/lirs"
)

// Render writes a human-readable key/value report of s to w (§6.4).
func Render(w io.Writer, s lirs.Stats) error {
	lines := []struct {
		label string
		value string
	}{
		{"Memory size", fmt.Sprintf("%d", s.CacheSize)},
		{"Max S size", fmt.Sprintf("%d", s.MaxSLength)},
		{"Llirs (max reached size of S)", fmt.Sprintf("%d", s.PeakSLen)},
		{"Lhirs (cache size for HIR blocks)", fmt.Sprintf("%d", s.Hirs)},
		{"Final block refs", fmt.Sprintf("%d", s.Refs)},
		{"Final number of misses", fmt.Sprintf("%d", s.Misses)},
		{"Final hit rate", fmt.Sprintf("%.3f%%", s.HitRate)},
		{"Prune count", fmt.Sprintf("%d", s.PruneCount)},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-34s= %s\n", l.label, l.value); err != nil {
			return err
		}
	}
	return nil
}

// RenderJSON writes s to w as JSON, for machine-readable consumption
// alongside the human-readable report Render produces.
func RenderJSON(w io.Writer, s lirs.Stats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
