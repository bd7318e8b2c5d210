package drag

import "time"

// SnapFunc maps the rendered hour height to the minute granularity a drop
// snaps to. Larger hour heights give the pointer more room, so finer
// snapping stays usable.
type SnapFunc func(hourHeight float64) int

// DefaultSnapMinutes is the stock zoom-to-granularity curve.
func DefaultSnapMinutes(hourHeight float64) int {
	switch {
	case hourHeight >= 120:
		return 5
	case hourHeight >= 80:
		return 10
	case hourHeight >= 40:
		return 15
	default:
		return 30
	}
}

// DefaultDuration is the slot length given to a freshly scheduled task.
const DefaultDuration = 30 * time.Minute

// DefaultIndentThreshold is how far right (in pixels) a row must be
// dragged before a reorder becomes a nest under the hovered row.
const DefaultIndentThreshold = 28.0

// Config carries the tunable pieces of drop resolution. The zero value is
// valid; missing fields fall back to the package defaults.
type Config struct {
	SnapMinutes     SnapFunc
	DefaultDuration time.Duration
	IndentThreshold float64
}

func (c Config) withDefaults() Config {
	if c.SnapMinutes == nil {
		c.SnapMinutes = DefaultSnapMinutes
	}
	if c.DefaultDuration <= 0 {
		c.DefaultDuration = DefaultDuration
	}
	if c.IndentThreshold <= 0 {
		c.IndentThreshold = DefaultIndentThreshold
	}
	return c
}
