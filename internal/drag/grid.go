// Package drag converts drag-gesture geometry into task mutations: a drop
// point over the calendar grid becomes a time slot, a drop over the task
// list becomes a reorder, a nest, or a section change. Everything here is
// a pure function of its inputs; committing the outcome is the caller's
// job.
package drag

import (
	"math"
	"time"
)

// Point is a pointer position in screen coordinates.
type Point struct {
	X float64
	Y float64
}

// Grid is the calendar grid's on-screen rectangle plus the rendering
// state needed to translate a point inside it into a time of day. It is
// supplied by the rendering layer at drag time.
type Grid struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64

	// Gutter is the hour-label strip on the grid's left edge; points over
	// it are not over a day column.
	Gutter float64

	// ScrollY is the grid's internal vertical scroll offset in pixels.
	ScrollY float64

	// HourHeight is the rendered height of one hour in pixels.
	HourHeight float64
}

// Contains reports whether p falls within the grid rectangle.
func (g Grid) Contains(p Point) bool {
	return p.X >= g.Left && p.X < g.Left+g.Width &&
		p.Y >= g.Top && p.Y < g.Top+g.Height
}

// Mode selects how many day columns the grid shows and which day the
// first column maps to.
type Mode string

const (
	ModeWeek Mode = "week"
	ModeDay  Mode = "day"
)

// View is the calendar view state owned by the calendar UI.
type View struct {
	Mode   Mode
	Anchor time.Time // the selected date
	Days   int       // visible day count; 0 means the mode default
}

func (v View) dayCount() int {
	if v.Mode == ModeDay {
		return 1
	}
	if v.Days > 0 {
		return v.Days
	}
	return 7
}

// firstDay returns the date the leftmost column maps to: the Monday of
// the anchor's week in week mode, the anchor day itself in day mode.
func (v View) firstDay() time.Time {
	if v.Mode == ModeDay {
		return dayStart(v.Anchor)
	}
	return WeekStart(v.Anchor)
}

// WeekStart returns the Monday 00:00 of t's week, in t's location.
func WeekStart(t time.Time) time.Time {
	day := dayStart(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Slot is a resolved calendar position for a drop.
type Slot struct {
	Start time.Time
	End   time.Time
}

// ResolveSlot maps a drop point onto a calendar slot. It returns ok=false
// when the point is outside the grid rectangle or the geometry is unusable
// (zero-width columns, point over the gutter, day index out of range);
// rejected drops must leave task state untouched.
func ResolveSlot(p Point, g Grid, v View, cfg Config) (Slot, bool) {
	cfg = cfg.withDefaults()
	if !g.Contains(p) {
		return Slot{}, false
	}
	relX := p.X - g.Left - g.Gutter
	if relX < 0 {
		return Slot{}, false
	}
	days := v.dayCount()
	dayWidth := (g.Width - g.Gutter) / float64(days)
	if dayWidth <= 0 {
		return Slot{}, false
	}
	dayIndex := int(math.Floor(relX / dayWidth))
	if dayIndex < 0 || dayIndex >= days {
		return Slot{}, false
	}
	if g.HourHeight <= 0 {
		return Slot{}, false
	}

	relY := p.Y - g.Top + g.ScrollY
	minutes := relY / g.HourHeight * 60
	snap := cfg.SnapMinutes(g.HourHeight)
	if snap <= 0 {
		snap = 1
	}
	snapped := int(math.Round(minutes/float64(snap))) * snap
	if snapped < 0 {
		return Slot{}, false
	}
	// Keep the slot inside the target day.
	if max := 24*60 - snap; snapped > max {
		snapped = max
	}

	day := v.firstDay().AddDate(0, 0, dayIndex)
	start := time.Date(day.Year(), day.Month(), day.Day(), snapped/60, snapped%60, 0, 0, day.Location())
	return Slot{Start: start, End: start.Add(cfg.DefaultDuration)}, true
}
