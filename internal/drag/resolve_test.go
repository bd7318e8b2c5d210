package drag

import (
	"testing"
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/section"
)

func listDrop() Drop {
	return Drop{
		TaskID: "task-a",
		From:   section.Todo,
		Point:  Point{X: 20, Y: 200}, // left of the grid
		Grid:   testGrid,
		View:   View{Mode: ModeWeek, Anchor: testAnchor},
	}
}

func TestResolveGridWins(t *testing.T) {
	d := listDrop()
	d.Point = Point{X: 500, Y: 120}
	d.Target = Target{RowID: "task-b", Section: section.Todo}
	got := Resolve(d, Config{})
	if got.Kind != KindSchedule {
		t.Fatalf("expected schedule, got %s", got.Kind)
	}
	want := time.Date(2025, 3, 14, 2, 0, 0, 0, time.UTC)
	if !got.Start.Equal(want) {
		t.Fatalf("expected start %v, got %v", want, got.Start)
	}
	if got.End.Sub(got.Start) != DefaultDuration {
		t.Fatalf("expected end %v after start, got %v", DefaultDuration, got.End.Sub(got.Start))
	}
}

func TestResolveReorder(t *testing.T) {
	d := listDrop()
	d.Target = Target{RowID: "task-b", Section: section.Todo}
	got := Resolve(d, Config{})
	if got.Kind != KindReorder || got.TargetID != "task-b" || got.MakeChild {
		t.Fatalf("expected plain reorder onto task-b, got %+v", got)
	}
}

func TestResolveIndentMakesChild(t *testing.T) {
	d := listDrop()
	d.Target = Target{RowID: "task-b", Section: section.Todo}
	d.IndentX = DefaultIndentThreshold + 1
	got := Resolve(d, Config{})
	if got.Kind != KindReorder || !got.MakeChild {
		t.Fatalf("expected nest under task-b, got %+v", got)
	}

	d.IndentX = DefaultIndentThreshold - 1
	if got := Resolve(d, Config{}); got.MakeChild {
		t.Fatalf("below threshold must stay a reorder, got %+v", got)
	}
}

func TestResolveSectionChangeOnRow(t *testing.T) {
	d := listDrop()
	d.Target = Target{RowID: "task-b", Section: section.Completed}
	got := Resolve(d, Config{})
	if got.Kind != KindSectionChange || got.To != section.Completed {
		t.Fatalf("expected section change to completed, got %+v", got)
	}
}

func TestResolveSectionChangeOnDivider(t *testing.T) {
	d := listDrop()
	d.Target = Target{Section: section.Scheduled, IsDivider: true}
	got := Resolve(d, Config{})
	if got.Kind != KindSectionChange || got.To != section.Scheduled {
		t.Fatalf("expected section change to scheduled, got %+v", got)
	}

	// Divider of the task's own section offers nothing to do.
	d.Target = Target{Section: section.Todo, IsDivider: true}
	if got := Resolve(d, Config{}); got.Kind != KindNone {
		t.Fatalf("expected none for own divider, got %+v", got)
	}
}

func TestResolveRejections(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Drop)
	}{
		{"onto self", func(d *Drop) { d.Target = Target{RowID: "task-a", Section: section.Todo} }},
		{"no target", func(d *Drop) { d.Target = Target{} }},
		{"missing task id", func(d *Drop) {
			d.TaskID = ""
			d.Target = Target{RowID: "task-b", Section: section.Todo}
		}},
	}
	for _, tc := range cases {
		d := listDrop()
		tc.mut(&d)
		if got := Resolve(d, Config{}); got.Kind != KindNone {
			t.Fatalf("%s: expected none, got %+v", tc.name, got)
		}
	}
}

// A drop outside the grid rectangle must never schedule, whatever the
// list context looks like.
func TestResolveNeverSchedulesOutsideGrid(t *testing.T) {
	pts := []Point{
		{X: 0, Y: 0},
		{X: 99, Y: 300},
		{X: 500, Y: 700},
		{X: 900, Y: 120},
	}
	for _, p := range pts {
		d := listDrop()
		d.Point = p
		if got := Resolve(d, Config{}); got.Kind == KindSchedule {
			t.Fatalf("point %+v outside grid resolved to schedule", p)
		}
	}
}
