package format

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/vladelaina/NekoTick-sub003/internal/drag"
	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/section"
	"github.com/vladelaina/NekoTick-sub003/internal/tree"
)

// SectionGlyph is the bullet shown in front of a task row.
func SectionGlyph(s section.Section) string {
	switch s {
	case section.Completed:
		return "✔"
	case section.Scheduled:
		return "◷"
	default:
		return "●"
	}
}

// TablePrinter renders the CLI's human-readable tables. JSON stays the
// machine surface; tables keep the bullet-journal look: a glyph per
// section, aligned uitable columns, color for emphasis only.
type TablePrinter struct {
	Out    io.Writer
	ShowID bool
}

func (p TablePrinter) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return color.Output
}

// SectionTitle prints an underlined section header with a task count.
func (p TablePrinter) SectionTitle(s section.Section, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	name := string(s)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	_, _ = fmt.Fprint(p.out(), t.Sprint(name))
	switch count {
	case 1:
		_, _ = fmt.Fprintln(p.out(), c.Sprint(" - 1 task"))
	default:
		_, _ = fmt.Fprintln(p.out(), c.Sprintf(" - %d tasks", count))
	}
}

// Tasks prints flattened task rows with tree indentation, fold markers
// and the scheduled block when one is set.
func (p TablePrinter) Tasks(rows []tree.Row) {
	if len(rows) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = fmt.Fprintln(p.out(), f.Sprint(" none"))
		return
	}

	faint := color.New(color.Faint)
	strike := color.New(color.CrossedOut)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, r := range rows {
		t := r.Task
		s := section.Of(t)

		fold := " "
		if r.HasChildren {
			fold = "▾"
			if t.Collapsed {
				fold = "▸"
			}
		}
		content := t.Content
		if s == section.Completed {
			content = strike.Sprint(content)
		}
		line := strings.Repeat("  ", r.Depth) + fold + " " + SectionGlyph(s) + " " + content

		when := ""
		if t.StartDate != nil {
			when = t.StartDate.Local().Format("Jan 02 15:04")
			if t.EndDate != nil {
				when += "-" + t.EndDate.Local().Format("15:04")
			}
		}

		if p.ShowID {
			tbl.AddRow(faint.Sprint(t.ID), line, faint.Sprint(when))
			continue
		}
		tbl.AddRow(line, faint.Sprint(when))
	}
	_, _ = fmt.Fprintln(p.out(), tbl)
}

// Groups prints the group table with a marker on the current group.
func (p TablePrinter) Groups(groups []model.Group, counts map[string]int, currentID string) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(" ", bold.Sprint("ID"), bold.Sprint("NAME"), bold.Sprint("TASKS"))
	for _, g := range groups {
		marker := " "
		if g.ID == currentID {
			marker = "*"
		}
		name := g.Name
		if g.Icon != "" {
			name = g.Icon + " " + name
		}
		if g.Archived {
			name = faint.Sprint(name + " (archived)")
		}
		tbl.AddRow(marker, faint.Sprint(g.ID), name, counts[g.ID])
	}
	_, _ = fmt.Fprintln(p.out(), tbl)
}

// Events prints an event-log tail, oldest first.
func (p TablePrinter) Events(events []model.Event) {
	if len(events) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = fmt.Fprintln(p.out(), f.Sprint(" none"))
		return
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("WHEN"), bold.Sprint("TYPE"), bold.Sprint("TASK"))
	for _, e := range events {
		tbl.AddRow(faint.Sprint(e.TS.Local().Format("2006-01-02 15:04:05")), e.Type, e.TaskID)
	}
	_, _ = fmt.Fprintln(p.out(), tbl)
}

// Week prints the week containing anchor, one day per block, with each
// day's scheduled tasks earliest first.
func (p TablePrinter) Week(anchor time.Time, tasks []model.Task) {
	title := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint)
	none := color.New(color.Faint, color.Italic)
	strike := color.New(color.CrossedOut)

	start := drag.WeekStart(anchor)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		_, _ = fmt.Fprintln(p.out(), title.Sprint(day.Format("Mon Jan 02")))

		var dayTasks []model.Task
		for _, t := range tasks {
			if t.StartDate == nil {
				continue
			}
			ty, tm, td := t.StartDate.Local().Date()
			dy, dm, dd := day.Date()
			if ty == dy && tm == dm && td == dd {
				dayTasks = append(dayTasks, t)
			}
		}
		sort.SliceStable(dayTasks, func(a, b int) bool {
			return dayTasks[a].StartDate.Before(*dayTasks[b].StartDate)
		})

		if len(dayTasks) == 0 {
			_, _ = fmt.Fprint(p.out(), none.Sprint(" none\n\n"))
			continue
		}

		tbl := uitable.New()
		tbl.Separator = "  "
		for _, t := range dayTasks {
			when := t.StartDate.Local().Format("15:04")
			if t.EndDate != nil {
				when += "-" + t.EndDate.Local().Format("15:04")
			}
			content := t.Content
			if t.Completed {
				content = strike.Sprint(content)
			}
			tbl.AddRow(faint.Sprint(when), SectionGlyph(section.Of(t))+" "+content)
		}
		_, _ = fmt.Fprintln(p.out(), tbl)
		_, _ = fmt.Fprintln(p.out(), "")
	}
}

// Status prints the vault path and per-section counts.
func (p TablePrinter) Status(dir string, counts map[section.Section]int) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Vault"), dir)
	for _, s := range []section.Section{section.Todo, section.Scheduled, section.Completed} {
		tbl.AddRow(SectionGlyph(s)+" "+string(s), counts[s])
	}
	_, _ = fmt.Fprintln(p.out(), tbl)
}
