// Package section classifies tasks into the three board sections and
// resolves the state change when a task is dropped across a section
// boundary.
package section

import (
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
)

// Section is the board bucket a task surfaces in. It is derived from
// (StartDate != nil, Completed) and never stored.
type Section string

const (
	Todo      Section = "todo"
	Scheduled Section = "scheduled"
	Completed Section = "completed"
)

// Of classifies a task. Completion wins over scheduling.
func Of(t model.Task) Section {
	switch {
	case t.Completed:
		return Completed
	case t.StartDate != nil:
		return Scheduled
	default:
		return Todo
	}
}

// Valid reports whether s is one of the three known sections.
func Valid(s Section) bool {
	return s == Todo || s == Scheduled || s == Completed
}

// Change is the field assignment a cross-section drop produces. Applying
// it replaces the task's Completed flag and schedule wholesale, so clears
// are exact and leave no residue behind.
type Change struct {
	To        Section
	Completed bool
	StartDate *time.Time
	EndDate   *time.Time
}

// Transition resolves dropping a task into another section:
//
//	Scheduled -> Todo       clear schedule
//	Todo      -> Scheduled  schedule at now, end after defaultDuration
//	Scheduled -> Completed  clear schedule and mark completed
//	Todo      -> Completed  mark completed
//	Completed -> Todo       reopen (a schedule left by a checkbox
//	                        completion is dropped so the task lands in Todo)
//	Completed -> Scheduled  reopen with a fresh schedule at now
//
// It returns false when to equals the task's current section; same-section
// drops are reorders, not state changes.
func Transition(t model.Task, to Section, now time.Time, defaultDuration time.Duration) (Change, bool) {
	if !Valid(to) || Of(t) == to {
		return Change{}, false
	}
	c := Change{To: to}
	switch to {
	case Scheduled:
		start := now
		end := now.Add(defaultDuration)
		c.StartDate = &start
		c.EndDate = &end
	case Completed:
		c.Completed = true
	}
	return c, true
}

// Apply copies a change onto a task and returns the result.
func Apply(t model.Task, c Change) model.Task {
	t.Completed = c.Completed
	t.StartDate = c.StartDate
	t.EndDate = c.EndDate
	return t
}
