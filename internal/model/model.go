package model

import "time"

type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"createdAt"`
}

type Task struct {
	ID      string `json:"id"`
	GroupID string `json:"groupId"`

	// ParentID is nil for top-level tasks. Order sorts a task among the
	// siblings sharing its (GroupID, ParentID); after every reorder the
	// orders within a sibling list are contiguous starting at 0.
	ParentID *string `json:"parentId,omitempty"`
	Order    int     `json:"order"`

	Content   string `json:"content"`
	Notes     string `json:"notes,omitempty"`
	Color     string `json:"color,omitempty"`
	Completed bool   `json:"completed"`
	Collapsed bool   `json:"collapsed"`

	// StartDate/EndDate place the task on the calendar. A task with a
	// StartDate is scheduled; EndDate is never set without it.
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Event struct {
	ID      string    `json:"id"`
	TS      time.Time `json:"ts"`
	Type    string    `json:"type"`
	TaskID  string    `json:"taskId,omitempty"`
	Payload any       `json:"payload,omitempty"`
}
