package mutate

import (
	"strings"
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
)

type GroupResult struct {
	Group        *model.Group
	Changed      bool
	EventPayload map[string]any
}

// CreateGroup adds a task group. The first group created becomes the
// current one.
//
// Callers are responsible for saving db and appending the group.create event.
func CreateGroup(db *store.DB, name, icon string, now time.Time) (GroupResult, error) {
	name = strings.TrimSpace(name)
	icon = strings.TrimSpace(icon)
	if db == nil || name == "" {
		return GroupResult{}, nil
	}

	g := model.Group{
		ID:        store.NextID(db, "grp"),
		Name:      name,
		Icon:      icon,
		CreatedAt: now,
	}
	db.Groups = append(db.Groups, g)
	if strings.TrimSpace(db.CurrentGroupID) == "" {
		db.CurrentGroupID = g.ID
	}

	created, _ := db.FindGroup(g.ID)
	return GroupResult{
		Group:        created,
		Changed:      true,
		EventPayload: map[string]any{"name": g.Name},
	}, nil
}

// RenameGroup renames a group. Blank names are ignored.
//
// Callers are responsible for saving db and appending the group.rename event.
func RenameGroup(db *store.DB, groupID, name string, now time.Time) (GroupResult, error) {
	groupID = strings.TrimSpace(groupID)
	name = strings.TrimSpace(name)
	if db == nil || groupID == "" || name == "" {
		return GroupResult{}, nil
	}

	g, ok := db.FindGroup(groupID)
	if !ok {
		return GroupResult{}, NotFoundError{Kind: "group", ID: groupID}
	}
	if g.Name == name {
		return GroupResult{Group: g, Changed: false}, nil
	}

	g.Name = name
	return GroupResult{
		Group:        g,
		Changed:      true,
		EventPayload: map[string]any{"name": g.Name},
	}, nil
}

// SetGroupArchived archives or restores a group. Archiving the current
// group clears the current-group selection.
//
// Callers are responsible for saving db and appending the group.archive event.
func SetGroupArchived(db *store.DB, groupID string, archived bool, now time.Time) (GroupResult, error) {
	groupID = strings.TrimSpace(groupID)
	if db == nil || groupID == "" {
		return GroupResult{}, nil
	}

	g, ok := db.FindGroup(groupID)
	if !ok {
		return GroupResult{}, NotFoundError{Kind: "group", ID: groupID}
	}
	if g.Archived == archived {
		return GroupResult{Group: g, Changed: false}, nil
	}

	g.Archived = archived
	if archived && db.CurrentGroupID == g.ID {
		db.CurrentGroupID = ""
	}
	return GroupResult{
		Group:        g,
		Changed:      true,
		EventPayload: map[string]any{"archived": g.Archived},
	}, nil
}

// SetCurrentGroup switches which group list views show.
//
// Callers are responsible for saving db and appending the group.select event.
func SetCurrentGroup(db *store.DB, groupID string) (GroupResult, error) {
	groupID = strings.TrimSpace(groupID)
	if db == nil || groupID == "" {
		return GroupResult{}, nil
	}

	g, ok := db.FindGroup(groupID)
	if !ok || g.Archived {
		return GroupResult{}, NotFoundError{Kind: "group", ID: groupID}
	}
	if db.CurrentGroupID == g.ID {
		return GroupResult{Group: g, Changed: false}, nil
	}

	db.CurrentGroupID = g.ID
	return GroupResult{
		Group:        g,
		Changed:      true,
		EventPayload: map[string]any{"groupId": g.ID},
	}, nil
}
