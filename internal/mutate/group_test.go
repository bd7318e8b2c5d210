package mutate

import (
	"strings"
	"testing"
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
)

func TestCreateGroupFirstBecomesCurrent(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := &store.DB{Version: 1}

	res, err := CreateGroup(db, "Inbox", "", now)
	if err != nil {
		t.Fatalf("CreateGroup error: %v", err)
	}
	if res.Group == nil || !strings.HasPrefix(res.Group.ID, "grp-") {
		t.Fatalf("expected grp id; got %+v", res.Group)
	}
	if db.CurrentGroupID != res.Group.ID {
		t.Fatalf("expected first group to become current; got %q", db.CurrentGroupID)
	}

	res2, err := CreateGroup(db, "Work", "briefcase", now)
	if err != nil {
		t.Fatalf("CreateGroup error: %v", err)
	}
	if db.CurrentGroupID == res2.Group.ID {
		t.Fatalf("second group must not steal current")
	}
	if res2.Group.Icon != "briefcase" {
		t.Fatalf("expected icon kept; got %q", res2.Group.Icon)
	}

	res3, err := CreateGroup(db, "   ", "", now)
	if err != nil {
		t.Fatalf("blank name should be ignored; got %v", err)
	}
	if res3.Group != nil {
		t.Fatalf("expected zero result for blank name")
	}
}

func TestRenameGroup(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := &store.DB{
		Version: 1,
		Groups:  []model.Group{{ID: "grp-a", Name: "Inbox", CreatedAt: now}},
	}

	res, err := RenameGroup(db, "grp-a", "Personal", now)
	if err != nil {
		t.Fatalf("RenameGroup error: %v", err)
	}
	if !res.Changed || res.Group.Name != "Personal" {
		t.Fatalf("expected rename; got %+v", res)
	}

	res2, err := RenameGroup(db, "grp-a", "Personal", now)
	if err != nil {
		t.Fatalf("RenameGroup error: %v", err)
	}
	if res2.Changed {
		t.Fatalf("expected no-op for same name")
	}

	if _, err := RenameGroup(db, "grp-missing", "X", now); err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestSetGroupArchivedClearsCurrent(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := &store.DB{
		Version:        1,
		CurrentGroupID: "grp-a",
		Groups: []model.Group{
			{ID: "grp-a", Name: "Inbox", CreatedAt: now},
			{ID: "grp-b", Name: "Work", CreatedAt: now},
		},
	}

	res, err := SetGroupArchived(db, "grp-a", true, now)
	if err != nil {
		t.Fatalf("SetGroupArchived error: %v", err)
	}
	if !res.Changed || !res.Group.Archived {
		t.Fatalf("expected archived; got %+v", res)
	}
	if db.CurrentGroupID != "" {
		t.Fatalf("archiving the current group must clear the selection; got %q", db.CurrentGroupID)
	}

	res2, err := SetGroupArchived(db, "grp-a", true, now)
	if err != nil {
		t.Fatalf("SetGroupArchived error: %v", err)
	}
	if res2.Changed {
		t.Fatalf("expected no-op for already archived group")
	}
}

func TestSetCurrentGroup(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := &store.DB{
		Version: 1,
		Groups: []model.Group{
			{ID: "grp-a", Name: "Inbox", CreatedAt: now},
			{ID: "grp-b", Name: "Work", Archived: true, CreatedAt: now},
		},
	}

	res, err := SetCurrentGroup(db, "grp-a")
	if err != nil {
		t.Fatalf("SetCurrentGroup error: %v", err)
	}
	if !res.Changed || db.CurrentGroupID != "grp-a" {
		t.Fatalf("expected current grp-a; got %q", db.CurrentGroupID)
	}

	if _, err := SetCurrentGroup(db, "grp-b"); err == nil {
		t.Fatalf("expected error selecting archived group")
	}
}
