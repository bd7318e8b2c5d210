package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/tree"
)

const sqliteFileName = "nekotick.sqlite"

// DB is the in-memory snapshot of one vault. Mutations edit the snapshot
// and save it back whole; the vault's SQLite file is the only source of
// truth on disk.
type DB struct {
	Version        int           `json:"version"`
	CurrentGroupID string        `json:"currentGroupId,omitempty"`
	Groups         []model.Group `json:"groups"`
	Tasks          []model.Task  `json:"tasks"`

	// Derived index for fast per-parent lookups in the TUI. Not persisted.
	idxBuilt            bool                    `json:"-"`
	idxChildrenByParent map[string][]model.Task `json:"-"`
}

type Store struct {
	Dir string
}

// DiscoverDir walks upward from start looking for an existing .nekotick
// vault directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".nekotick")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the vault directory for the current invocation: an
// existing vault above the working directory, the configured current
// vault, or .nekotick under the working directory as a last resort.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	if cfg, err := LoadConfig(); err == nil && strings.TrimSpace(cfg.CurrentVault) != "" {
		return cfg.CurrentVault, nil
	}
	return filepath.Join(cwd, ".nekotick"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), sqliteFileName)
}

// StatePath is the vault's SQLite file.
func (s Store) StatePath() string {
	return s.sqlitePath()
}

// Exists reports whether the vault has been initialized.
func (s Store) Exists() bool {
	_, err := os.Stat(s.sqlitePath())
	return err == nil
}

func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	db, err := s.LoadSQLite(context.Background())
	if err != nil {
		return nil, err
	}
	// Repair sibling orders left gapped or duplicated by older writers.
	repairOrders(db)
	return db, nil
}

func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.SaveSQLite(context.Background(), db)
}

// Clone returns a copy of the snapshot detached from db: the slices and
// every pointer field are duplicated, so later edits to db never show
// through the copy. The derived children index is not carried over.
func (db *DB) Clone() *DB {
	out := &DB{
		Version:        db.Version,
		CurrentGroupID: db.CurrentGroupID,
		Groups:         append([]model.Group(nil), db.Groups...),
		Tasks:          append([]model.Task(nil), db.Tasks...),
	}
	for i := range out.Tasks {
		t := &out.Tasks[i]
		if t.ParentID != nil {
			p := *t.ParentID
			t.ParentID = &p
		}
		if t.StartDate != nil {
			d := *t.StartDate
			t.StartDate = &d
		}
		if t.EndDate != nil {
			d := *t.EndDate
			t.EndDate = &d
		}
	}
	return out
}

// NextID returns a fresh prefix-tagged id not used anywhere in the
// snapshot.
func NextID(db *DB, prefix string) string {
	for i := 0; i < 10; i++ {
		id, err := newRandomID(prefix)
		if err != nil {
			break
		}
		if !idExists(db, id) {
			return id
		}
	}
	// crypto/rand failing or ten straight collisions: fall back to a
	// timestamp id so callers never block.
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// repairOrders renumbers every sibling list whose orders are not
// contiguous 0..n-1. Reports whether anything changed.
func repairOrders(db *DB) bool {
	type key struct {
		groupID  string
		parentID string
	}
	lists := map[key][]int{}
	for i := range db.Tasks {
		t := db.Tasks[i]
		pid := ""
		if t.ParentID != nil {
			pid = *t.ParentID
		}
		k := key{groupID: t.GroupID, parentID: pid}
		lists[k] = append(lists[k], i)
	}

	changed := false
	for _, idxs := range lists {
		sibs := make([]model.Task, 0, len(idxs))
		for _, i := range idxs {
			sibs = append(sibs, db.Tasks[i])
		}
		norm := tree.Normalize(sibs)
		orderByID := make(map[string]int, len(norm))
		for _, t := range norm {
			orderByID[t.ID] = t.Order
		}
		for _, i := range idxs {
			if want := orderByID[db.Tasks[i].ID]; db.Tasks[i].Order != want {
				db.Tasks[i].Order = want
				changed = true
			}
		}
	}
	if changed {
		db.ResetIndexes()
	}
	return changed
}

func (db *DB) FindGroup(id string) (*model.Group, bool) {
	for i := range db.Groups {
		if db.Groups[i].ID == id {
			return &db.Groups[i], true
		}
	}
	return nil, false
}

func (db *DB) FindTask(id string) (*model.Task, bool) {
	for i := range db.Tasks {
		if db.Tasks[i].ID == id {
			return &db.Tasks[i], true
		}
	}
	return nil, false
}

// ResetIndexes drops the derived indexes; the next lookup rebuilds them.
// Mutations that change tree shape must call this.
func (db *DB) ResetIndexes() {
	if db == nil {
		return
	}
	db.idxBuilt = false
	db.idxChildrenByParent = nil
}

func (db *DB) ensureIndexes() {
	if db == nil || db.idxBuilt {
		return
	}
	db.idxChildrenByParent = map[string][]model.Task{}
	for _, t := range db.Tasks {
		if t.ParentID == nil {
			continue
		}
		pid := strings.TrimSpace(*t.ParentID)
		if pid == "" {
			continue
		}
		db.idxChildrenByParent[pid] = append(db.idxChildrenByParent[pid], t)
	}
	for pid := range db.idxChildrenByParent {
		kids := db.idxChildrenByParent[pid]
		tree.SortSiblings(kids)
		db.idxChildrenByParent[pid] = kids
	}
	db.idxBuilt = true
}

// ChildrenOf returns the direct children of a task, ordered.
func (db *DB) ChildrenOf(parentID string) []model.Task {
	if db == nil {
		return nil
	}
	db.ensureIndexes()
	return db.idxChildrenByParent[strings.TrimSpace(parentID)]
}
