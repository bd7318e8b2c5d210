package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/model"

	_ "modernc.org/sqlite"
)

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when CLI and TUI overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS groups (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			archived INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			group_id TEXT NOT NULL,
			parent_id TEXT NOT NULL,
			sort_order INTEGER NOT NULL,
			content TEXT NOT NULL,
			completed INTEGER NOT NULL,
			collapsed INTEGER NOT NULL,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			color TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_group ON tasks(group_id);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_start ON tasks(start_date);`,
		`CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			ts_unixms INTEGER NOT NULL,
			type TEXT NOT NULL,
			task_id TEXT NOT NULL,
			payload_json TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_task ON events(task_id, created_at_unixms);`,
		`CREATE INDEX IF NOT EXISTS idx_events_created ON events(created_at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (s Store) LoadSQLite(ctx context.Context) (*DB, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return loadStateFromSQLite(ctx, db)
}

func (s Store) SaveSQLite(ctx context.Context, st *DB) error {
	if st == nil {
		return errors.New("nil db")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "version", fmt.Sprintf("%d", st.Version)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "current_group_id", strings.TrimSpace(st.CurrentGroupID)); err != nil {
		return err
	}

	// Replace-all strategy: simple and safe at vault scale. The events
	// table is append-only and never rewritten here.
	for _, t := range []string{"groups", "tasks"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()

	for _, g := range st.Groups {
		raw, _ := json.Marshal(g)
		if _, err := tx.ExecContext(ctx, `INSERT INTO groups(id, name, archived, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			g.ID, g.Name, boolToInt(g.Archived), string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, t := range st.Tasks {
		raw, _ := json.Marshal(t)
		parent := ""
		if t.ParentID != nil {
			parent = strings.TrimSpace(*t.ParentID)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO tasks(
			id, group_id, parent_id, sort_order,
			content, completed, collapsed,
			start_date, end_date, color,
			json, updated_at_unixms
		) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.GroupID, parent, t.Order,
			t.Content, boolToInt(t.Completed), boolToInt(t.Collapsed),
			timeColumn(t.StartDate), timeColumn(t.EndDate), strings.TrimSpace(t.Color),
			string(raw), nowMs,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func loadStateFromSQLite(ctx context.Context, db *sql.DB) (*DB, error) {
	out := &DB{Version: 1}

	readMeta := func(k string) string {
		var v string
		_ = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, k).Scan(&v)
		return strings.TrimSpace(v)
	}
	if v := readMeta("version"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			out.Version = n
		}
	}
	out.CurrentGroupID = readMeta("current_group_id")

	if xs, err := readJSONRows[model.Group](ctx, db, `SELECT json FROM groups`); err == nil {
		out.Groups = xs
	} else {
		return nil, err
	}
	if xs, err := readJSONRows[model.Task](ctx, db, `SELECT json FROM tasks`); err == nil {
		out.Tasks = xs
	} else {
		return nil, err
	}

	// Keep nil slices empty for stable callers.
	if out.Groups == nil {
		out.Groups = []model.Group{}
	}
	if out.Tasks == nil {
		out.Tasks = []model.Task{}
	}
	return out, nil
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// timeColumn renders an optional time for the typed index columns; the
// json blob stays authoritative.
func timeColumn(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
