package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
)

// AppendEvent records a mutation in the vault's append-only audit log.
// Writers treat failures here as best-effort; the state save is what
// matters.
func (s Store) AppendEvent(typ, taskID string, payload any) error {
	return s.appendEventSQLite(context.Background(), typ, taskID, payload)
}

func (s Store) appendEventSQLite(ctx context.Context, typ, taskID string, payload any) error {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return errors.New("missing event type")
	}
	taskID = strings.TrimSpace(taskID)

	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := newRandomID("evt")
	if err != nil {
		return err
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	nowMs := time.Now().UTC().UnixMilli()
	_, err = db.ExecContext(ctx, `INSERT INTO events(event_id, ts_unixms, type, task_id, payload_json, created_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
		id, nowMs, typ, taskID, string(pb), nowMs)
	return err
}

// ReadEventsTail returns the newest limit events in chronological order.
// limit <= 0 returns everything.
func ReadEventsTail(dir string, limit int) ([]model.Event, error) {
	st := Store{Dir: dir}
	ctx := context.Background()
	db, err := st.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT event_id, ts_unixms, type, task_id, payload_json
	      FROM events
	      ORDER BY created_at_unixms DESC, event_id DESC`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}
	reverseEvents(out)
	return out, nil
}

// ReadEventsForTask returns the newest limit events for one task in
// chronological order. limit <= 0 returns everything.
func ReadEventsForTask(dir, taskID string, limit int) ([]model.Event, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return []model.Event{}, nil
	}
	st := Store{Dir: dir}
	ctx := context.Background()
	db, err := st.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT event_id, ts_unixms, type, task_id, payload_json
	      FROM events
	      WHERE task_id = ?
	      ORDER BY created_at_unixms DESC, event_id DESC`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.QueryContext(ctx, q+` LIMIT ?`, taskID, limit)
	} else {
		rows, err = db.QueryContext(ctx, q, taskID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}
	reverseEvents(out)
	return out, nil
}

func scanEvents(rows *sql.Rows) ([]model.Event, error) {
	var out []model.Event
	for rows.Next() {
		var id, typ, taskID, payloadJSON string
		var tsMs int64
		if err := rows.Scan(&id, &tsMs, &typ, &taskID, &payloadJSON); err != nil {
			return nil, err
		}
		var payload any
		_ = json.Unmarshal([]byte(payloadJSON), &payload)
		out = append(out, model.Event{
			ID:      id,
			TS:      time.UnixMilli(tsMs).UTC(),
			Type:    typ,
			TaskID:  taskID,
			Payload: payload,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Event{}
	}
	return out, nil
}

func reverseEvents(evs []model.Event) {
	for i, j := 0, len(evs)-1; i < j; i, j = i+1, j-1 {
		evs[i], evs[j] = evs[j], evs[i]
	}
}
