// Package journal keeps an in-memory SQLite log of committer events for the
// running process. It backs the session totals on the scoreboard and the
// summary printed on exit. Nothing is written to disk.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"matchgames/internal/game"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Meta identifies the round an event belongs to.
type Meta struct {
	Game  game.Kind `json:"game"`
	Level int       `json:"level"`
	Round int       `json:"round"`
}

type Journal struct {
	db        *sql.DB
	sessionID string
	now       func() time.Time
}

// Open creates a fresh in-memory journal.
func Open(ctx context.Context) (*Journal, error) {
	// modernc.org/sqlite driver name is "sqlite". Every connection to
	// ":memory:" is a separate database, so pin the pool to one.
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db, sessionID: uuid.NewString(), now: time.Now}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL,
			game TEXT NOT NULL,
			level INTEGER NOT NULL,
			round INTEGER NOT NULL,
			kind TEXT NOT NULL,
			item_id TEXT NOT NULL,
			zone_id TEXT NOT NULL,
			reason TEXT NOT NULL,
			payload_json TEXT NOT NULL,
			issued_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);`,
		`CREATE INDEX IF NOT EXISTS idx_events_seq ON events(seq);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (j *Journal) SessionID() string { return j.sessionID }

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record appends events in one transaction.
func (j *Journal) Record(ctx context.Context, meta Meta, evs ...game.Event) error {
	if j == nil || len(evs) == 0 {
		return nil
	}
	if strings.TrimSpace(string(meta.Game)) == "" {
		return errors.New("journal: missing game")
	}
	tx, err := j.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM events`).Scan(&seq); err != nil {
		return err
	}
	nowMs := j.now().UTC().UnixMilli()
	for _, ev := range evs {
		seq++
		raw, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO events(event_id, seq, game, level, round, kind, item_id, zone_id, reason, payload_json, issued_at_unixms)
			 VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), seq, string(meta.Game), meta.Level, meta.Round,
			string(ev.Kind), ev.ItemID, ev.ZoneID, ev.Reason, string(raw), nowMs,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Entry is one recorded event.
type Entry struct {
	Seq      int64      `json:"seq"`
	Meta     Meta       `json:"meta"`
	Event    game.Event `json:"event"`
	IssuedAt time.Time  `json:"issuedAt"`
}

// Recent returns the newest events first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT seq, game, level, round, payload_json, issued_at_unixms FROM events ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			gameStr string
			payload string
			ms      int64
		)
		if err := rows.Scan(&e.Seq, &gameStr, &e.Meta.Level, &e.Meta.Round, &payload, &ms); err != nil {
			return nil, err
		}
		e.Meta.Game = game.Kind(gameStr)
		if err := json.Unmarshal([]byte(payload), &e.Event); err != nil {
			return nil, err
		}
		e.IssuedAt = time.UnixMilli(ms).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// Summary aggregates the session.
type Summary struct {
	SessionID       string         `json:"sessionId"`
	Events          int            `json:"events"`
	Placed          int            `json:"placed"`
	Rejected        int            `json:"rejected"`
	Returned        int            `json:"returned"`
	RoundsCompleted int            `json:"roundsCompleted"`
	ByGame          map[string]int `json:"completedByGame,omitempty"`
}

func (j *Journal) Summary(ctx context.Context) (Summary, error) {
	s := Summary{SessionID: j.sessionID, ByGame: map[string]int{}}
	rows, err := j.db.QueryContext(ctx, `SELECT game, kind, COUNT(*) FROM events GROUP BY game, kind`)
	if err != nil {
		return s, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			g, kind string
			n       int
		)
		if err := rows.Scan(&g, &kind, &n); err != nil {
			return s, err
		}
		s.Events += n
		switch game.EventKind(kind) {
		case game.EventPlaced:
			s.Placed += n
		case game.EventRejected:
			s.Rejected += n
		case game.EventReturned:
			s.Returned += n
		case game.EventCompleted:
			s.RoundsCompleted += n
			s.ByGame[g] += n
		}
	}
	return s, rows.Err()
}
