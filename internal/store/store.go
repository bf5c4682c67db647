package store

import (
	"context"
	"database/sql"
	errs "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/PreOnZi/justacalculator/internal/util"
)

var ErrNoChange = errs.New("no change")

// DB wraps gorm.DB for repositories and exposes Close.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
}

func (d *DB) Close() error { return d.sql.Close() }

// Open connects to the database per config.
func Open(ctx context.Context, cfg util.Config) (*DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("missing DSN")
	}
	// Postgres-only
	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sdb.SetConnMaxLifetime(30 * time.Minute)
	sdb.SetMaxOpenConns(10)
	sdb.SetMaxIdleConns(5)
	if err := sdb.PingContext(ctx); err != nil {
		return nil, err
	}
	return &DB{gorm: gdb, sql: sdb}, nil
}

// Session is one installed-calculator lifetime. The durable state hangs off
// it as a flat key/value map.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time
}

// SessionRepo manages session rows.
type SessionRepo struct{ db *DB }

func NewSessionRepo(db *DB) *SessionRepo { return &SessionRepo{db: db} }

func (r *SessionRepo) Create(ctx context.Context) (Session, error) {
	id := uuid.New()
	if err := r.db.gorm.WithContext(ctx).Exec(
		`INSERT INTO sessions(id) VALUES(?)`, id).Error; err != nil {
		return Session{}, wrap(err, "create session")
	}
	return Session{ID: id, CreatedAt: time.Now()}, nil
}

// Latest returns the most recent session, or ErrNoSession.
func (r *SessionRepo) Latest(ctx context.Context) (Session, error) {
	row := r.db.gorm.WithContext(ctx).Raw(
		`SELECT id, created_at FROM sessions ORDER BY created_at DESC LIMIT 1`).Row()
	var s Session
	if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return Session{}, ErrNoSession
		}
		return Session{}, wrap(err, "latest session")
	}
	return s, nil
}

var ErrNoSession = errs.New("no session")

// ValueRepo is the key/value snapshot store. Keys are overwritten
// independently; there is no transactional grouping and no schema version.
type ValueRepo struct{ db *DB }

func NewValueRepo(db *DB) *ValueRepo { return &ValueRepo{db: db} }

func (r *ValueRepo) Upsert(ctx context.Context, sessionID uuid.UUID, key, value string) error {
	err := r.db.gorm.WithContext(ctx).Exec(
		`INSERT INTO session_values(session_id, key, value) VALUES (?,?,?)
		 ON CONFLICT (session_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		sessionID, key, value).Error
	return wrap(err, "upsert value")
}

// LoadAll returns every key of a session as a map.
func (r *ValueRepo) LoadAll(ctx context.Context, sessionID uuid.UUID) (map[string]string, error) {
	rows, err := r.db.gorm.WithContext(ctx).Raw(
		`SELECT key, value FROM session_values WHERE session_id = ?`, sessionID).Rows()
	if err != nil {
		return nil, wrap(err, "load values")
	}
	defer rows.Close()
	kv := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, wrap(err, "scan value")
		}
		kv[k] = v
	}
	return kv, rows.Err()
}

// HistoryRepo logs evaluated expressions.
type HistoryRepo struct{ db *DB }

func NewHistoryRepo(db *DB) *HistoryRepo { return &HistoryRepo{db: db} }

func (r *HistoryRepo) Append(ctx context.Context, sessionID uuid.UUID, expression, result string) error {
	err := r.db.gorm.WithContext(ctx).Exec(
		`INSERT INTO calc_history(id, session_id, expression, result) VALUES (?,?,?,?)`,
		uuid.New(), sessionID, expression, result).Error
	return wrap(err, "append history")
}

// Recent returns the last n evaluated expressions, newest first.
func (r *HistoryRepo) Recent(ctx context.Context, sessionID uuid.UUID, n int) ([]string, error) {
	rows, err := r.db.gorm.WithContext(ctx).Raw(
		`SELECT expression, result FROM calc_history WHERE session_id = ? ORDER BY created_at DESC LIMIT ?`,
		sessionID, n).Rows()
	if err != nil {
		return nil, wrap(err, "recent history")
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var expr, res string
		if err := rows.Scan(&expr, &res); err != nil {
			return nil, wrap(err, "scan history")
		}
		out = append(out, expr+" = "+res)
	}
	return out, rows.Err()
}

func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}
