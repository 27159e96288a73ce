package session

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// SQLiteStore persists sessions in a local sqlite file so that signed-in
// users survive a restart.
type SQLiteStore struct {
	db  *sqlx.DB
	now func() time.Time
}

type sessionRow struct {
	ID        string `db:"id"`
	UserJSON  string `db:"user_json"`
	Token     string `db:"token"`
	CreatedAt int64  `db:"created_at"` // unix seconds
	ExpiresAt int64  `db:"expires_at"`
}

// OpenSQLite opens (creating if needed) the database at path and applies
// pending migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating session db dir : %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite", fmt.Sprintf("%s?_journal=WAL&_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("connecting to session db : %w", err)
	}
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting dialect for migrations : %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying migration : %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing session db : %w", err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging session db : %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Session, error) {
	var row sessionRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, user_json, token, created_at, expires_at FROM sessions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting session : %w", err)
	}

	sess := &Session{
		ID:        row.ID,
		Token:     row.Token,
		CreatedAt: time.Unix(row.CreatedAt, 0),
		ExpiresAt: time.Unix(row.ExpiresAt, 0),
	}
	if err := json.Unmarshal([]byte(row.UserJSON), &sess.User); err != nil {
		return nil, fmt.Errorf("decoding session user : %w", err)
	}

	if sess.Expired(s.now()) {
		_ = s.Delete(ctx, id)
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *SQLiteStore) Save(ctx context.Context, sess *Session) error {
	user, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encoding session user : %w", err)
	}

	row := sessionRow{
		ID:        sess.ID,
		UserJSON:  string(user),
		Token:     sess.Token,
		CreatedAt: sess.CreatedAt.Unix(),
		ExpiresAt: sess.ExpiresAt.Unix(),
	}
	_, err = s.db.NamedExecContext(ctx, `
		INSERT INTO sessions (id, user_json, token, created_at, expires_at)
		VALUES (:id, :user_json, :token, :created_at, :expires_at)
		ON CONFLICT(id) DO UPDATE SET
			user_json = excluded.user_json,
			token = excluded.token,
			expires_at = excluded.expires_at`, row)
	if err != nil {
		return fmt.Errorf("saving session : %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session : %w", err)
	}
	return nil
}

func (s *SQLiteStore) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, s.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("purging sessions : %w", err)
	}
	return res.RowsAffected()
}
