package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"poolwatch/internal/modules/auth/domain"
	apperrors "poolwatch/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

// SQLiteCredentialStore persists the two token keys in a small key/value
// table. Both keys are written and deleted in one transaction.
type SQLiteCredentialStore struct {
	db *sql.DB
}

func NewSQLiteCredentialStore(dbPath string) (*SQLiteCredentialStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteCredentialStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteCredentialStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS credentials (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create credentials table: %w", err)
	}
	return nil
}

func (s *SQLiteCredentialStore) Load(ctx context.Context) (domain.Credentials, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM credentials WHERE key IN (?, ?)`, keyAccessToken, keyRefreshToken)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("query credentials: %w", err)
	}
	defer rows.Close()

	creds := domain.Credentials{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return domain.Credentials{}, fmt.Errorf("scan credentials: %w", err)
		}
		switch key {
		case keyAccessToken:
			creds.AccessToken = value
		case keyRefreshToken:
			creds.RefreshToken = value
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Credentials{}, fmt.Errorf("iterate credentials: %w", err)
	}
	if !creds.Complete() {
		return domain.Credentials{}, apperrors.ErrNoCredentials
	}
	return creds, nil
}

func (s *SQLiteCredentialStore) Save(ctx context.Context, creds domain.Credentials) error {
	const stmt = `
INSERT INTO credentials (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value;
`
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin credentials tx: %w", err)
	}
	for _, kv := range [][2]string{{keyAccessToken, creds.AccessToken}, {keyRefreshToken, creds.RefreshToken}} {
		if _, err := tx.ExecContext(ctx, stmt, kv[0], kv[1]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("save %s: %w", kv[0], err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit credentials: %w", err)
	}
	return nil
}

func (s *SQLiteCredentialStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE key IN (?, ?)`, keyAccessToken, keyRefreshToken); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (s *SQLiteCredentialStore) Close() error {
	return s.db.Close()
}
