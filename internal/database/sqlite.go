package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const invocationColumns = "id, operation, args, exit_code, error_kind, error_message, duration_ms, created_at"

type SQLiteDatabase struct {
	db               *sql.DB
	connectionString string
}

func NewSQLiteDatabase(connectionString string) (DatabaseService, error) {
	db, err := sql.Open("sqlite", connectionString)
	if err != nil {
		return nil, err
	}
	// every connection to ":memory:" would otherwise see its own empty database
	db.SetMaxOpenConns(1)

	return &SQLiteDatabase{
		db:               db,
		connectionString: connectionString,
	}, nil
}

func (s *SQLiteDatabase) CreateDatabase(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS invocations (
		id TEXT PRIMARY KEY,
		operation TEXT NOT NULL,
		args TEXT NOT NULL,
		exit_code INTEGER NOT NULL,
		error_kind TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT '',
		duration_ms INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	)`)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_invocations_created_at ON invocations (created_at)`)
	return err
}

func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteDatabase) DoesDatabaseExist(ctx context.Context) bool {
	// SQLite creates the file on connect, so a successful ping is enough
	return s.db.PingContext(ctx) == nil
}

func (s *SQLiteDatabase) CreateInvocation(ctx context.Context, inv *Invocation) (string, error) {
	if err := prepareInvocation(inv); err != nil {
		return "", err
	}

	args, err := json.Marshal(inv.Args)
	if err != nil {
		return "", fmt.Errorf("failed to encode args: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO invocations ("+invocationColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		inv.ID, inv.Operation, string(args), inv.ExitCode, inv.ErrorKind, inv.ErrorMessage,
		inv.DurationMs, inv.CreatedAt.UnixNano())
	if err != nil {
		return "", err
	}

	return inv.ID, nil
}

func (s *SQLiteDatabase) GetInvocations(ctx context.Context, limit int) ([]*Invocation, error) {
	query := "SELECT " + invocationColumns + " FROM invocations ORDER BY created_at DESC, id"
	var queryArgs []any
	if limit > 0 {
		query += " LIMIT ?"
		queryArgs = append(queryArgs, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close() // Explicitly ignore error as we're already returning an error from the function
	}()

	var invocations []*Invocation
	for rows.Next() {
		inv, err := scanInvocation(rows)
		if err != nil {
			return nil, err
		}
		invocations = append(invocations, inv)
	}
	return invocations, rows.Err()
}

func (s *SQLiteDatabase) GetInvocationByID(ctx context.Context, id string) (*Invocation, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+invocationColumns+" FROM invocations WHERE id = ?", id)
	inv, err := scanInvocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *SQLiteDatabase) DeleteInvocation(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM invocations WHERE id = ?", id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvocation(row rowScanner) (*Invocation, error) {
	var (
		inv       Invocation
		args      string
		createdAt int64
	)
	if err := row.Scan(&inv.ID, &inv.Operation, &args, &inv.ExitCode, &inv.ErrorKind,
		&inv.ErrorMessage, &inv.DurationMs, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(args), &inv.Args); err != nil {
		return nil, fmt.Errorf("failed to decode args of invocation %s: %w", inv.ID, err)
	}
	inv.CreatedAt = time.Unix(0, createdAt).UTC()
	return &inv, nil
}
