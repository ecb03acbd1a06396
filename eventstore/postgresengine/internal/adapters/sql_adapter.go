package adapters

import (
	"context"
	"database/sql"
	"errors"
)

// SQLAdapter implements DBAdapter for sql.DB, typically opened with the lib/pq driver.
type SQLAdapter struct {
	db *sql.DB
}

func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

func (s *SQLAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (s *SQLAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	return s.db.ExecContext(ctx, query)
}

func (s *SQLAdapter) ExecSerializable(ctx context.Context, queries ...string) (DBResult, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}

	return execInTx(tx, func(query string) (sql.Result, error) { return tx.ExecContext(ctx, query) }, queries)
}

type committer interface {
	Commit() error
	Rollback() error
}

func execInTx(tx committer, exec func(query string) (sql.Result, error), queries []string) (DBResult, error) {
	var result sql.Result
	var err error

	for _, query := range queries {
		if result, err = exec(query); err != nil {
			return nil, errors.Join(err, ignoreDone(tx.Rollback()))
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return result, nil
}

func ignoreDone(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}

	return err
}
