package adapters

import "context"

// DBAdapter is what the postgres engine needs from a database handle.
// ExecSerializable runs the statements inside one SERIALIZABLE transaction and
// returns the rows affected by the last one.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
	ExecSerializable(ctx context.Context, queries ...string) (DBResult, error)
}

type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DBResult interface {
	RowsAffected() (int64, error)
}
