package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// LockOwnerTree takes a transaction-scoped advisory lock keyed by the owner
// id. Every mutation of one owner's folders and files holds it, so ancestry
// checks and the writes that depend on them cannot interleave. Outside a
// transaction the lock would be released immediately.
func (q *Queries) LockOwnerTree(ctx context.Context, ownerID int64) error {
	_, err := q.db.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, ownerID)
	return err
}
