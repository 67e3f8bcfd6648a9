package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nikolayk812/broka-order/internal/db"
)

// beginner is a *pgxpool.Pool, or the pgx.Tx a repository was bound to. Begin
// on a pgx.Tx opens a savepoint, so a failed write never aborts the caller's
// transaction and the caller still decides whether to commit.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// inCartTx runs fn on a transaction holding the owner's advisory lock, so
// concurrent replacements of one cart are applied one after another.
func (r *cartRepository) inCartTx(ctx context.Context, ownerID string, fn func(q *db.Queries) error) error {
	err := pgx.BeginFunc(ctx, r.conn, func(tx pgx.Tx) error {
		q := r.q.WithTx(tx)

		if err := q.LockCart(ctx, ownerID); err != nil {
			return fmt.Errorf("q.LockCart: %w", err)
		}

		return fn(q)
	})
	if err != nil {
		return fmt.Errorf("pgx.BeginFunc: %w", err)
	}
	return nil
}
