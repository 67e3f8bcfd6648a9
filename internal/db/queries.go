// Package db holds the SQL used by the Postgres cart store.
package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

const getCartLines = `
SELECT position, item_id, add_on_ids, quantity, created_at
FROM cart_lines
WHERE owner_id = $1
ORDER BY position
`

type GetCartLinesRow struct {
	Position  int32
	ItemID    string
	AddOnIDs  []string
	Quantity  int32
	CreatedAt time.Time
}

func (q *Queries) GetCartLines(ctx context.Context, ownerID string) ([]GetCartLinesRow, error) {
	rows, err := q.db.Query(ctx, getCartLines, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []GetCartLinesRow
	for rows.Next() {
		var i GetCartLinesRow
		if err := rows.Scan(&i.Position, &i.ItemID, &i.AddOnIDs, &i.Quantity, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertCartLine = `
INSERT INTO cart_lines (owner_id, position, item_id, add_on_ids, quantity)
VALUES ($1, $2, $3, $4, $5)
`

type InsertCartLineParams struct {
	OwnerID  string
	Position int32
	ItemID   string
	AddOnIDs []string
	Quantity int32
}

func (q *Queries) InsertCartLine(ctx context.Context, arg InsertCartLineParams) error {
	_, err := q.db.Exec(ctx, insertCartLine,
		arg.OwnerID,
		arg.Position,
		arg.ItemID,
		arg.AddOnIDs,
		arg.Quantity,
	)
	return err
}

const deleteCartLines = `
DELETE FROM cart_lines
WHERE owner_id = $1
`

func (q *Queries) DeleteCartLines(ctx context.Context, ownerID string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteCartLines, ownerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const lockCart = `
SELECT pg_advisory_xact_lock(hashtext($1))
`

// LockCart serializes writers of one owner until the transaction ends.
func (q *Queries) LockCart(ctx context.Context, ownerID string) error {
	_, err := q.db.Exec(ctx, lockCart, ownerID)
	return err
}
