package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/broka-order/internal/db"
	"github.com/nikolayk812/broka-order/internal/domain"
	"github.com/nikolayk812/broka-order/internal/port"
)

type cartRepository struct {
	q    *db.Queries
	conn beginner
	menu port.MenuResolver
}

func NewCart(pool *pgxpool.Pool, menu port.MenuResolver) port.CartRepository {
	return &cartRepository{
		q:    db.New(pool),
		conn: pool,
		menu: menu,
	}
}

// NewCartWithTx binds the repository to tx. Writes run in savepoints of tx and
// become visible once the caller commits.
func NewCartWithTx(tx pgx.Tx, menu port.MenuResolver) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		conn: tx,
		menu: menu,
	}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	rows, err := r.q.GetCartLines(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.GetCartLines: %w", err)
	}

	cart, err := mapGetCartLinesRowsToDomain(r.menu, ownerID, rows)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapGetCartLinesRowsToDomain: %w", err)
	}

	return cart, nil
}

// SaveCart replaces every stored line of the owner in one transaction.
func (r *cartRepository) SaveCart(ctx context.Context, cart domain.Cart) error {
	if cart.OwnerID == "" {
		return fmt.Errorf("ownerID is empty")
	}
	// quantities are bounded well below math.MaxInt32, so the int32 casts are exact
	if err := cart.CheckQuantities(); err != nil {
		return err
	}

	return r.inCartTx(ctx, cart.OwnerID, func(q *db.Queries) error {
		if _, err := q.DeleteCartLines(ctx, cart.OwnerID); err != nil {
			return fmt.Errorf("q.DeleteCartLines: %w", err)
		}

		for i, line := range cart.Lines {
			err := q.InsertCartLine(ctx, db.InsertCartLineParams{
				OwnerID:  cart.OwnerID,
				Position: int32(i),
				ItemID:   line.Item.ID,
				AddOnIDs: line.AddOnIDs(),
				Quantity: int32(line.Quantity),
			})
			if err != nil {
				return fmt.Errorf("q.InsertCartLine[%d]: %w", i, err)
			}
		}

		return nil
	})
}

func (r *cartRepository) DeleteCart(ctx context.Context, ownerID string) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}

	rowsAffected, err := r.q.DeleteCartLines(ctx, ownerID)
	if err != nil {
		return false, fmt.Errorf("q.DeleteCartLines: %w", err)
	}

	return rowsAffected > 0, nil
}

func mapGetCartLinesRowToDomain(menu port.MenuResolver, row db.GetCartLinesRow) (domain.CartLine, error) {
	item, addOns, err := menu.Resolve(row.ItemID, row.AddOnIDs)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("menu.Resolve: %w", err)
	}

	return domain.CartLine{
		Item:     item,
		AddOns:   addOns,
		Quantity: int(row.Quantity),
	}, nil
}

func mapGetCartLinesRowsToDomain(menu port.MenuResolver, ownerID string, rows []db.GetCartLinesRow) (domain.Cart, error) {
	cart := domain.Cart{OwnerID: ownerID}

	for _, row := range rows {
		line, err := mapGetCartLinesRowToDomain(menu, row)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("line[%d]: %w", row.Position, err)
		}

		cart.Lines = append(cart.Lines, line)
		if row.CreatedAt.After(cart.UpdatedAt) {
			cart.UpdatedAt = row.CreatedAt
		}
	}

	return cart, nil
}
