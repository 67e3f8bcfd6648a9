package port

import (
	"context"

	"github.com/nikolayk812/broka-order/internal/domain"
)

// CartRepository keeps a visitor's cart between requests. GetCart returns an
// empty cart for an owner that has none.
type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)
	SaveCart(ctx context.Context, cart domain.Cart) error
	DeleteCart(ctx context.Context, ownerID string) (bool, error)
}

// MenuResolver turns stored item and add-on IDs back into catalog values.
type MenuResolver interface {
	Resolve(itemID string, addOnIDs []string) (domain.MenuItem, []domain.MenuAddOn, error)
}
