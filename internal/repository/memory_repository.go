package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nikolayk812/broka-order/internal/domain"
	"github.com/nikolayk812/broka-order/internal/port"
)

// memoryCartRepository keeps carts in process memory. Carts are copied on the way
// in and out so callers never share line slices with the store.
type memoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

func NewMemoryCart() port.CartRepository {
	return &memoryCartRepository{
		carts: make(map[string]domain.Cart),
	}
}

func (r *memoryCartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[ownerID]
	if !ok {
		return domain.Cart{OwnerID: ownerID}, nil
	}

	return copyCart(cart), nil
}

func (r *memoryCartRepository) SaveCart(ctx context.Context, cart domain.Cart) error {
	if cart.OwnerID == "" {
		return fmt.Errorf("ownerID is empty")
	}
	if err := cart.CheckQuantities(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := copyCart(cart)
	stored.UpdatedAt = time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[cart.OwnerID] = stored
	return nil
}

func (r *memoryCartRepository) DeleteCart(ctx context.Context, ownerID string) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.carts[ownerID]
	delete(r.carts, ownerID)
	return ok, nil
}

func copyCart(cart domain.Cart) domain.Cart {
	out := cart
	if cart.Lines == nil {
		return out
	}

	out.Lines = make([]domain.CartLine, len(cart.Lines))
	for i, l := range cart.Lines {
		l.AddOns = append([]domain.MenuAddOn(nil), l.AddOns...)
		out.Lines[i] = l
	}
	return out
}
