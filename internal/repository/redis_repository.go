package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/nikolayk812/broka-order/internal/domain"
	"github.com/nikolayk812/broka-order/internal/port"
)

const cartKeyPrefix = "cart:"

type storedCart struct {
	Lines     []storedLine `json:"lines"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type storedLine struct {
	ItemID   string   `json:"item_id"`
	AddOnIDs []string `json:"add_on_ids"`
	Quantity int      `json:"quantity"`
}

type redisCartRepository struct {
	rdb  *redis.Client
	menu port.MenuResolver
	ttl  time.Duration
}

// NewRedisCart keeps each cart as one JSON value expiring ttl after its last save.
// A zero ttl keeps carts forever.
func NewRedisCart(rdb *redis.Client, menu port.MenuResolver, ttl time.Duration) port.CartRepository {
	return &redisCartRepository{
		rdb:  rdb,
		menu: menu,
		ttl:  ttl,
	}
}

func (r *redisCartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	val, err := r.rdb.Get(ctx, cartKeyPrefix+ownerID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{OwnerID: ownerID}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("rdb.Get: %w", err)
	}

	var stored storedCart
	if err := json.Unmarshal(val, &stored); err != nil {
		return domain.Cart{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	cart := domain.Cart{OwnerID: ownerID, UpdatedAt: stored.UpdatedAt}
	for i, sl := range stored.Lines {
		item, addOns, err := r.menu.Resolve(sl.ItemID, sl.AddOnIDs)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("line[%d]: menu.Resolve: %w", i, err)
		}
		cart.Lines = append(cart.Lines, domain.CartLine{
			Item:     item,
			AddOns:   addOns,
			Quantity: sl.Quantity,
		})
	}

	return cart, nil
}

func (r *redisCartRepository) SaveCart(ctx context.Context, cart domain.Cart) error {
	if cart.OwnerID == "" {
		return fmt.Errorf("ownerID is empty")
	}
	if err := cart.CheckQuantities(); err != nil {
		return err
	}

	stored := storedCart{
		Lines:     make([]storedLine, 0, len(cart.Lines)),
		UpdatedAt: time.Now().UTC(),
	}
	for _, l := range cart.Lines {
		stored.Lines = append(stored.Lines, storedLine{
			ItemID:   l.Item.ID,
			AddOnIDs: l.AddOnIDs(),
			Quantity: l.Quantity,
		})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := r.rdb.Set(ctx, cartKeyPrefix+cart.OwnerID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("rdb.Set: %w", err)
	}

	return nil
}

func (r *redisCartRepository) DeleteCart(ctx context.Context, ownerID string) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}

	n, err := r.rdb.Del(ctx, cartKeyPrefix+ownerID).Result()
	if err != nil {
		return false, fmt.Errorf("rdb.Del: %w", err)
	}

	return n > 0, nil
}
