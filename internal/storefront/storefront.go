// Package storefront owns the visitor's cart and the checkout flow. Every cart
// mutation goes through a single Storefront so totals, status and dispatch stay
// consistent.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nikolayk812/broka-order/internal/catalog"
	"github.com/nikolayk812/broka-order/internal/clock"
	"github.com/nikolayk812/broka-order/internal/dispatch"
	"github.com/nikolayk812/broka-order/internal/domain"
	"github.com/nikolayk812/broka-order/internal/order"
	"github.com/nikolayk812/broka-order/internal/port"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

const (
	NoticeSent   = "Pedido enviado para o WhatsApp! Complete o pedido através da conversa."
	NoticeFailed = "Erro ao enviar pedido. Tente novamente."
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrLineNotFound    = errors.New("cart line not found")
	ErrStoreClosed     = errors.New("store is closed")
	ErrDispatch        = errors.New("order dispatch failed")
	ErrInvalidQuantity = domain.ErrQuantityOutOfRange
	ErrItemNotFound    = catalog.ErrItemNotFound
	ErrAddOnNotFound   = catalog.ErrAddOnNotFound
	ErrAddOnRepeated   = catalog.ErrAddOnRepeated
)

// StatusSource reports whether the restaurant currently takes orders.
type StatusSource interface {
	Current() clock.Status
}

type AddRequest struct {
	ItemID   string
	AddOnIDs []string
	Quantity int
}

type Receipt struct {
	URL       string
	Message   string
	Total     domain.Money
	ItemCount int
}

type Storefront struct {
	menu       *catalog.Catalog
	carts      port.CartRepository
	status     StatusSource
	dispatcher dispatch.Dispatcher
	currency   currency.Unit
	now        func() time.Time
	logger     *zap.Logger

	mu sync.Mutex
}

type Option func(*Storefront)

func WithNow(now func() time.Time) Option {
	return func(s *Storefront) {
		s.now = now
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Storefront) {
		s.logger = logger
	}
}

func New(menu *catalog.Catalog, carts port.CartRepository, status StatusSource, dispatcher dispatch.Dispatcher, opts ...Option) *Storefront {
	s := &Storefront{
		menu:       menu,
		carts:      carts,
		status:     status,
		dispatcher: dispatcher,
		currency:   currency.BRL,
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Storefront) Menu() []catalog.Section {
	return s.menu.Sections()
}

func (s *Storefront) Status() clock.Status {
	return s.status.Current()
}

func (s *Storefront) Cart(ctx context.Context, ownerID string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx, ownerID)
}

// AddToCart appends a new line. Quantities below 1 are raised to 1; above
// domain.MaxQuantity they are rejected with ErrInvalidQuantity.
func (s *Storefront) AddToCart(ctx context.Context, ownerID string, req AddRequest) (domain.Cart, error) {
	if !s.status.Current().Open {
		return domain.Cart{}, ErrStoreClosed
	}
	if req.Quantity > domain.MaxQuantity {
		return domain.Cart{}, quantityError(req.Quantity)
	}

	item, addOns, err := s.menu.Resolve(req.ItemID, req.AddOnIDs)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("menu.Resolve: %w", err)
	}

	quantity := max(req.Quantity, 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart.Add(item, addOns, quantity)

	if err := s.save(ctx, cart); err != nil {
		return domain.Cart{}, err
	}

	s.logger.Debug("cart line added",
		zap.String("owner_id", ownerID),
		zap.String("item_id", item.ID),
		zap.Int("quantity", quantity))

	return cart, nil
}

// UpdateQuantity clamps values below 1 to 1 and rejects values above
// domain.MaxQuantity.
func (s *Storefront) UpdateQuantity(ctx context.Context, ownerID string, index, quantity int) (domain.Cart, error) {
	if quantity > domain.MaxQuantity {
		return domain.Cart{}, quantityError(quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, err
	}
	if !cart.HasLine(index) {
		return domain.Cart{}, fmt.Errorf("line[%d]: %w", index, ErrLineNotFound)
	}

	cart.SetQuantity(index, quantity)

	if err := s.save(ctx, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (s *Storefront) RemoveLine(ctx context.Context, ownerID string, index int) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, err
	}
	if !cart.HasLine(index) {
		return domain.Cart{}, fmt.Errorf("line[%d]: %w", index, ErrLineNotFound)
	}

	cart.Remove(index)

	if err := s.save(ctx, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (s *Storefront) ClearCart(ctx context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.carts.DeleteCart(ctx, ownerID); err != nil {
		return fmt.Errorf("carts.DeleteCart: %w", err)
	}
	return nil
}

// Checkout validates the address, formats the cart and dispatches it. The cart is
// cleared only after a successful dispatch; on failure it is left untouched so the
// visitor can retry.
func (s *Storefront) Checkout(ctx context.Context, ownerID string, address domain.DeliveryAddress) (Receipt, error) {
	if err := address.Validate(); err != nil {
		return Receipt{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx, ownerID)
	if err != nil {
		return Receipt{}, err
	}
	if cart.IsEmpty() {
		return Receipt{}, ErrEmptyCart
	}

	snapshot := domain.NewOrderSnapshot(cart, address, s.now())
	text := order.Format(snapshot)

	result, err := s.dispatcher.Dispatch(ctx, text)
	if err != nil {
		s.logger.Error("order dispatch failed", zap.String("owner_id", ownerID), zap.Error(err))
		return Receipt{}, fmt.Errorf("%w: dispatcher.Dispatch: %w", ErrDispatch, err)
	}

	if _, err := s.carts.DeleteCart(ctx, ownerID); err != nil {
		// the order already left, so a stale cart is only a nuisance
		s.logger.Warn("clearing dispatched cart failed", zap.String("owner_id", ownerID), zap.Error(err))
	}

	s.logger.Info("order dispatched",
		zap.String("owner_id", ownerID),
		zap.Int("lines", len(snapshot.Lines)),
		zap.String("total", snapshot.Total.Fixed()))

	return Receipt{
		URL:       result.URL,
		Message:   result.Text,
		Total:     snapshot.Total,
		ItemCount: cart.ItemCount(),
	}, nil
}

// ItemLabel is the noun shown next to the item count.
func ItemLabel(count int) string {
	if count == 1 {
		return "item"
	}
	return "itens"
}

func quantityError(quantity int) error {
	return fmt.Errorf("quantity %d exceeds %d: %w", quantity, domain.MaxQuantity, ErrInvalidQuantity)
}

func (s *Storefront) load(ctx context.Context, ownerID string) (domain.Cart, error) {
	cart, err := s.carts.GetCart(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.GetCart: %w", err)
	}
	cart.Currency = s.currency
	return cart, nil
}

func (s *Storefront) save(ctx context.Context, cart domain.Cart) error {
	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return fmt.Errorf("carts.SaveCart: %w", err)
	}
	return nil
}
