// Package dispatch hands a formatted order to the restaurant's messaging channel.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nikolayk812/broka-order/pkg/whatsapp"
	"go.uber.org/zap"
)

var ErrEmptyMessage = errors.New("message is empty")

type Result struct {
	URL  string
	Text string
}

type Dispatcher interface {
	Dispatch(ctx context.Context, text string) (Result, error)
}

// Notifier is a best-effort side channel that also receives every dispatched order.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, text string) error
}

// WhatsApp builds wa.me deep links and fans the order out to the notifiers in
// the background.
type WhatsApp struct {
	baseURL   string
	phone     string
	notifiers []Notifier
	timeout   time.Duration
	logger    *zap.Logger

	wg sync.WaitGroup
}

// NewWhatsApp builds the deep-link dispatcher. The customer opens the returned URL,
// so dispatching never learns whether the message was actually sent.
func NewWhatsApp(baseURL, phone string, logger *zap.Logger, notifiers ...Notifier) (*WhatsApp, error) {
	phone = whatsapp.NormalizePhone(phone)
	if phone == "" {
		return nil, fmt.Errorf("phone is empty")
	}
	if baseURL == "" {
		baseURL = whatsapp.DefaultLinkBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WhatsApp{
		baseURL:   baseURL,
		phone:     phone,
		notifiers: notifiers,
		timeout:   5 * time.Second,
		logger:    logger,
	}, nil
}

// Dispatch returns as soon as the link is built. Notifiers run on their own
// goroutine, detached from ctx and bounded by the notifier timeout.
func (d *WhatsApp) Dispatch(ctx context.Context, text string) (Result, error) {
	if text == "" {
		return Result{}, ErrEmptyMessage
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("ctx.Err: %w", err)
	}

	result := Result{
		URL:  whatsapp.DeepLink(d.baseURL, d.phone, text),
		Text: text,
	}

	if len(d.notifiers) > 0 {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.notify(context.WithoutCancel(ctx), text)
		}()
	}

	return result, nil
}

// Wait blocks until pending notifications finish or ctx is done.
func (d *WhatsApp) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("ctx.Done: %w", ctx.Err())
	}
}

func (d *WhatsApp) notify(ctx context.Context, text string) {
	for _, n := range d.notifiers {
		nctx, cancel := context.WithTimeout(ctx, d.timeout)
		err := n.Notify(nctx, text)
		cancel()

		if err != nil {
			d.logger.Warn("order notification failed", zap.String("notifier", n.Name()), zap.Error(err))
			continue
		}
		d.logger.Debug("order notification sent", zap.String("notifier", n.Name()))
	}
}

// GatewayNotifier pushes the order to a staff number through a WhatsApp gateway.
type GatewayNotifier struct {
	Client *whatsapp.Client
	Phone  string
}

func (g GatewayNotifier) Name() string { return "whatsapp-gateway" }

func (g GatewayNotifier) Notify(ctx context.Context, text string) error {
	if err := g.Client.SendTextMessage(ctx, g.Phone, text); err != nil {
		return fmt.Errorf("client.SendTextMessage: %w", err)
	}
	return nil
}
