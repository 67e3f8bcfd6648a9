package dispatch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/nikolayk812/broka-order/internal/dispatch"
	"github.com/nikolayk812/broka-order/pkg/whatsapp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type recordingNotifier struct {
	mu    sync.Mutex
	texts []string
	err   error
	delay time.Duration
}

func (r *recordingNotifier) Name() string { return "recording" }

// Notify ignores ctx while sleeping, like tgbotapi.BotAPI.Send.
func (r *recordingNotifier) Notify(_ context.Context, text string) error {
	time.Sleep(r.delay)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return r.err
}

func (r *recordingNotifier) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

func TestWhatsApp_Dispatch(t *testing.T) {
	notifier := &recordingNotifier{}
	d, err := dispatch.NewWhatsApp("", "+55 11 99999-9999", zaptest.NewLogger(t), notifier)
	require.NoError(t, err)

	text := "🍔 *NOVO PEDIDO*\n📍 Endereço: Rua São João"
	result, err := d.Dispatch(t.Context(), text)
	require.NoError(t, err)

	parsed, err := url.Parse(result.URL)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", parsed.Host)
	assert.Equal(t, "/5511999999999", parsed.Path)
	assert.Equal(t, text, parsed.Query().Get("text"))

	require.NoError(t, d.Wait(t.Context()))
	assert.Equal(t, []string{text}, notifier.Texts())
}

func TestWhatsApp_NotifierFailureIsNotFatal(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("boom")}
	next := &recordingNotifier{}
	d, err := dispatch.NewWhatsApp("https://wa.me", "5511999999999", zaptest.NewLogger(t), failing, next)
	require.NoError(t, err)

	_, err = d.Dispatch(t.Context(), "pedido")
	require.NoError(t, err)

	require.NoError(t, d.Wait(t.Context()))
	assert.Len(t, failing.Texts(), 1)
	assert.Len(t, next.Texts(), 1)
}

func TestWhatsApp_DispatchDoesNotWaitForNotifiers(t *testing.T) {
	slow := &recordingNotifier{delay: time.Second}
	d, err := dispatch.NewWhatsApp("", "5511999999999", zaptest.NewLogger(t), slow)
	require.NoError(t, err)

	start := time.Now()
	_, err = d.Dispatch(t.Context(), "pedido")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 200*time.Millisecond)
	assert.Empty(t, slow.Texts())

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, d.Wait(ctx), context.DeadlineExceeded)

	require.NoError(t, d.Wait(t.Context()))
	assert.Equal(t, []string{"pedido"}, slow.Texts())
}

func TestWhatsApp_NotifyOutlivesRequestContext(t *testing.T) {
	notifier := &notifierFunc{fn: func(ctx context.Context, _ string) error {
		time.Sleep(50 * time.Millisecond)
		return ctx.Err()
	}}
	d, err := dispatch.NewWhatsApp("", "5511999999999", zaptest.NewLogger(t), notifier)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	_, err = d.Dispatch(ctx, "pedido")
	require.NoError(t, err)
	cancel()

	require.NoError(t, d.Wait(t.Context()))
	require.NoError(t, notifier.Err())
}

func TestWhatsApp_Errors(t *testing.T) {
	_, err := dispatch.NewWhatsApp("", "abc", nil)
	require.EqualError(t, err, "phone is empty")

	d, err := dispatch.NewWhatsApp("", "5511999999999", nil)
	require.NoError(t, err)

	_, err = d.Dispatch(t.Context(), "")
	require.ErrorIs(t, err, dispatch.ErrEmptyMessage)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = d.Dispatch(ctx, "pedido")
	require.ErrorIs(t, err, context.Canceled)
}

type notifierFunc struct {
	fn func(ctx context.Context, text string) error

	mu  sync.Mutex
	err error
}

func (n *notifierFunc) Name() string { return "func" }

func (n *notifierFunc) Notify(ctx context.Context, text string) error {
	err := n.fn(ctx, text)

	n.mu.Lock()
	defer n.mu.Unlock()
	n.err = err
	return err
}

func (n *notifierFunc) Err() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.err
}

func TestGatewayNotifier(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	n := dispatch.GatewayNotifier{Client: whatsapp.NewClient(srv.URL, "u", "p", "dev"), Phone: "5511988887777"}
	require.NoError(t, n.Notify(t.Context(), "pedido"))
	assert.Equal(t, 1, calls)
}
