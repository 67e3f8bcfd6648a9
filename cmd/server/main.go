package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/broka-order/internal/catalog"
	"github.com/nikolayk812/broka-order/internal/clock"
	"github.com/nikolayk812/broka-order/internal/config"
	"github.com/nikolayk812/broka-order/internal/dispatch"
	"github.com/nikolayk812/broka-order/internal/handler"
	"github.com/nikolayk812/broka-order/internal/migrations"
	"github.com/nikolayk812/broka-order/internal/notify"
	"github.com/nikolayk812/broka-order/internal/port"
	"github.com/nikolayk812/broka-order/internal/repository"
	"github.com/nikolayk812/broka-order/internal/storefront"
	"github.com/nikolayk812/broka-order/pkg/whatsapp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config.Load:", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "newLogger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("cfg.Location: %w", err)
	}
	now := func() time.Time { return time.Now().In(loc) }

	menu := catalog.Default()

	carts, closeCarts, err := openCartStore(ctx, cfg, menu, logger)
	if err != nil {
		return fmt.Errorf("openCartStore: %w", err)
	}
	defer closeCarts()

	dispatcher, err := dispatch.NewWhatsApp(cfg.WhatsApp.LinkBaseURL, cfg.WhatsApp.Phone, logger.Named("dispatch"), notifiers(cfg, logger)...)
	if err != nil {
		return fmt.Errorf("dispatch.NewWhatsApp: %w", err)
	}

	watcher, err := clock.NewWatcher(clock.DefaultHours, cfg.StatusInterval, logger.Named("clock"), clock.WithNow(now))
	if err != nil {
		return fmt.Errorf("clock.NewWatcher: %w", err)
	}
	go func() {
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("status watcher stopped", zap.Error(err))
		}
	}()
	go func() {
		for s := range watcher.Updates() {
			logger.Debug("store status", zap.Bool("open", s.Open), zap.String("now", s.Now.Format("15:04")))
		}
	}()

	store := storefront.New(menu, carts, watcher, dispatcher,
		storefront.WithNow(now),
		storefront.WithLogger(logger.Named("storefront")))

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(handler.New(store, logger.Named("http")), handler.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.ServerPort),
			zap.String("cart_store", cfg.Cart.Store),
			zap.String("hours", clock.DefaultHours.String()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}
	if err := dispatcher.Wait(shutdownCtx); err != nil {
		logger.Warn("pending order notifications dropped", zap.Error(err))
	}
	return nil
}

func openCartStore(ctx context.Context, cfg *config.Config, menu *catalog.Catalog, logger *zap.Logger) (port.CartRepository, func(), error) {
	switch cfg.Cart.Store {
	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.Cart.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("pool.Ping: %w", err)
		}

		applied, err := migrations.Apply(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrations.Apply: %w", err)
		}
		logger.Info("migrations applied", zap.Strings("files", applied))

		return repository.NewCart(pool, menu), pool.Close, nil

	case config.StoreRedis:
		opt, err := redis.ParseURL(cfg.Cart.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("redis.ParseURL: %w", err)
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("rdb.Ping: %w", err)
		}

		closeFn := func() {
			if err := rdb.Close(); err != nil {
				logger.Warn("closing redis", zap.Error(err))
			}
		}
		return repository.NewRedisCart(rdb, menu, cfg.Cart.TTL), closeFn, nil

	default:
		return repository.NewMemoryCart(), func() {}, nil
	}
}

// notifiers builds the optional staff side channels. A channel that cannot start
// is logged and skipped; the deep link alone still delivers the order.
func notifiers(cfg *config.Config, logger *zap.Logger) []dispatch.Notifier {
	var out []dispatch.Notifier

	if cfg.WhatsApp.APIURL != "" {
		client := whatsapp.NewClient(cfg.WhatsApp.APIURL, cfg.WhatsApp.Username, cfg.WhatsApp.Password, cfg.WhatsApp.Path)
		out = append(out, dispatch.GatewayNotifier{Client: client, Phone: cfg.WhatsApp.Phone})
	}

	if cfg.Telegram.Token != "" {
		tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			logger.Warn("telegram notifier disabled", zap.Error(err))
		} else {
			out = append(out, tg)
		}
	}

	return out
}
