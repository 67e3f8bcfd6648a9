package config_test

import (
	"testing"
	"time"

	"github.com/nikolayk812/broka-order/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"SERVER_PORT", "APP_ENV", "CORS_ORIGINS", "STORE_TIMEZONE",
	"CART_STORE", "DATABASE_URL", "REDIS_URL", "CART_TTL",
	"WHATSAPP_PHONE", "WHATSAPP_BASE_URL", "WHATSAPP_API_URL", "WHATSAPP_USERNAME", "WHATSAPP_PASSWORD", "WHATSAPP_PATH",
	"TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID", "STATUS_INTERVAL",
}

// clearEnv blanks every key so a developer's shell or .env cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, config.StoreMemory, cfg.Cart.Store)
	assert.Equal(t, 24*time.Hour, cfg.Cart.TTL)
	assert.Equal(t, "5511999999999", cfg.WhatsApp.Phone)
	assert.Equal(t, "https://wa.me", cfg.WhatsApp.LinkBaseURL)
	assert.Equal(t, time.Second, cfg.StatusInterval)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_ENV", "development")
	t.Setenv("CORS_ORIGINS", "https://broka.example, http://localhost:3000,")
	t.Setenv("CART_STORE", "redis")
	t.Setenv("CART_TTL", "600")
	t.Setenv("WHATSAPP_PHONE", "5521988887777")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001234")
	t.Setenv("STATUS_INTERVAL", "5")
	t.Setenv("STORE_TIMEZONE", "America/Sao_Paulo")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"https://broka.example", "http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, config.StoreRedis, cfg.Cart.Store)
	assert.Equal(t, 10*time.Minute, cfg.Cart.TTL)
	assert.Equal(t, "5521988887777", cfg.WhatsApp.Phone)
	assert.Equal(t, int64(-1001234), cfg.Telegram.ChatID)
	assert.Equal(t, 5*time.Second, cfg.StatusInterval)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			Cart:           config.CartConfig{Store: config.StoreMemory},
			WhatsApp:       config.WhatsAppConfig{Phone: "5511999999999"},
			StatusInterval: time.Second,
		}
	}

	tests := []struct {
		name      string
		mutate    func(c *config.Config)
		wantError string
	}{
		{
			name:   "valid: ok",
			mutate: func(c *config.Config) {},
		},
		{
			name:      "phone with symbols: error",
			mutate:    func(c *config.Config) { c.WhatsApp.Phone = "+55 11 99999" },
			wantError: `WHATSAPP_PHONE "+55 11 99999" must contain digits only`,
		},
		{
			name:      "unknown store: error",
			mutate:    func(c *config.Config) { c.Cart.Store = "mongo" },
			wantError: `CART_STORE "mongo" is not one of memory, postgres, redis`,
		},
		{
			name: "postgres without url: error",
			mutate: func(c *config.Config) {
				c.Cart.Store = config.StorePostgres
			},
			wantError: "DATABASE_URL is required for the postgres cart store",
		},
		{
			name:      "interval too long: error",
			mutate:    func(c *config.Config) { c.StatusInterval = 2 * time.Minute },
			wantError: "STATUS_INTERVAL 2m0s is outside [1s, 1m]",
		},
		{
			name:      "telegram token without chat: error",
			mutate:    func(c *config.Config) { c.Telegram.Token = "123:abc" },
			wantError: "TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set",
		},
		{
			name:      "unknown timezone: error",
			mutate:    func(c *config.Config) { c.Timezone = "Mars/Olympus" },
			wantError: "STORE_TIMEZONE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantError == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestConfig_Validate_ReportsAll(t *testing.T) {
	cfg := config.Config{
		Cart:     config.CartConfig{Store: "mongo", TTL: -time.Second},
		WhatsApp: config.WhatsAppConfig{Phone: "abc"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WHATSAPP_PHONE")
	assert.Contains(t, err.Error(), "CART_STORE")
	assert.Contains(t, err.Error(), "CART_TTL")
	assert.Contains(t, err.Error(), "STATUS_INTERVAL")
}
