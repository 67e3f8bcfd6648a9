// Package notify forwards dispatched orders to the kitchen staff.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram logs the bot in, which costs one getMe round trip.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	return NewTelegramWithEndpoint(token, chatID, tgbotapi.APIEndpoint)
}

// NewTelegramWithEndpoint points the bot at a custom Bot API server,
// endpoint being a "https://host/bot%s/%s" style template.
func NewTelegramWithEndpoint(token string, chatID int64, endpoint string) (*Telegram, error) {
	if token == "" {
		return nil, fmt.Errorf("token is empty")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("chatID is empty")
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, &http.Client{Timeout: 10 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("tgbotapi.NewBotAPIWithClient: %w", err)
	}

	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Name() string { return "telegram" }

func (t *Telegram) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("bot.Send: %w", err)
	}
	return nil
}
