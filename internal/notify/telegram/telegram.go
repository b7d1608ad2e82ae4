// Package telegram delivers operator alerts through the Telegram bot API.
package telegram

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"range-trading-bot/internal/interfaces"
	"range-trading-bot/internal/logger"
)

type Notifier struct {
	http   *resty.Client
	chatID string
}

var _ interfaces.Notifier = (*Notifier)(nil)

func New(botToken, chatID string) *Notifier {
	http := resty.New().
		SetBaseURL("https://api.telegram.org/bot" + botToken).
		SetTimeout(10 * time.Second)
	return &Notifier{http: http, chatID: chatID}
}

// Post sends the message. Failures are logged and swallowed: notification
// delivery must never block or fail a trading decision.
func (n *Notifier) Post(ctx context.Context, text string) {
	if text == "" {
		return
	}
	resp, err := n.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"chat_id":                  n.chatID,
			"text":                     text,
			"parse_mode":               "markdown",
			"disable_web_page_preview": "true",
		}).
		Get("/sendMessage")
	if err != nil {
		logger.Warn(ctx, "Telegram notification failed", "error", err)
		return
	}
	if resp.IsError() {
		logger.Warn(ctx, "Telegram notification rejected",
			"status", resp.StatusCode(),
			"body", resp.String(),
		)
	}
}
