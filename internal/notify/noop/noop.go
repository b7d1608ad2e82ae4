// Package noop is the notifier used when no Telegram credentials are
// configured.
package noop

import (
	"context"

	"range-trading-bot/internal/interfaces"
)

type Notifier struct{}

var _ interfaces.Notifier = (*Notifier)(nil)

func New() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Post(ctx context.Context, text string) {}
