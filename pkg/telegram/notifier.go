package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/valentinrios/memora/pkg/errx"
	"github.com/valentinrios/memora/pkg/kernel"
	"github.com/valentinrios/memora/pkg/logx"
)

// Notifier delivers reminder messages through the bot API. It implements
// reminder.Notifier.
type Notifier struct {
	api *tgbotapi.BotAPI
}

// NewNotifier creates the delivery channel around an authorized client.
func NewNotifier(api *tgbotapi.BotAPI) *Notifier {
	return &Notifier{
		api: api,
	}
}

// Send delivers one HTML message. Failures are classified: a chat that
// blocked the bot (403) is permanently unreachable and is given up on without
// retry; anything else (network, rate limit, server errors) is reported as
// transient so the caller logs and carries on. The engine retries nothing
// either way; the next tick is the retry.
func (n *Notifier) Send(ctx context.Context, chatID kernel.ChatID, html string) error {
	msg := tgbotapi.NewMessage(chatID.Int64(), html)
	msg.ParseMode = tgbotapi.ModeHTML

	_, err := n.api.Send(msg)
	if err == nil {
		return nil
	}

	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 403 {
		logx.Warnf("chat %s is unreachable (blocked the bot), giving up", chatID)
		return errx.Wrap(err, "chat unreachable", errx.TypeExternal).
			WithDetail("chat_id", chatID.String()).
			WithDetail("permanent", true)
	}

	return errx.Wrap(err, "transient delivery failure", errx.TypeExternal).
		WithDetail("chat_id", chatID.String())
}
