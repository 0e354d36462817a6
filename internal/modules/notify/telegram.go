package notify

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramChannel posts plain-text messages to the staff operations chat
// through a bot token.
type TelegramChannel struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramChannel(token string, chatID int64) (*TelegramChannel, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramChannel{bot: bot, chatID: chatID}, nil
}

// Send posts text to the configured operations chat and returns the
// provider message id for diagnostics.
func (t *TelegramChannel) Send(ctx context.Context, text string) (int, error) {
	return t.SendTo(ctx, t.chatID, text)
}

func (t *TelegramChannel) SendTo(_ context.Context, chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	sent, err := t.bot.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}
