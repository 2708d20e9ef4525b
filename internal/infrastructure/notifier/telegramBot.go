package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"card_market/internal/domain/entity"
)

type sender interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
}

// TelegramBot posts pass reports to one chat.
type TelegramBot struct {
	bot    sender
	chatID int64
	topN   int
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	return NewTelegramBotWithSender(bot, chatID), nil
}

func NewTelegramBotWithSender(bot sender, chatID int64) *TelegramBot {
	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
		topN:   10, //nolint:mnd
	}
}

func (b *TelegramBot) WithTopN(n int) *TelegramBot {
	b.topN = n
	return b
}

func (b *TelegramBot) NotifyPass(ctx context.Context, report entity.PassReport) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		PassReportText(report, b.topN),
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	logger(ctx).Debug("pass report sent")

	return nil
}

func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	if _, err := b.bot.SendMessage(ctx, tu.Message(tu.ID(b.chatID), text)); err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}
