package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"card_market/internal/transport/bot/handler"
	"card_market/pkg/logx"
)

const pollTimeoutSeconds = 60

// Bot serves admin commands over long polling.
type Bot struct {
	bot     *telego.Bot
	handler *handler.Handler
	admins  []int64
}

func New(token string, admins []int64, h *handler.Handler) (*Bot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	return &Bot{
		bot:     bot,
		handler: h,
		admins:  admins,
	}, nil
}

// Run polls for updates until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	updates, err := b.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: pollTimeoutSeconds,
	})
	if err != nil {
		return fmt.Errorf("bot.UpdatesViaLongPolling: %w", err)
	}

	botHandler, err := th.NewBotHandler(b.bot, updates)
	if err != nil {
		return fmt.Errorf("th.NewBotHandler: %w", err)
	}

	b.handler.RegisterRoutes(botHandler, b.admins)

	go func() {
		if err := botHandler.Start(); err != nil {
			logger(ctx).Error("bot handler stopped", logx.Error(err))
		}
	}()

	logger(ctx).Info("bot started")

	<-ctx.Done()

	if err := botHandler.Stop(); err != nil {
		logger(ctx).Error("botHandler.Stop", logx.Error(err))
	}

	logger(ctx).Info("bot stopped")

	return nil
}
