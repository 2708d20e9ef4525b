package handler

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"card_market/internal/domain/value"
	"card_market/internal/infrastructure/notifier"
	"card_market/internal/transport/bot/view"
	"card_market/pkg/logx"
)

const topPagePrefix = "top_page"

// OnTopCallback flips ranking pages. Data format: "top_page:<page>:<limit>".
func (h *Handler) OnTopCallback(ctx *th.Context, query telego.CallbackQuery) error {
	var page, limit int

	if _, err := fmt.Sscanf(query.Data, topPagePrefix+":%d:%d", &page, &limit); err != nil || page < 1 {
		page, limit = 1, h.pageSize
	}

	text, keyboard, err := h.topPage(ctx, page, limit)
	if err != nil {
		_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).WithText(view.TopError).WithShowAlert())
		return err
	}

	if query.Message != nil {
		_, err = ctx.Bot().EditMessageText(ctx, &telego.EditMessageTextParams{
			ChatID:      tu.ID(query.Message.GetChat().ID),
			MessageID:   query.Message.GetMessageID(),
			Text:        text,
			ParseMode:   telego.ModeHTML,
			ReplyMarkup: keyboard,
		})
		// pressing the current page leaves the message unchanged and Telegram rejects the edit
		if err != nil {
			logger(ctx).Debug("edit ranking message", logx.Error(err))
		}
	}

	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID))
}

func (h *Handler) topPage(ctx context.Context, page, limit int) (string, *telego.InlineKeyboardMarkup, error) {
	games, err := h.ranking.Top(ctx, value.TableInstantPrices, value.ReturnMin, limit)
	if err != nil {
		return "", nil, fmt.Errorf("ranking.Top: %w", err)
	}

	totalPages := Pages(len(games), h.pageSize)
	page = min(page, totalPages)

	start := min((page-1)*h.pageSize, len(games))
	end := min(start+h.pageSize, len(games))

	text := fmt.Sprintf(view.TopTemplate, page, totalPages, notifier.GamesText(games[start:end]))

	return text, paginationKeyboard(page, totalPages, limit), nil
}

func paginationKeyboard(page, totalPages, limit int) *telego.InlineKeyboardMarkup {
	var buttons []telego.InlineKeyboardButton

	if page > 1 {
		buttons = append(buttons, tu.InlineKeyboardButton("⬅️").
			WithCallbackData(fmt.Sprintf("%s:%d:%d", topPagePrefix, page-1, limit)))
	}

	buttons = append(buttons, tu.InlineKeyboardButton(fmt.Sprintf("%d / %d", page, totalPages)).
		WithCallbackData("noop"))

	if page < totalPages {
		buttons = append(buttons, tu.InlineKeyboardButton("➡️").
			WithCallbackData(fmt.Sprintf("%s:%d:%d", topPagePrefix, page+1, limit)))
	}

	return tu.InlineKeyboard(tu.InlineKeyboardRow(buttons...))
}
