package handler

import (
	"fmt"
	"html"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"card_market/internal/domain"
	"card_market/internal/domain/value"
	"card_market/internal/infrastructure/notifier"
	"card_market/internal/transport/bot/view"
	"card_market/internal/transport/tasks"
	"card_market/pkg/errcodes"
	"card_market/pkg/logx"
)

const statusTopN = 3

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	state := view.ScannerIdle
	if h.scanner.IsRunning() {
		state = view.ScannerRunning
	}

	last := view.NoPassYet
	if report := h.scanner.LastReport(); report != nil {
		last = notifier.PassReportText(*report, statusTopN)
	}

	text := fmt.Sprintf(view.StatusTemplate, state, len(h.scanner.Excluded()), last)

	return h.sendHTML(ctx, msg.Chat.ID, text)
}

// OnTop shows the first page of the instant-price ranking.
// Usage: /top 20
func (h *Handler) OnTop(ctx *th.Context, msg telego.Message) error {
	limit := ParseTopLimit(CommandArgs(msg.Text), h.pageSize)

	text, keyboard, err := h.topPage(ctx, 1, limit)
	if err != nil {
		logger(ctx).Error("failed to load ranking", logx.Error(err))
		return h.sendHTML(ctx, msg.Chat.ID, view.TopError)
	}

	_, err = ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:      telego.ChatID{ID: msg.Chat.ID},
		Text:        text,
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: keyboard,
	})

	return err
}

// OnRefresh rescores apps outside the schedule.
// Usage: /refresh 440 570, /refresh instant 440
func (h *Handler) OnRefresh(ctx *th.Context, msg telego.Message) error {
	args := CommandArgs(msg.Text)

	table := value.TableGames
	if len(args) > 0 && args[0] == "instant" {
		table = value.TableInstantPrices
		args = args[1:]
	}

	ids, invalid := ParseAppIDs(args)
	if len(ids) == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, view.RefreshUsage)
	}

	suffix := ""
	if len(invalid) > 0 {
		suffix = fmt.Sprintf(view.InvalidIDs, html.EscapeString(strings.Join(invalid, ", ")))
	}

	if h.enqueuer != nil {
		taskID, err := h.enqueuer.EnqueueRefresh(ctx, tasks.RefreshPayload{AppIDs: ids, Instant: table.Instant()})
		if err != nil {
			return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.RefreshFailed, html.EscapeString(err.Error())))
		}

		return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.RefreshQueued, len(ids), taskID)+suffix)
	}

	if err := h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.RefreshStarted, len(ids), table)+suffix); err != nil {
		return err
	}

	result, err := h.scanner.Refresh(ctx, ids, table)
	if err != nil {
		if code, _ := domain.GetCode(err); code == errcodes.RefreshInProgress {
			return h.sendHTML(ctx, msg.Chat.ID, view.RefreshBusy)
		}

		return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.RefreshFailed, html.EscapeString(err.Error())))
	}

	return h.sendHTML(ctx, msg.Chat.ID,
		fmt.Sprintf(view.RefreshDone, table, result.Updated, result.Skipped, result.Failed))
}

// OnExclude adds apps to the excluded set.
// Usage: /exclude 440 570
func (h *Handler) OnExclude(ctx *th.Context, msg telego.Message) error {
	ids, invalid := ParseAppIDs(CommandArgs(msg.Text))
	if len(ids) == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, view.ExcludeUsage)
	}

	h.scanner.Exclude(ids...)

	text := fmt.Sprintf(view.ExcludeDone, len(ids))
	if len(invalid) > 0 {
		text += fmt.Sprintf(view.InvalidIDs, html.EscapeString(strings.Join(invalid, ", ")))
	}

	return h.sendHTML(ctx, msg.Chat.ID, text)
}

// OnInclude removes an app from the excluded set.
// Usage: /include 440
func (h *Handler) OnInclude(ctx *th.Context, msg telego.Message) error {
	ids, _ := ParseAppIDs(CommandArgs(msg.Text))
	if len(ids) != 1 {
		return h.sendHTML(ctx, msg.Chat.ID, view.IncludeUsage)
	}

	id := ids[0]

	if !h.scanner.IsExcluded(id) {
		return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.IncludeNotFound, id))
	}

	h.scanner.Include(id)

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.IncludeDone, id))
}

func (h *Handler) OnExcluded(ctx *th.Context, msg telego.Message) error {
	ids := h.scanner.Excluded()
	if len(ids) == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, view.ExcludedEmpty)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, view.ExcludedHeader, len(ids))

	for i, id := range ids {
		fmt.Fprintf(&sb, "%d. <code>%d</code>\n", i+1, id)
	}

	return h.sendHTML(ctx, msg.Chat.ID, sb.String())
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})

	return err
}
