package middleware

import (
	"slices"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

// AdminOnly drops updates from anyone outside admins. With no admins
// configured every update is dropped.
func AdminOnly(admins ...int64) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		if IsAdmin(update, admins) {
			return ctx.Next(update)
		}

		return nil
	}
}

func IsAdmin(update telego.Update, admins []int64) bool {
	userID, ok := SenderID(update)
	if !ok {
		return false
	}

	return slices.Contains(admins, userID)
}

// SenderID returns the id of the user behind a message or a callback query.
func SenderID(update telego.Update) (int64, bool) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID, true
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From.ID, true
	default:
		return 0, false
	}
}
