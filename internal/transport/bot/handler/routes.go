package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"card_market/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, admins []int64) {
	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(admins...))

	adminGroup.HandleMessage(h.OnStart, th.CommandEqual("start"))
	adminGroup.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	adminGroup.HandleMessage(h.OnTop, th.CommandEqual("top"))
	adminGroup.HandleMessage(h.OnRefresh, th.CommandEqual("refresh"))
	adminGroup.HandleMessage(h.OnExclude, th.CommandEqual("exclude"))
	adminGroup.HandleMessage(h.OnInclude, th.CommandEqual("include"))
	adminGroup.HandleMessage(h.OnExcluded, th.CommandEqual("excluded"))

	cbGroup := bh.Group(th.AnyCallbackQuery())
	cbGroup.Use(middleware.AdminOnly(admins...))

	cbGroup.HandleCallbackQuery(h.OnTopCallback, th.CallbackDataPrefix(topPagePrefix))
}
