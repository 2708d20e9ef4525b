package server

import (
	"fmt"
	"time"

	"card_market/internal/domain/entity"
	"card_market/pkg/rest"
)

const storeAppURL = "https://store.steampowered.com/app/%d"

func newRESTGame(game *entity.Game, instant bool) rest.Game {
	return rest.Game{
		AppID:        game.AppID,
		Name:         game.Name,
		Price:        game.Price,
		MinReturn:    game.Profit.Min,
		MeanReturn:   game.Profit.Avg,
		MedianReturn: game.Profit.Med,
		Cards:        game.CardPrices(instant),
		LastUpdate:   time.Unix(game.LastUpdated, 0).UTC(),
		StoreURL:     fmt.Sprintf(storeAppURL, game.AppID),
	}
}

func newRESTSyncResult(result entity.SyncResult) *rest.SyncResult {
	return &rest.SyncResult{
		Updated: result.Updated,
		Skipped: result.Skipped,
		Failed:  result.Failed,
	}
}

func newRESTPricePoint(p entity.PricePoint) rest.PricePoint {
	return rest.PricePoint{
		Time:   p.Time.UTC(),
		Price:  p.Price,
		Volume: p.Volume,
	}
}
