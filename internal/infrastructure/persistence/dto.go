package persistence

import (
	"card_market/internal/domain/entity"
)

// gameSchema maps a row of games or instant_prices.
type gameSchema struct {
	AppID        int64   `db:"appid"`
	Name         string  `db:"name"`
	Price        float64 `db:"price"`
	MinReturn    float64 `db:"min_return"`
	MeanReturn   float64 `db:"mean_return"`
	MedianReturn float64 `db:"median_return"`
	CardsList    string  `db:"cards_list"`
	LastUpdate   int64   `db:"last_update"`
}

func fromGame(game *entity.Game, instant bool) gameSchema {
	return gameSchema{
		AppID:        game.AppID,
		Name:         game.Name,
		Price:        game.Price,
		MinReturn:    game.Profit.Min,
		MeanReturn:   game.Profit.Avg,
		MedianReturn: game.Profit.Med,
		CardsList:    entity.CardsList(game.CardPrices(instant)),
		LastUpdate:   game.LastUpdated,
	}
}

func (s *gameSchema) toDomain(instant bool) *entity.Game {
	prices := entity.ParseCardsList(s.CardsList)
	cards := make([]entity.Card, len(prices))

	for i, p := range prices {
		if instant {
			cards[i] = entity.Card{InstantPrice: p}
		} else {
			cards[i] = entity.Card{Price: p}
		}
	}

	return &entity.Game{
		AppID:       s.AppID,
		Name:        s.Name,
		Price:       s.Price,
		LastUpdated: s.LastUpdate,
		HasCards:    len(cards) > 0,
		Cards:       cards,
		Profit: entity.Profit{
			Min: s.MinReturn,
			Avg: s.MeanReturn,
			Med: s.MedianReturn,
		},
	}
}
