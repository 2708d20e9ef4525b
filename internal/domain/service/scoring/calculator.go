package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"card_market/internal/domain/entity"
	"card_market/internal/domain/service/profit"
	"card_market/internal/infrastructure/steam"
	"card_market/pkg/logx"
)

const defaultInstantRetries = 3

// Mode selects how an entry is scored. Fast skips the courtesy pauses used
// for long batches; Instant scores on highest buy orders instead of asks.
type Mode struct {
	Fast    bool
	Instant bool
}

type Market interface {
	AppDetails(ctx context.Context, appID int64) (steam.AppDetails, error)
	Cards(ctx context.Context, appID int64, fast bool) ([]entity.Card, error)
	HighestBuyOrder(ctx context.Context, hashName string, maxRetries int) (float64, error)
	Pause(ctx context.Context, d time.Duration) error
	CarefulPause() time.Duration
}

// Calculator turns a catalog entry into a scored Game.
type Calculator struct {
	market         Market
	instantRetries int
	cardPause      time.Duration
	now            func() time.Time
}

func NewCalculator(market Market) *Calculator {
	return &Calculator{
		market:         market,
		instantRetries: defaultInstantRetries,
		cardPause:      time.Second,
		now:            time.Now,
	}
}

func (c *Calculator) WithInstantRetries(n int) *Calculator {
	c.instantRetries = n
	return c
}

func (c *Calculator) WithCardPause(d time.Duration) *Calculator {
	c.cardPause = d
	return c
}

func (c *Calculator) WithClock(now func() time.Time) *Calculator {
	c.now = now
	return c
}

// Score fetches price and card data for appID and derives its profit record.
// Free entries and entries without cards come back with zero price and profit.
func (c *Calculator) Score(ctx context.Context, appID int64, mode Mode) (*entity.Game, error) {
	game := &entity.Game{
		AppID:       appID,
		LastUpdated: c.now().Unix(),
	}

	details, err := c.market.AppDetails(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("market.AppDetails: %w", err)
	}

	if !mode.Fast {
		if err = c.market.Pause(ctx, c.market.CarefulPause()); err != nil {
			return nil, fmt.Errorf("market.Pause: %w", err)
		}
	}

	game.Name = details.Name

	if details.IsFree {
		game.IsFree = true
		return game, nil
	}

	cards, err := c.market.Cards(ctx, appID, mode.Fast)
	if err != nil {
		return nil, fmt.Errorf("market.Cards: %w", err)
	}

	// an entry without cards is stored priceless under zero-fill
	if len(cards) == 0 {
		return game, nil
	}

	game.Price = details.Price
	game.HasCards = true

	if mode.Instant {
		if err = c.fillInstantPrices(ctx, cards); err != nil {
			return nil, err
		}

		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].InstantPrice < cards[j].InstantPrice
		})
	}

	game.Cards = cards
	game.Profit = profit.Compute(game.Price, game.CardPrices(mode.Instant))

	return game, nil
}

func (c *Calculator) fillInstantPrices(ctx context.Context, cards []entity.Card) error {
	for i := range cards {
		if i > 0 {
			if err := c.market.Pause(ctx, c.cardPause); err != nil {
				return fmt.Errorf("market.Pause: %w", err)
			}
		}

		price, err := c.market.HighestBuyOrder(ctx, cards[i].HashName, c.instantRetries)

		switch {
		case err == nil:
			cards[i].InstantPrice = price
		case errors.Is(err, steam.ErrFetchExhausted):
			logger(ctx).Warn(
				"instant price unknown",
				slog.String(logx.FieldHashName, cards[i].HashName),
				logx.Error(err),
			)

			cards[i].InstantPrice = 0
		default:
			return fmt.Errorf("market.HighestBuyOrder: %w", err)
		}
	}

	return nil
}
