package steam

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"card_market/internal/domain/entity"
	"card_market/internal/domain/value"
)

// Steam labels buckets "Nov 27 2013 01: +0"; the offset is always +0.
const priceHistoryLayout = "Jan 2 2006 15"

// PriceHistory returns the sales history of a card, oldest first, restricted
// to since. hashName is percent-encoded like entity.Card.HashName. The
// endpoint is retried forever.
func (c *Client) PriceHistory(
	ctx context.Context,
	hashName string,
	since value.HistoryWindow,
) ([]entity.PricePoint, error) {
	name, err := url.PathUnescape(hashName)
	if err != nil {
		return nil, fmt.Errorf("steam.Client.PriceHistory: url.PathUnescape: %w", err)
	}

	query := url.Values{}
	query.Set("appid", communityAppID)
	query.Set("market_hash_name", name)

	resp, err := c.fetcher.Get(ctx, c.cfg.CommunityURL+"/market/pricehistory/?"+query.Encode(), c.forever())
	if err != nil {
		return nil, fmt.Errorf("steam.Client.PriceHistory: %w", err)
	}

	var payload priceHistoryResponse

	if err = json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("steam.Client.PriceHistory: %w: %w", ErrMalformedUpstream, err)
	}

	if !payload.Success {
		return nil, fmt.Errorf("steam.Client.PriceHistory: %w: no history for %s", ErrMalformedUpstream, hashName)
	}

	cutoff, limited := since.Cutoff(c.now())
	points := make([]entity.PricePoint, 0, len(payload.Prices))

	for _, row := range payload.Prices {
		at, parseErr := parsePriceLabel(row.Label)
		if parseErr != nil {
			return nil, fmt.Errorf("steam.Client.PriceHistory: %w: %w", ErrMalformedUpstream, parseErr)
		}

		if limited && !at.After(cutoff) {
			continue
		}

		points = append(points, entity.PricePoint{
			Time:   at,
			Price:  row.Price.InexactFloat64(),
			Volume: row.Volume,
		})
	}

	return points, nil
}

func parsePriceLabel(label string) (time.Time, error) {
	hour, _, _ := strings.Cut(label, ":")

	at, err := time.Parse(priceHistoryLayout, strings.TrimSpace(hour))
	if err != nil {
		return time.Time{}, fmt.Errorf("time.Parse %q: %w", label, err)
	}

	return at, nil
}
