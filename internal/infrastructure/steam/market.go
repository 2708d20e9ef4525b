package steam

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"card_market/internal/domain/entity"
)

// communityAppID is the Steam Community app that owns every trading card.
const communityAppID = "753"

// Cards returns the normal (non-foil) trading cards of appID, cheapest
// first. An empty slice means the app has no resalable cards. Unless fast is
// set, it pauses after the request.
func (c *Client) Cards(ctx context.Context, appID int64, fast bool) ([]entity.Card, error) {
	query := url.Values{}
	query.Set("l", c.cfg.Language)
	query.Set("currency", strconv.Itoa(c.cfg.Currency))
	query.Set("category_753_cardborder[]", "tag_cardborder_0")
	query.Set("category_753_item_class[]", "tag_item_class_2")
	query.Set("category_753_Game[]", "tag_app_"+strconv.FormatInt(appID, 10))
	query.Set("appid", communityAppID)
	query.Set("norender", "1")
	query.Set("count", "100")

	resp, err := c.fetcher.Get(ctx, c.cfg.CommunityURL+"/market/search/render/?"+query.Encode(), c.forever())
	if err != nil {
		return nil, fmt.Errorf("steam.Client.Cards: %w", err)
	}

	if !fast {
		if err = c.Pause(ctx, c.cfg.CarefulPause); err != nil {
			return nil, fmt.Errorf("steam.Client.Cards: %w", err)
		}
	}

	var payload marketSearchResponse

	if err = json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("steam.Client.Cards: %w: %w", ErrMalformedUpstream, err)
	}

	if payload.TotalCount == nil {
		return nil, fmt.Errorf("steam.Client.Cards: %w: total_count missing", ErrMalformedUpstream)
	}

	if *payload.TotalCount == 0 {
		return []entity.Card{}, nil
	}

	cards := make([]entity.Card, 0, len(payload.Results))

	for _, r := range payload.Results {
		if r.HashName == "" || r.SellListings == nil || r.SellPrice == nil {
			return nil, fmt.Errorf("steam.Client.Cards: %w: incomplete result %q", ErrMalformedUpstream, r.Name)
		}

		cards = append(cards, entity.Card{
			Name:     r.Name,
			HashName: url.PathEscape(r.HashName),
			Listings: *r.SellListings,
			Price:    r.SellPrice.Major(),
		})
	}

	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Price < cards[j].Price
	})

	return cards, nil
}
