package steam

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"card_market/internal/domain/entity"
	"card_market/pkg/logx"
)

// OrderBook fetches the bid/ask histogram of a card. hashName must already be
// percent-encoded. maxRetries == 0 retries forever.
func (c *Client) OrderBook(ctx context.Context, hashName string, maxRetries int) (entity.OrderBook, error) {
	policy := Backoff{Initial: c.cfg.RetryInitial, MaxRetries: maxRetries}

	nameID, err := c.nameID(ctx, hashName, policy)
	if err != nil {
		return entity.OrderBook{}, fmt.Errorf("steam.Client.OrderBook: %w", err)
	}

	query := url.Values{}
	query.Set("country", strings.ToUpper(c.cfg.CountryCode))
	query.Set("language", c.cfg.Language)
	query.Set("currency", strconv.Itoa(c.cfg.Currency))
	query.Set("item_nameid", nameID)
	query.Set("two_factor", "0")

	var payload histogramResponse

	// The endpoint answers 200 with a non-JSON body when throttled, so a
	// decodable body is part of success.
	_, err = c.fetcher.GetValid(ctx, c.cfg.CommunityURL+"/market/itemordershistogram?"+query.Encode(), policy,
		func(body []byte) error {
			payload = histogramResponse{}
			return json.Unmarshal(body, &payload) //nolint:wrapcheck
		},
	)
	if err != nil {
		return entity.OrderBook{}, fmt.Errorf("steam.Client.OrderBook: %w", err)
	}

	if err = c.Pause(ctx, c.cfg.HistogramPause); err != nil {
		return entity.OrderBook{}, fmt.Errorf("steam.Client.OrderBook: %w", err)
	}

	if payload.Success != 1 {
		return entity.OrderBook{}, fmt.Errorf(
			"steam.Client.OrderBook: %w: success=%d for %s", ErrHistogramUnavailable, payload.Success, hashName,
		)
	}

	return entity.OrderBook{
		HighestBuyOrder: payload.HighestBuyOrder.Major(),
		LowestSellOrder: payload.LowestSellOrder.Major(),
		BuyOrders:       orderLevels(payload.BuyOrderGraph),
		SellOrders:      orderLevels(payload.SellOrderGraph),
	}, nil
}

// HighestBuyOrder is the instant-sell price of a card in major units.
func (c *Client) HighestBuyOrder(ctx context.Context, hashName string, maxRetries int) (float64, error) {
	book, err := c.OrderBook(ctx, hashName, maxRetries)
	if err != nil {
		return 0, err
	}

	return book.HighestBuyOrder, nil
}

func (c *Client) nameID(ctx context.Context, hashName string, policy Backoff) (string, error) {
	if id, ok := c.nameIDs.Get(ctx, hashName); ok {
		return id, nil
	}

	query := url.Values{}
	query.Set("currency", strconv.Itoa(c.cfg.Currency))
	query.Set("country", strings.ToUpper(c.cfg.CountryCode))

	resp, err := c.fetcher.Get(ctx, c.cfg.CommunityURL+"/market/listings/"+communityAppID+"/"+hashName+"/?"+query.Encode(), policy)
	if err != nil {
		return "", err
	}

	if err = c.Pause(ctx, c.cfg.HistogramPause); err != nil {
		return "", err
	}

	id, err := ExtractNameID(resp.Body)
	if err != nil {
		return "", err
	}

	c.nameIDs.Set(ctx, hashName, id)

	logger(ctx).Debug("item name id resolved", slog.String(logx.FieldHashName, hashName), slog.String("item-nameid", id))

	return id, nil
}

// ExtractNameID pulls the item_nameid out of a listings page: the last
// <script> ends with a call like Market_LoadOrderSpread( 12345 );
func ExtractNameID(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("%w: goquery.NewDocumentFromReader: %w", ErrMalformedUpstream, err)
	}

	scripts := doc.Find("script")
	if scripts.Length() == 0 {
		return "", fmt.Errorf("%w: listings page has no script", ErrMalformedUpstream)
	}

	text := scripts.Last().Text()

	token := text
	if i := strings.LastIndex(text, "("); i >= 0 {
		token = text[i+1:]
	}

	token, _, _ = strings.Cut(token, ");")
	token = strings.TrimSpace(token)

	if _, err = strconv.ParseUint(token, 10, 64); err != nil {
		return "", fmt.Errorf("%w: item_nameid %q is not numeric", ErrMalformedUpstream, token)
	}

	return token, nil
}

func orderLevels(graph [][]any) []entity.OrderLevel {
	levels := make([]entity.OrderLevel, 0, len(graph))

	for _, point := range graph {
		if len(point) < 2 { //nolint:mnd
			continue
		}

		price, ok := point[0].(float64)
		if !ok {
			continue
		}

		quantity, ok := point[1].(float64)
		if !ok {
			continue
		}

		levels = append(levels, entity.OrderLevel{Price: price, Quantity: int(quantity)})
	}

	return levels
}
