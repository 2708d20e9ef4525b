package steam

import (
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

//nolint:gochecknoglobals
var hundred = decimal.NewFromInt(100)

// appdetails?appids=<id> replies {"<id>": {"success": true, "data": {...}}}.
type appDetailsEnvelope map[string]appDetailsEntry

type appDetailsEntry struct {
	Success bool            `json:"success"`
	Data    *appDetailsData `json:"data"`
}

type appDetailsData struct {
	Name          string         `json:"name"`
	IsFree        bool           `json:"is_free"`
	PriceOverview *priceOverview `json:"price_overview"`
}

type priceOverview struct {
	Currency string     `json:"currency"`
	Final    minorUnits `json:"final"`
}

type marketSearchResponse struct {
	Success    bool                 `json:"success"`
	TotalCount *int                 `json:"total_count"`
	Results    []marketSearchResult `json:"results"`
}

type marketSearchResult struct {
	Name         string      `json:"name"`
	HashName     string      `json:"hash_name"`
	SellListings *int        `json:"sell_listings"`
	SellPrice    *minorUnits `json:"sell_price"`
}

type histogramResponse struct {
	Success         int        `json:"success"`
	HighestBuyOrder minorUnits `json:"highest_buy_order"`
	LowestSellOrder minorUnits `json:"lowest_sell_order"`
	BuyOrderGraph   [][]any    `json:"buy_order_graph"`
	SellOrderGraph  [][]any    `json:"sell_order_graph"`
}

// minorUnits decodes an amount in cents given as a JSON number or string.
// null and "" decode as zero.
type minorUnits struct {
	value decimal.Decimal
}

func (m *minorUnits) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		m.value = decimal.Zero
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("minorUnits: %w", err)
	}

	m.value = d

	return nil
}

// Major converts cents into major currency units.
func (m minorUnits) Major() float64 {
	return m.value.Div(hundred).InexactFloat64()
}

// pricehistory replies {"success": true, "prices": [["Nov 27 2013 01: +0", 1.234, "5"], ...]}
// with prices in major units.
type priceHistoryResponse struct {
	Success bool              `json:"success"`
	Prices  []priceHistoryRow `json:"prices"`
}

type priceHistoryRow struct {
	Label  string
	Price  decimal.Decimal
	Volume int
}

func (r *priceHistoryRow) UnmarshalJSON(b []byte) error {
	var raw []jsoniter.RawMessage

	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("priceHistoryRow: %w", err)
	}

	if len(raw) != 3 { //nolint:mnd
		return fmt.Errorf("priceHistoryRow: %d fields, want 3", len(raw))
	}

	if err := json.Unmarshal(raw[0], &r.Label); err != nil {
		return fmt.Errorf("priceHistoryRow label: %w", err)
	}

	if err := json.Unmarshal(raw[1], &r.Price); err != nil {
		return fmt.Errorf("priceHistoryRow price: %w", err)
	}

	volume, err := strconv.Atoi(strings.Trim(string(raw[2]), `"`))
	if err != nil {
		return fmt.Errorf("priceHistoryRow volume: %w", err)
	}

	r.Volume = volume

	return nil
}
