package steam

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"card_market/internal/domain/entity"
	"card_market/pkg/logx"
)

type searchRow struct {
	id    string
	price float64
}

// SearchDiscounted crawls discounted store entries that carry trading cards,
// cheapest first, until the first entry priced above maxPrice. That boundary
// entry is kept. Bundles and packages are dropped.
func (c *Client) SearchDiscounted(ctx context.Context, maxPrice float64) ([]entity.Listing, error) {
	var (
		rows   []searchRow
		halted bool
	)

	for page := 1; page <= c.cfg.CrawlerPages && !halted; page++ {
		body, err := c.searchPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("steam.Client.SearchDiscounted: page %d: %w", page, err)
		}

		pageRows, err := parseSearchPage(body)
		if err != nil {
			return nil, fmt.Errorf("steam.Client.SearchDiscounted: page %d: %w", page, err)
		}

		if len(pageRows) == 0 {
			break
		}

		for i, row := range pageRows {
			if row.price > maxPrice {
				pageRows = pageRows[:i+1]
				halted = true

				break
			}
		}

		rows = append(rows, pageRows...)

		logger(ctx).Debug(
			"search page crawled",
			slog.Int(logx.FieldPage, page),
			slog.Int(logx.FieldCount, len(pageRows)),
		)
	}

	listings := make([]entity.Listing, 0, len(rows))

	for _, row := range rows {
		if strings.Contains(row.id, ",") {
			continue
		}

		appID, err := strconv.ParseInt(strings.TrimSpace(row.id), 10, 64)
		if err != nil || appID <= 0 {
			continue
		}

		listings = append(listings, entity.Listing{AppID: appID, Price: row.price})
	}

	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].Price < listings[j].Price
	})

	return listings, nil
}

func (c *Client) searchPage(ctx context.Context, page int) ([]byte, error) {
	query := url.Values{}
	query.Set("query", "")
	query.Set("start", "0")
	query.Set("count", "200")
	query.Set("dynamic_data", "")
	query.Set("sort_by", "Price_ASC")
	query.Set("ignore_preferences", "1")
	query.Set("maxprice", "70")
	query.Set("category1", "998")
	query.Set("category2", "29")
	query.Set("specials", "1")
	query.Set("infinite", "0")
	query.Set("cc", c.cfg.CountryCode)
	query.Set("page", strconv.Itoa(page))

	rawURL := c.cfg.StoreURL + "/search/results/?" + query.Encode()

	var (
		resp Response
		err  error
	)

	if c.cfg.CrawlerRetries > 0 {
		resp, err = c.fetcher.Get(ctx, rawURL, Backoff{Initial: c.cfg.RetryInitial, MaxRetries: c.cfg.CrawlerRetries})
	} else {
		resp, err = c.fetcher.Once(ctx, rawURL)
	}

	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

func parseSearchPage(body []byte) ([]searchRow, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: goquery.NewDocumentFromReader: %w", ErrMalformedUpstream, err)
	}

	var rows []searchRow

	doc.Find("a[data-ds-appid]").Each(func(_ int, row *goquery.Selection) {
		id, _ := row.Attr("data-ds-appid")

		label := ownText(row.Find("div.search_price.discounted").First())
		if label == "" {
			label = strings.TrimSpace(row.Find(".discount_final_price").First().Text())
		}

		price, err := ParsePriceLabel(label)
		if err != nil {
			price = 0
		}

		rows = append(rows, searchRow{id: id, price: price})
	})

	return rows, nil
}

// ownText returns the last non-blank text node directly under s, which is
// where the discounted price sits next to the struck-through original.
func ownText(s *goquery.Selection) string {
	var last string

	s.Contents().Each(func(_ int, n *goquery.Selection) {
		if goquery.NodeName(n) != "#text" {
			return
		}

		if t := strings.TrimSpace(n.Text()); t != "" {
			last = t
		}
	})

	return last
}

// ParsePriceLabel reads a localized price such as "ARS$ 1.234,56" or
// "$12.99". A label without digits is 0.
func ParsePriceLabel(label string) (float64, error) {
	var b strings.Builder

	for _, r := range label {
		if unicode.IsDigit(r) || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}

	s := strings.Trim(b.String(), ".,")
	if s == "" {
		return 0, nil
	}

	s = normalizeSeparators(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("decimal.NewFromString: %w", err)
	}

	return d.InexactFloat64(), nil
}

func normalizeSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			return strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
		}

		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		return decimalOrThousands(s, ",")
	case lastDot >= 0:
		return decimalOrThousands(s, ".")
	default:
		return s
	}
}

// decimalOrThousands treats a lone separator followed by one or two digits as
// the decimal point and any other use as grouping.
func decimalOrThousands(s, sep string) string {
	idx := strings.LastIndex(s, sep)

	if strings.Count(s, sep) == 1 && len(s)-idx-1 <= 2 { //nolint:mnd
		return strings.Replace(s, sep, ".", 1)
	}

	return strings.ReplaceAll(s, sep, "")
}
