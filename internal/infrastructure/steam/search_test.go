package steam_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"card_market/internal/domain/entity"
	"card_market/internal/infrastructure/steam"
)

func searchRow(id, price string) string {
	return fmt.Sprintf(`<a href="https://store.steampowered.com/app/%[1]s/" data-ds-appid="%[1]s">
  <div class="col search_price_discount_combined responsive_secondrow">
    <div class="col search_price discounted responsive_secondrow">
      <span style="color: #888888;"><strike>ARS$ 9.999,99</strike></span><br>%[2]s
    </div>
  </div>
</a>`, id, price)
}

func searchPage(rows ...string) string {
	return `<html><body><div id="search_resultsRows">` + strings.Join(rows, "\n") + `</div></body></html>`
}

func TestSearchDiscounted(t *testing.T) {
	rq := require.New(t)

	pages := map[string]string{
		"1": searchPage(
			searchRow("10", "ARS$ 2,50"),
			searchRow("20", "ARS$ 1,25"),
			searchRow("30,40", "ARS$ 3,00"),
		),
		"2": searchPage(
			searchRow("50", "ARS$ 15,99"),
			searchRow("60", "ARS$ 16,50"),
			searchRow("70", "ARS$ 17,00"),
		),
		"3": searchPage(searchRow("80", "ARS$ 1,00")),
	}

	var requested []string

	mux := http.NewServeMux()
	mux.HandleFunc("/search/results/", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		requested = append(requested, page)

		rq.Equal("Price_ASC", r.URL.Query().Get("sort_by"))
		rq.Equal("1", r.URL.Query().Get("specials"))
		rq.Equal("29", r.URL.Query().Get("category2"))

		w.Write([]byte(pages[page]))
	})

	client, _ := newTestClient(t, mux)

	listings, err := client.SearchDiscounted(context.Background(), 16)
	rq.NoError(err)

	rq.Equal([]string{"1", "2"}, requested)
	rq.Equal([]entity.Listing{
		{AppID: 20, Price: 1.25},
		{AppID: 10, Price: 2.5},
		{AppID: 50, Price: 15.99},
		{AppID: 60, Price: 16.5},
	}, listings)
}

func TestSearchDiscountedStopsOnEmptyPage(t *testing.T) {
	rq := require.New(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/search/results/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			w.Write([]byte(searchPage(searchRow("10", "ARS$ 2,50"))))
			return
		}

		w.Write([]byte(searchPage()))
	})

	client, _ := newTestClient(t, mux)

	listings, err := client.SearchDiscounted(context.Background(), 16)
	rq.NoError(err)
	rq.Equal([]entity.Listing{{AppID: 10, Price: 2.5}}, listings)
}

func TestSearchDiscountedSingleAttempt(t *testing.T) {
	rq := require.New(t)

	calls := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/search/results/", func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	})

	client, recorder := newTestClient(t, mux)

	_, err := client.SearchDiscounted(context.Background(), 16)
	rq.ErrorIs(err, steam.ErrFetchExhausted)
	rq.Equal(1, calls)
	rq.Empty(recorder.delays)
}

func TestParsePriceLabel(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		label string
		price float64
	}{
		{label: "ARS$ 1.234,56", price: 1234.56},
		{label: "ARS$ 999,99", price: 999.99},
		{label: "ARS$ 1.234", price: 1234},
		{label: "$12.99", price: 12.99},
		{label: "$1,299.00", price: 1299},
		{label: "12,5€", price: 12.5},
		{label: "Free to Play", price: 0},
		{label: "", price: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.label, func(*testing.T) {
			price, err := steam.ParsePriceLabel(tc.label)
			rq.NoError(err)
			rq.InDelta(tc.price, price, 1e-9)
		})
	}
}
