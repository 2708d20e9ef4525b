package steam_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"card_market/internal/domain/entity"
	"card_market/internal/infrastructure/steam"
)

const listingsPage = `<html><head><script>var g_rgAppContextData = {"753":{}};</script></head>
<body><div id="market_commodity_order_spread"></div>
<script type="text/javascript">
	$J( function() {
		Market_LoadOrderSpread( 176321160 );	
	} );
	Market_LoadOrderSpread( 176321160 );
</script></body></html>`

type mapCache map[string]string

func (m mapCache) Get(_ context.Context, hashName string) (string, bool) {
	id, ok := m[hashName]
	return id, ok
}

func (m mapCache) Set(_ context.Context, hashName, nameID string) {
	m[hashName] = nameID
}

func TestOrderBook(t *testing.T) {
	rq := require.New(t)

	const okBody = `{"success":1,"highest_buy_order":"523","lowest_sell_order":600,
		"buy_order_graph":[[5.23,3,"3 buy orders at ARS$ 5,23 or higher"],[5,10,"10 buy orders at ARS$ 5,00 or higher"]],
		"sell_order_graph":[[6,2,"2 sell orders at ARS$ 6,00 or lower"]]}`

	testCases := []struct {
		name       string
		histograms []string
		status     int
		maxRetries int
		book       entity.OrderBook
		delays     []time.Duration
		calls      int32
		err        error
	}{
		{
			name:       "Success",
			histograms: []string{okBody},
			maxRetries: 3,
			book: entity.OrderBook{
				HighestBuyOrder: 5.23,
				LowestSellOrder: 6,
				BuyOrders:       []entity.OrderLevel{{Price: 5.23, Quantity: 3}, {Price: 5, Quantity: 10}},
				SellOrders:      []entity.OrderLevel{{Price: 6, Quantity: 2}},
			},
			delays: []time.Duration{time.Second, time.Second},
			calls:  1,
		},
		{
			name:       "Invalid JSON is retried",
			histograms: []string{"<html>slow down</html>", okBody},
			maxRetries: 3,
			book: entity.OrderBook{
				HighestBuyOrder: 5.23,
				LowestSellOrder: 6,
				BuyOrders:       []entity.OrderLevel{{Price: 5.23, Quantity: 3}, {Price: 5, Quantity: 10}},
				SellOrders:      []entity.OrderLevel{{Price: 6, Quantity: 2}},
			},
			delays: []time.Duration{time.Second, 5 * time.Second, time.Second},
			calls:  2,
		},
		{
			name:       "Unavailable",
			histograms: []string{`{"success":16}`},
			maxRetries: 3,
			delays:     []time.Duration{time.Second, time.Second},
			calls:      1,
			err:        steam.ErrHistogramUnavailable,
		},
		{
			name:       "Exhausted",
			status:     http.StatusTooManyRequests,
			maxRetries: 3,
			delays:     []time.Duration{time.Second, 5 * time.Second, 10 * time.Second, 20 * time.Second},
			calls:      4,
			err:        steam.ErrFetchExhausted,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var calls atomic.Int32

			mux := http.NewServeMux()
			mux.HandleFunc("/market/listings/753/", func(w http.ResponseWriter, r *http.Request) {
				rq.Equal("/market/listings/753/440-Scout/", r.URL.Path)
				w.Write([]byte(listingsPage))
			})
			mux.HandleFunc("/market/itemordershistogram", func(w http.ResponseWriter, r *http.Request) {
				rq.Equal("176321160", r.URL.Query().Get("item_nameid"))
				rq.Equal("AR", r.URL.Query().Get("country"))

				n := int(calls.Add(1))

				if tc.status != 0 {
					w.WriteHeader(tc.status)
					return
				}

				w.Write([]byte(tc.histograms[min(n, len(tc.histograms))-1]))
			})

			client, recorder := newTestClient(t, mux)

			book, err := client.OrderBook(context.Background(), "440-Scout", tc.maxRetries)

			rq.Equal(tc.calls, calls.Load())
			rq.Equal(tc.delays, recorder.delays)

			if tc.err != nil {
				rq.ErrorIs(err, tc.err)
				return
			}

			rq.NoError(err)
			rq.Equal(tc.book, book)
		})
	}
}

func TestHighestBuyOrderUsesNameIDCache(t *testing.T) {
	rq := require.New(t)

	var listings atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/market/listings/753/", func(w http.ResponseWriter, _ *http.Request) {
		listings.Add(1)
		w.Write([]byte(listingsPage))
	})
	mux.HandleFunc("/market/itemordershistogram", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success":1,"highest_buy_order":"87"}`))
	})

	client, _ := newTestClient(t, mux)
	cache := mapCache{}
	client.WithNameIDCache(cache)

	for range 3 {
		price, err := client.HighestBuyOrder(context.Background(), "440-Scout", 3)
		rq.NoError(err)
		rq.InDelta(0.87, price, 1e-9)
	}

	rq.Equal(int32(1), listings.Load())
	rq.Equal("176321160", cache["440-Scout"])
}

func TestExtractNameID(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name string
		page string
		id   string
		err  error
	}{
		{name: "Listing page", page: listingsPage, id: "176321160"},
		{name: "Compact", page: `<script>Market_LoadOrderSpread(42);</script>`, id: "42"},
		{name: "No script", page: `<html><body>Sorry!</body></html>`, err: steam.ErrMalformedUpstream},
		{name: "Not numeric", page: `<script>var x = foo(bar);</script>`, err: steam.ErrMalformedUpstream},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			id, err := steam.ExtractNameID([]byte(tc.page))
			if tc.err != nil {
				rq.ErrorIs(err, tc.err)
				return
			}

			rq.NoError(err)
			rq.Equal(tc.id, id)
		})
	}
}
