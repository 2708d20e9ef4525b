package middlewarex_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"card_market/pkg/logx"
	"card_market/pkg/middlewarex"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func newRouter() http.Handler {
	masker := logx.NewNopSensitiveDataMasker()

	r := chi.NewRouter()
	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Metrics,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, 1024),
		middlewarex.ResponseLogging(masker, 1024),
	)

	r.Get("/ok/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	return r
}

func TestMiddlewareStack(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name    string
		path    string
		traceID string
		status  int
	}{
		{name: "Plain response", path: "/ok/1", status: http.StatusOK},
		{name: "Trace id is echoed", path: "/ok/2", traceID: "trace-1", status: http.StatusOK},
		{name: "Unknown route", path: "/missing", status: http.StatusNotFound},
		{name: "Panic is recovered", path: "/panic", traceID: "trace-2", status: http.StatusInternalServerError},
	}

	router := newRouter()

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, http.NoBody)
			if tc.traceID != "" {
				req.Header.Set("X-Trace-Id", tc.traceID)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			rq.Equal(tc.status, rec.Code)
			rq.NotEmpty(rec.Header().Get("X-Trace-Id"))

			if tc.traceID != "" {
				rq.Equal(tc.traceID, rec.Header().Get("X-Trace-Id"))
			}
		})
	}
}

func TestRecoveryReplyBody(t *testing.T) {
	rq := require.New(t)

	req := httptest.NewRequest(http.MethodGet, "/panic", http.NoBody)
	req.Header.Set("X-Trace-Id", "trace-3")

	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	var body struct {
		Code      string `json:"code"`
		SupportID string `json:"supportId"`
	}

	rq.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	rq.Equal("trace-3", body.SupportID)
	rq.NotEmpty(body.Code)
}
