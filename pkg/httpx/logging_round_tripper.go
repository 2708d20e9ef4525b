package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/rs/xid"

	"card_market/pkg/logx"
)

type SensitiveDataMasker interface {
	Mask([]byte) []byte
}

// LoggingRoundTripper dumps every outgoing request and its response at debug
// level. Dumps are masked and optionally truncated.
type LoggingRoundTripper struct {
	next                http.RoundTripper
	sensitiveDataMasker SensitiveDataMasker
	logFieldMaxLen      int
}

func NewLoggingRoundTripper(
	next http.RoundTripper,
	opts ...Option,
) LoggingRoundTripper {
	rt := LoggingRoundTripper{
		next:                next,
		sensitiveDataMasker: logx.NewNopSensitiveDataMasker(),
		logFieldMaxLen:      0,
	}

	for _, opt := range opts {
		opt(&rt)
	}

	return rt
}

func (rt LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	requestID := xid.New().String()

	reqBytes, err := httputil.DumpRequestOut(req, true)
	if err != nil {
		logger(ctx).Error(
			"httputil.DumpRequestOut",
			slog.String(logx.FieldRequestID, requestID),
			logx.Error(err),
		)
	}

	logger(ctx).Debug(
		logx.FieldHTTPRequest,
		slog.String(logx.FieldRequestID, requestID),
		slog.String(logx.FieldHTTPMethod, req.Method),
		slog.String(logx.FieldURL, string(rt.sensitiveDataMasker.Mask([]byte(req.URL.String())))),
		slog.String(logx.FieldRequestBody, rt.prepare(reqBytes)),
	)

	start := time.Now()

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		logger(ctx).Debug(
			logx.FieldHTTPResponse,
			slog.String(logx.FieldRequestID, requestID),
			slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
			logx.Error(err),
		)

		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	respBytes, err := httputil.DumpResponse(resp, true)
	if err != nil {
		logger(ctx).Error(
			"httputil.DumpResponse",
			slog.String(logx.FieldRequestID, requestID),
			logx.Error(err),
		)
	}

	logger(ctx).Debug(
		logx.FieldHTTPResponse,
		slog.String(logx.FieldRequestID, requestID),
		slog.Int(logx.FieldResponseStatus, resp.StatusCode),
		slog.String(logx.FieldResponseBody, rt.prepare(respBytes)),
		slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
	)

	return resp, nil
}

func (rt LoggingRoundTripper) prepare(dump []byte) string {
	if rt.logFieldMaxLen != 0 && len(dump) > rt.logFieldMaxLen {
		dump = dump[:rt.logFieldMaxLen]
	}

	return string(rt.sensitiveDataMasker.Mask(dump))
}
