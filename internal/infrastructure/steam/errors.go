package steam

import "errors"

var (
	// ErrTransientFetch marks a single failed attempt. The fetcher retries it
	// and only surfaces it wrapped by ErrFetchExhausted.
	ErrTransientFetch = errors.New("transient fetch failure")
	// ErrFetchExhausted is returned once the retry budget is spent.
	ErrFetchExhausted = errors.New("fetch retries exhausted")
	// ErrHistogramUnavailable means the order histogram replied with success != 1.
	ErrHistogramUnavailable = errors.New("order histogram unavailable")
	// ErrMalformedUpstream means a payload lacked the fields we depend on.
	ErrMalformedUpstream = errors.New("malformed upstream payload")
)
