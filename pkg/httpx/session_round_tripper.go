package httpx

import (
	"fmt"
	"net/http"
	"strings"
)

// Session carries the headers every upstream request must present.
type Session struct {
	UserAgent      string
	AcceptLanguage string
	Cookies        map[string]string
}

// SessionRoundTripper stamps session headers onto outgoing requests without
// overriding headers the caller has already set.
type SessionRoundTripper struct {
	next    http.RoundTripper
	session Session
}

func NewSessionRoundTripper(next http.RoundTripper, session Session) SessionRoundTripper {
	return SessionRoundTripper{
		next:    next,
		session: session,
	}
}

func (rt SessionRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	if rt.session.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", rt.session.UserAgent)
	}

	if rt.session.AcceptLanguage != "" && req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", rt.session.AcceptLanguage)
	}

	for name, value := range rt.session.Cookies {
		if _, err := req.Cookie(name); err == nil {
			continue
		}

		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}

// ParseCookies reads a "name=value; name2=value2" header into a map.
func ParseCookies(raw string) map[string]string {
	cookies := make(map[string]string)

	for _, part := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || name == "" {
			continue
		}

		cookies[name] = value
	}

	return cookies
}
