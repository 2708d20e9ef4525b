package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"card_market/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Cookie header",
			input:  []byte("GET /market/ HTTP/1.1\r\nCookie: sessionid=abc123; steamLoginSecure=7656%7C%7Ceyj\r\n"),
			output: []byte("GET /market/ HTTP/1.1\r\nCookie: sessionid=[MASKED]; steamLoginSecure=[MASKED]\r\n"),
		},
		{
			name:   "Set-Cookie header",
			input:  []byte("Set-Cookie: steamRefresh_steam=eyJhbGciOi; Path=/; Secure\r\n"),
			output: []byte("Set-Cookie: steamRefresh_steam=[MASKED]; Path=/; Secure\r\n"),
		},
		{
			name:   "Web API key",
			input:  []byte("GET /IPlayerService/GetOwnedGames/v0001/?key=0123456789ABCDEF&steamid=1 HTTP/1.1"),
			output: []byte("GET /IPlayerService/GetOwnedGames/v0001/?key=[MASKED]&steamid=1 HTTP/1.1"),
		},
		{
			name:   "Password",
			input:  []byte(`{"username":"gaben","password":"hunter2"}`),
			output: []byte(`{"username":"gaben","password":"[MASKED]"}`),
		},
		{
			name:   "Nothing to mask",
			input:  []byte(`{"success":1,"highest_buy_order":"523"}`),
			output: []byte(`{"success":1,"highest_buy_order":"523"}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
