package middleware_test

import (
	"testing"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/require"

	"card_market/internal/transport/bot/middleware"
)

func TestIsAdmin(t *testing.T) {
	admins := []int64{1, 2}

	testCases := []struct {
		name     string
		update   telego.Update
		expected bool
	}{
		{
			name:     "admin message",
			update:   telego.Update{Message: &telego.Message{From: &telego.User{ID: 2}}},
			expected: true,
		},
		{
			name:     "stranger message",
			update:   telego.Update{Message: &telego.Message{From: &telego.User{ID: 3}}},
			expected: false,
		},
		{
			name:     "channel post without sender",
			update:   telego.Update{Message: &telego.Message{}},
			expected: false,
		},
		{
			name:     "admin callback",
			update:   telego.Update{CallbackQuery: &telego.CallbackQuery{From: telego.User{ID: 1}}},
			expected: true,
		},
		{
			name:     "other update",
			update:   telego.Update{},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, middleware.IsAdmin(tc.update, admins))
		})
	}
}
