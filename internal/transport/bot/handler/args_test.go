package handler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"card_market/internal/transport/bot/handler"
)

func TestCommandArgs(t *testing.T) {
	rq := require.New(t)

	rq.Nil(handler.CommandArgs("/top"))
	rq.Equal([]string{"instant", "440"}, handler.CommandArgs("/refresh  instant 440 "))
}

func TestParseAppIDs(t *testing.T) {
	rq := require.New(t)

	ids, invalid := handler.ParseAppIDs([]string{"440", "abc", "-1", "570"})
	rq.Equal([]int64{440, 570}, ids)
	rq.Equal([]string{"abc", "-1"}, invalid)

	ids, invalid = handler.ParseAppIDs(nil)
	rq.Empty(ids)
	rq.Empty(invalid)
}

func TestParseTopLimit(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected int
	}{
		{name: "default", args: nil, expected: 10},
		{name: "explicit", args: []string{"20"}, expected: 20},
		{name: "clamped", args: []string{"500"}, expected: 50},
		{name: "zero", args: []string{"0"}, expected: 10},
		{name: "garbage", args: []string{"many"}, expected: 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, handler.ParseTopLimit(tc.args, 10))
		})
	}
}

func TestPages(t *testing.T) {
	rq := require.New(t)

	rq.Equal(1, handler.Pages(0, 10))
	rq.Equal(1, handler.Pages(10, 10))
	rq.Equal(2, handler.Pages(11, 10))
	rq.Equal(1, handler.Pages(5, 0))
}
