package value

import (
	"fmt"
	"strconv"

	"card_market/internal/domain"
	"card_market/pkg/errcodes"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ParseLimit reads a page size; "" means DefaultLimit.
func ParseLimit(s string) (int, error) {
	if s == "" {
		return DefaultLimit, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > MaxLimit {
		return 0, domain.NewError(errcodes.InvalidLimit, fmt.Sprintf("limit must be between 1 and %d, got %q", MaxLimit, s))
	}

	return n, nil
}
