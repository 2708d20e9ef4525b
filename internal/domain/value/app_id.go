package value

import (
	"fmt"
	"strconv"

	"card_market/internal/domain"
	"card_market/pkg/errcodes"
)

func ParseAppID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewError(errcodes.InvalidAppID, fmt.Sprintf("invalid app id %q", s))
	}

	return id, nil
}
