package value

import (
	"fmt"

	"card_market/internal/domain"
	"card_market/pkg/errcodes"
)

// ReturnColumn names a profit column usable for ranking.
type ReturnColumn string

const (
	ReturnMin    ReturnColumn = "min_return"
	ReturnMean   ReturnColumn = "mean_return"
	ReturnMedian ReturnColumn = "median_return"
)

func (c ReturnColumn) String() string {
	return string(c)
}

func ParseReturnColumn(s string) (ReturnColumn, error) {
	switch c := ReturnColumn(s); c {
	case ReturnMin, ReturnMean, ReturnMedian:
		return c, nil
	case "":
		return ReturnMin, nil
	default:
		return "", domain.NewError(errcodes.InvalidReturnColumn, fmt.Sprintf("unknown return column %q", s))
	}
}
