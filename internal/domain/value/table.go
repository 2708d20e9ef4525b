package value

import (
	"fmt"

	"card_market/internal/domain"
	"card_market/pkg/errcodes"
)

// Table names a score table. Both tables share one schema.
type Table string

const (
	TableGames         Table = "games"
	TableInstantPrices Table = "instant_prices"
)

func (t Table) String() string {
	return string(t)
}

// Instant reports whether rows of this table are scored on highest bids.
func (t Table) Instant() bool {
	return t == TableInstantPrices
}

func ParseTable(s string) (Table, error) {
	switch t := Table(s); t {
	case TableGames, TableInstantPrices:
		return t, nil
	case "":
		return TableGames, nil
	default:
		return "", domain.NewError(errcodes.InvalidTable, fmt.Sprintf("unknown table %q", s))
	}
}
