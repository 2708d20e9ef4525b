package value

import (
	"fmt"
	"time"

	"card_market/internal/domain"
	"card_market/pkg/errcodes"
)

// HistoryWindow limits a card price history to its recent part.
type HistoryWindow string

const (
	HistoryGeneral   HistoryWindow = "general"
	HistoryLastWeek  HistoryWindow = "last-week"
	HistoryLastMonth HistoryWindow = "last-month"
)

func (w HistoryWindow) String() string {
	return string(w)
}

// Cutoff returns the instant points must be newer than. ok is false for the
// whole history.
func (w HistoryWindow) Cutoff(now time.Time) (time.Time, bool) {
	switch w {
	case HistoryLastWeek:
		return now.AddDate(0, 0, -7), true //nolint:mnd
	case HistoryLastMonth:
		return now.AddDate(0, 0, -31), true //nolint:mnd
	default:
		return time.Time{}, false
	}
}

func ParseHistoryWindow(s string) (HistoryWindow, error) {
	switch w := HistoryWindow(s); w {
	case HistoryGeneral, HistoryLastWeek, HistoryLastMonth:
		return w, nil
	case "":
		return HistoryGeneral, nil
	default:
		return "", domain.NewError(errcodes.InvalidHistory, fmt.Sprintf("unknown history window %q", s))
	}
}
