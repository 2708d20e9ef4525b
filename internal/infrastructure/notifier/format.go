package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"card_market/internal/domain/entity"
)

const storeAppURL = "https://store.steampowered.com/app/%d"

// GamesText renders games as a numbered HTML list, best first.
func GamesText(games []*entity.Game) string {
	if len(games) == 0 {
		return "<i>no scored games yet</i>"
	}

	var sb strings.Builder

	for i, g := range games {
		fmt.Fprintf(&sb,
			"%d. <a href=\""+storeAppURL+"\">%s</a> <code>%d</code>\n"+
				"   price %.2f | min %+.3f | mean %+.3f | median %+.3f\n",
			i+1, g.AppID, html.EscapeString(g.Name), g.AppID,
			g.Price, g.Profit.Min, g.Profit.Avg, g.Profit.Med,
		)
	}

	return sb.String()
}

// PassReportText renders a pass report for the chat.
func PassReportText(report entity.PassReport, topN int) string {
	var sb strings.Builder

	if report.Failed() {
		fmt.Fprintf(&sb, "❌ <b>Pass %s failed</b>\n%s\n", report.PassID, html.EscapeString(report.Err))
	} else {
		fmt.Fprintf(&sb, "✅ <b>Pass %s finished</b> in %s\n", report.PassID, report.Duration().Round(time.Second))
	}

	fmt.Fprintf(&sb,
		"listed %d, excluded %d\n"+
			"games: %d updated, %d skipped, %d failed\n"+
			"instant: %d updated, %d skipped, %d failed\n",
		report.Listed, report.Excluded,
		report.Games.Updated, report.Games.Skipped, report.Games.Failed,
		report.Instant.Updated, report.Instant.Skipped, report.Instant.Failed,
	)

	if report.Failed() {
		return sb.String()
	}

	top := report.Top
	if topN > 0 && len(top) > topN {
		top = top[:topN]
	}

	sb.WriteString("\n<b>Top by instant price</b>\n")
	sb.WriteString(GamesText(top))

	return sb.String()
}
