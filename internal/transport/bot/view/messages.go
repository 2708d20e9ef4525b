package view

const (
	StartMessage = "<b>Card market scorer</b>\n\n" +
		"/status - last pass and scanner state\n" +
		"/top [n] - best entries by instant price\n" +
		"/refresh [instant] &lt;appid...&gt; - rescore apps now\n" +
		"/exclude &lt;appid...&gt; - never score these apps\n" +
		"/include &lt;appid&gt; - score an excluded app again\n" +
		"/excluded - list excluded apps"

	StatusTemplate = "📊 <b>Status</b>\n\n" +
		"🔍 <b>Scanner:</b> %s\n" +
		"🚫 <b>Excluded apps:</b> %d\n\n" +
		"%s"

	ScannerRunning = "🟢 running"
	ScannerIdle    = "⚪ idle"

	NoPassYet = "<i>no pass finished yet</i>"

	TopTemplate = "🏆 <b>Top by instant price</b> (page %d/%d)\n\n%s"

	TopError = "❌ Failed to load the ranking"

	RefreshUsage   = "❌ Usage: /refresh [instant] <code>APPID</code> ..."
	RefreshStarted = "⏳ Rescoring %d apps into <code>%s</code>"
	RefreshQueued  = "📨 Refresh of %d apps queued as <code>%s</code>"
	RefreshDone    = "✅ <code>%s</code>: %d updated, %d skipped, %d failed"
	RefreshBusy    = "⚠️ A pass is already running, try later"
	RefreshFailed  = "❌ Refresh failed: %s"
	InvalidIDs     = "\n⚠️ Ignored invalid ids: %s"

	ExcludeUsage    = "❌ Usage: /exclude <code>APPID</code> ..."
	ExcludeDone     = "✅ Excluded %d apps"
	IncludeUsage    = "❌ Usage: /include <code>APPID</code>"
	IncludeDone     = "✅ App <code>%d</code> will be scored again"
	IncludeNotFound = "⚠️ App <code>%d</code> is not excluded"
	ExcludedEmpty   = "📋 <b>No excluded apps</b>"
	ExcludedHeader  = "📋 <b>Excluded apps (%d):</b>\n\n"
)
