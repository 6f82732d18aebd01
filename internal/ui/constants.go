package ui

// Icons (emojis/symbols)
const (
	IconSearch  = "🔍"
	IconPending = "⏳"
	IconPlay    = "⬇"
	IconProbe   = "📊"
	IconCut     = "🎬"
	IconDone    = "✅"
	IconStopped = "⏹"
	IconError   = "❌"
	IconWarn    = "⚠"
	IconVideo   = "📽"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	PositionFormat     = "[%d/%d]"
	FragmentFormat     = "%d/%d"
)

// Color palette
const (
	colorPrimary   = "#7D56F4"
	colorSuccess   = "#04B575"
	colorError     = "#FF0000"
	colorWarn      = "#FFB000"
	colorInfo      = "#626262"
	colorHighlight = "#FAFAFA"
	colorBorder    = "#874BFD"
)
