package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconStar      = "★"
	IconStarEmpty = "☆"
	IconBookmark  = "🔖"
	IconPlay      = "▶"
	IconClose     = "×"
	IconGridMode  = "▦"
	IconListMode  = "☰"
	IconSearch    = "🔍"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Card and layout sizing
const (
	CardWidth  float32 = 170
	CardHeight float32 = 400

	PosterWidth  = 150
	PosterHeight = 225

	ThumbWidth  = 60
	ThumbHeight = 90

	DetailPosterWidth  = 220
	DetailPosterHeight = 330

	ProfileImageWidth  = 80
	ProfileImageHeight = 120

	OverviewPreviewRunes = 120
)

// Collection limits
const (
	TrendingLimit = 8
	CastLimit     = 10
	KeywordLimit  = 12
)
