package constants

// Chat defaults
const (
	DefaultCategory = "general"
	TitleMaxLen     = 50
	TitleEllipsis   = "..."
)

// Completion window
const (
	HistoryWindow = 5
)

// Session
const (
	AccessTokenCookie = "access_token"
	SessionTTLMinutes = 60 * 24 * 3
)

// Known completion models selectable via preferences
var KnownModels = []string{
	"mistral-small",
	"mistral-medium",
	"mistral-large-latest",
	"open-mistral-7b",
	"open-mixtral-8x7b",
}
