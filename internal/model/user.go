package model

// ContentType distinguishes rated content categories.
type ContentType string

const (
	ContentTypeMovie ContentType = "movie"
	ContentTypeAnime ContentType = "anime"
)

// Rating is a user's 1-5 star rating of a single movie. The server upserts on
// (user, movie), so at most one exists per pair.
type Rating struct {
	MovieID string      `json:"movieId"`
	Rating  int         `json:"rating"`
	Type    ContentType `json:"type"`
	RatedAt string      `json:"ratedAt,omitempty"` // RFC 3339 timestamp
}

// Rating bounds enforced client-side before any rate request is sent.
const (
	MinRating = 1
	MaxRating = 5
)

// ValidRating reports whether v is inside the accepted star range.
func ValidRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}

// User is the profile projection returned by the service. The client holds a
// cached copy refreshed on login and explicit profile updates.
type User struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	FavoriteGenres []string `json:"favoriteGenres"`
	Watchlist      []string `json:"watchlist"`
	Ratings        []Rating `json:"ratings"`
}

// Initials returns the first two characters of the username, uppercased, for
// the avatar badge.
func (u *User) Initials() string {
	runes := []rune(u.Username)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}
