package model

import (
	"fmt"
	"strings"
)

// Movie is the list-level movie projection returned by search, popular and
// recommendation endpoints.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	Backdrop    string  `json:"backdrop_path"`
	ReleaseDate string  `json:"release_date"` // YYYY-MM-DD
	VoteAverage float64 `json:"vote_average"`
	GenreIDs    []int   `json:"genre_ids"`
	Popularity  float64 `json:"popularity,omitempty"`
}

// ReleaseYear returns the four-digit year portion of the release date, or ""
// when the date is absent or malformed.
func (m *Movie) ReleaseYear() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// ShortOverview returns the overview truncated to max runes with an ellipsis.
func (m *Movie) ShortOverview(max int) string {
	runes := []rune(m.Overview)
	if len(runes) <= max {
		return m.Overview
	}
	return string(runes[:max]) + "..."
}

// GenreNames maps the movie's genre ids to display names, skipping unknown
// ids, capped at limit (0 means no cap).
func (m *Movie) GenreNames(limit int) []string {
	var names []string
	for _, id := range m.GenreIDs {
		name, ok := GenreNameByID(id)
		if !ok {
			continue
		}
		names = append(names, name)
		if limit > 0 && len(names) == limit {
			break
		}
	}
	return names
}

// Genre is a genre id/name pair as embedded in movie details.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is an actor credit on a movie.
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

// CrewMember is a non-cast credit on a movie.
type CrewMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

// Video is a hosted clip (trailer, teaser, featurette) attached to a movie.
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Video site and type values used for trailer selection.
const (
	VideoSiteYouTube = "YouTube"
	VideoTypeTrailer = "Trailer"
)

// WatchURL returns the external playback URL for the video, or "" when the
// hosting site is not supported.
func (v *Video) WatchURL() string {
	if v.Site != VideoSiteYouTube || v.Key == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + v.Key
}

// Keyword is a descriptive tag attached to a movie.
type Keyword struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductionCompany is a studio credit on a movie.
type ProductionCompany struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	LogoPath string `json:"logo_path"`
}

// SpokenLanguage is a language entry on a movie detail.
type SpokenLanguage struct {
	EnglishName string `json:"english_name"`
	ISO639      string `json:"iso_639_1"`
}

// Credits groups cast and crew on a movie detail.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// VideoList wraps the nested videos collection.
type VideoList struct {
	Results []Video `json:"results"`
}

// KeywordList wraps the nested keywords collection.
type KeywordList struct {
	Keywords []Keyword `json:"keywords"`
}

// ExternalIDs carries cross-reference identifiers for a movie.
type ExternalIDs struct {
	IMDBID string `json:"imdb_id"`
}

// MovieDetail is the full movie projection returned by the detail endpoint,
// including nested credits, videos, keywords and external ids.
type MovieDetail struct {
	ID            int                 `json:"id"`
	Title         string              `json:"title"`
	OriginalTitle string              `json:"original_title"`
	Tagline       string              `json:"tagline"`
	Overview      string              `json:"overview"`
	PosterPath    string              `json:"poster_path"`
	Backdrop      string              `json:"backdrop_path"`
	ReleaseDate   string              `json:"release_date"`
	Runtime       int                 `json:"runtime"` // minutes
	VoteAverage   float64             `json:"vote_average"`
	VoteCount     int                 `json:"vote_count"`
	Budget        int64               `json:"budget"`
	Revenue       int64               `json:"revenue"`
	Status        string              `json:"status"`
	Genres        []Genre             `json:"genres"`
	Companies     []ProductionCompany `json:"production_companies"`
	Languages     []SpokenLanguage    `json:"spoken_languages"`
	Credits       Credits             `json:"credits"`
	Videos        VideoList           `json:"videos"`
	Keywords      KeywordList         `json:"keywords"`
	ExternalIDs   ExternalIDs         `json:"external_ids"`
}

// AsMovie reduces the detail to its list-level projection so detail responses
// can flow through card grids and derived sorts.
func (d *MovieDetail) AsMovie() Movie {
	m := Movie{
		ID:          d.ID,
		Title:       d.Title,
		Overview:    d.Overview,
		PosterPath:  d.PosterPath,
		Backdrop:    d.Backdrop,
		ReleaseDate: d.ReleaseDate,
		VoteAverage: d.VoteAverage,
	}
	for _, g := range d.Genres {
		m.GenreIDs = append(m.GenreIDs, g.ID)
	}
	return m
}

// Trailer returns the first YouTube-hosted video of type Trailer, falling back
// to the first available video, or nil when there are none.
func (d *MovieDetail) Trailer() *Video {
	for i := range d.Videos.Results {
		v := &d.Videos.Results[i]
		if v.Type == VideoTypeTrailer && v.Site == VideoSiteYouTube {
			return v
		}
	}
	if len(d.Videos.Results) > 0 {
		return &d.Videos.Results[0]
	}
	return nil
}

// Director returns the first crew member credited with the Director job, or
// nil when the crew list has none.
func (d *MovieDetail) Director() *CrewMember {
	for i := range d.Credits.Crew {
		if d.Credits.Crew[i].Job == "Director" {
			return &d.Credits.Crew[i]
		}
	}
	return nil
}

// Writers returns up to two crew members from the Writing department.
func (d *MovieDetail) Writers() []CrewMember {
	var writers []CrewMember
	for _, c := range d.Credits.Crew {
		if c.Department == "Writing" {
			writers = append(writers, c)
			if len(writers) == 2 {
				break
			}
		}
	}
	return writers
}

// ReleaseYear returns the four-digit year portion of the release date.
func (d *MovieDetail) ReleaseYear() string {
	if len(d.ReleaseDate) < 4 {
		return ""
	}
	return d.ReleaseDate[:4]
}

// FormatRuntime renders the runtime as "2h 14m", or "—" when unknown.
func (d *MovieDetail) FormatRuntime() string {
	if d.Runtime <= 0 {
		return "—"
	}
	return fmt.Sprintf("%dh %dm", d.Runtime/60, d.Runtime%60)
}

// FormatMoney renders a budget/revenue amount compactly ("$120.5M"), or "-"
// when the amount is zero.
func FormatMoney(amount int64) string {
	if amount == 0 {
		return "-"
	}
	switch {
	case amount >= 1_000_000_000:
		return trimZero(fmt.Sprintf("$%.1fB", float64(amount)/1_000_000_000))
	case amount >= 1_000_000:
		return trimZero(fmt.Sprintf("$%.1fM", float64(amount)/1_000_000))
	case amount >= 1_000:
		return trimZero(fmt.Sprintf("$%.1fK", float64(amount)/1_000))
	default:
		return fmt.Sprintf("$%d", amount)
	}
}

func trimZero(s string) string {
	return strings.Replace(s, ".0", "", 1)
}
