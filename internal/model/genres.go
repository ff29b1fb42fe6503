package model

// The service uses TMDB's fixed 19-genre taxonomy. Favorite genres are stored
// by name; list payloads carry ids, so both directions are needed.

// MovieGenres is the full genre table in display order.
var MovieGenres = []Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 80, Name: "Crime"},
	{ID: 99, Name: "Documentary"},
	{ID: 18, Name: "Drama"},
	{ID: 10751, Name: "Family"},
	{ID: 14, Name: "Fantasy"},
	{ID: 36, Name: "History"},
	{ID: 27, Name: "Horror"},
	{ID: 10402, Name: "Music"},
	{ID: 9648, Name: "Mystery"},
	{ID: 10749, Name: "Romance"},
	{ID: 878, Name: "Science Fiction"},
	{ID: 10770, Name: "TV Movie"},
	{ID: 53, Name: "Thriller"},
	{ID: 10752, Name: "War"},
	{ID: 37, Name: "Western"},
}

var (
	genreNamesByID = func() map[int]string {
		m := make(map[int]string, len(MovieGenres))
		for _, g := range MovieGenres {
			m[g.ID] = g.Name
		}
		return m
	}()
	genreIDsByName = func() map[string]int {
		m := make(map[string]int, len(MovieGenres))
		for _, g := range MovieGenres {
			m[g.Name] = g.ID
		}
		return m
	}()
)

// GenreNameByID resolves a genre id to its display name.
func GenreNameByID(id int) (string, bool) {
	name, ok := genreNamesByID[id]
	return name, ok
}

// GenreIDByName resolves a genre display name to its id.
func GenreIDByName(name string) (int, bool) {
	id, ok := genreIDsByName[name]
	return id, ok
}

// GenreNames returns all genre display names in table order.
func GenreNames() []string {
	names := make([]string, 0, len(MovieGenres))
	for _, g := range MovieGenres {
		names = append(names, g.Name)
	}
	return names
}

// ValidGenreName reports whether name is part of the fixed taxonomy.
func ValidGenreName(name string) bool {
	_, ok := genreIDsByName[name]
	return ok
}
