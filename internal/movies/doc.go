package movies

// Package movies is the catalog layer: recommendations with the ordered
// fallback chain, popular movies, free-text search, and detail fetches, plus
// the pure client-side filter/sort derivations applied to fetched lists.
