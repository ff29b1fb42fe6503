package library

// Package library manages the user's collections: the watchlist and the
// rating history. Identifier lists from the service are resolved to full
// movie details with one concurrent request per id; a failed resolution drops
// that item instead of failing the whole view.
