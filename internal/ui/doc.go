package ui

// Package ui holds the Fyne views: authentication forms, the navigation
// shell, and the browsing views (home, search, watchlist, ratings, movie
// detail, profile). Views load data in background goroutines and marshal
// widget updates back through fyne.Do; each view guards its loads with a
// sequence counter so a superseded response never overwrites newer state.
