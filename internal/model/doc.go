package model

// Package model defines domain data structures shared across the app: movies,
// movie detail projections, users, ratings, and the genre table. Structures
// mirror the service's JSON payloads and are read-only projections on the
// client; derived picks (trailer, director) live here next to the data.
