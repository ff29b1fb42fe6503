package session

// Package session holds the signed-in user and the lifecycle around it:
// login, registration, logout, profile refresh, and startup restoration of a
// persisted token. Views subscribe to changes so profile edits (favorite
// genres in particular) propagate to everything derived from the user.
