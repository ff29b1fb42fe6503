package api

// Package api implements the HTTP client for the CineDost service. It attaches
// the bearer token, normalizes the service's response envelopes, and maps
// transport and status failures into *Error values with a strict error-body
// schema. Every request carries a correlation id that also appears in logs.
