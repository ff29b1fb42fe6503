package images

// Package images turns CDN image paths into renderable resources. Fetches are
// rate limited, downscaled to the requested bounds, and cached in memory; a
// missing or failed image yields a placeholder instead of a broken reference.
