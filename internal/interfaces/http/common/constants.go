package common

import "time"

const (
	// MaxRequestBody limits JSON request bodies for review/gallery/contact endpoints.
	MaxRequestBody = 1 << 20
	// RequestTimeout bounds store calls made by a single handler.
	RequestTimeout = 5 * time.Second
)
