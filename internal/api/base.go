package api

import "time"

// DefaultBaseURL is the single source of truth for the CLI API target.
const DefaultBaseURL = "http://localhost:3001"

// prefix is the store's versioned route prefix.
const prefix = "/api/v0"

// NewDefaultClient builds a client pointed at the default Quill store URL.
func NewDefaultClient(token string, timeout ...time.Duration) *Client {
	return NewClient(DefaultBaseURL, token, timeout...)
}
