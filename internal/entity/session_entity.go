package entity

import "collectible-documenter-be/pkg/catalog"

// Session is one user's live in-memory session. It exists for the lifetime
// of the cache entry; the persisted snapshot only covers the whitelisted
// catalog keys.
type Session struct {
	Email string
	State *catalog.State
}
