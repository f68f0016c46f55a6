package domain

import (
	"context"
	"time"
)

// ListingSource fetches every active listing for a seller. refresh bypasses
// any response cache. A source either returns the complete listing set or an
// error; it never returns a silently truncated set.
type ListingSource interface {
	FetchAll(ctx context.Context, seller string, refresh bool) (FetchResult, error)
}

// ResponseCache stores raw API payloads keyed by request fingerprint.
type ResponseCache interface {
	// Get returns the payload only while it is younger than ttl.
	Get(fingerprint string, ttl time.Duration) (payload []byte, ok bool, err error)

	// GetStale returns the payload regardless of age; fallback use only.
	GetStale(fingerprint string) (payload []byte, ok bool, err error)

	// Put overwrites any prior entry for the fingerprint.
	Put(fingerprint string, payload []byte) error
}

// Renderer writes a full site for the catalog into dir and returns the
// manifest of relative paths it wrote.
type Renderer interface {
	Render(dir string, c Catalog) (manifest []string, err error)
}

// Publisher renders into a scratch location, validates the result and swaps
// it into the public output. On failure the previous output stays untouched.
type Publisher interface {
	Publish(c Catalog, r Renderer) error
}

// Deployer pushes a finalized output tree to an external target.
type Deployer interface {
	Deploy(ctx context.Context, dir string) error
}
