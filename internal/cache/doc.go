// Package cache stores raw API responses in a local SQLite file, keyed by
// request fingerprint.
//
// Freshness is decided on read: Get applies the caller's TTL, GetStale
// ignores age entirely and exists for the fallback path when the remote API
// is unavailable. Entries are only ever overwritten wholesale; there is no
// eviction. Cleanup is external (delete the database file).
package cache
