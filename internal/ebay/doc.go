// Package ebay talks to the eBay Browse API.
//
// The client obtains an application token via the OAuth client-credentials
// grant, pages through item_summary/search for one seller, and normalizes
// raw summaries into domain items. Every page request goes through the
// response cache first; when the remote call fails (or the token cannot be
// obtained) the client falls back to a stale cache entry and logs that it
// did so. A page that can be served neither fresh nor stale aborts the whole
// fetch: the caller gets a complete listing set or an error, never a
// silently truncated one.
package ebay
