package domain

import "errors"

// Error kinds for the pipeline. Every fatal error wraps exactly one of these
// so callers can classify with errors.Is.
var (
	// ErrConfig: invalid or missing configuration; the run aborts before any
	// network or filesystem side effect.
	ErrConfig = errors.New("invalid configuration")

	// ErrAuth: credential exchange failed and no stale cache covered the run.
	ErrAuth = errors.New("credential exchange failed")

	// ErrFetch: a page could not be served fresh or stale.
	ErrFetch = errors.New("listing fetch failed")

	// ErrRender: template/data mismatch; scratch discarded, output untouched.
	ErrRender = errors.New("site render failed")

	// ErrPublish: validation or swap failed; public output untouched.
	ErrPublish = errors.New("publish failed")

	// ErrDeploy: upload to the deploy target failed after a clean publish.
	ErrDeploy = errors.New("deploy failed")
)
