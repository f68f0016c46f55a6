// Package config loads and validates the YAML configuration file.
//
// Credentials may be supplied (or overridden) through the environment, with
// an optional .env file: EBAY_APP_ID and EBAY_CERT_ID. Validation runs before
// any network call or filesystem write, so a bad config fails the run with no
// side effects.
package config
