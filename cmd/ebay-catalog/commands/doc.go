// Package commands defines the ebay-catalog CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - build      Fetch listings, assemble the catalog and publish the site
//   - demo       Build the site from generated sample listings
//   - validate   Check the configuration without touching the network
//
// # Implementation
//
// The root command loads configuration and constructs the logger before any
// subcommand runs; build and demo then wire the full pipeline through
// internal/app.
package commands
