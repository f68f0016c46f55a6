// Package app wires application dependencies for the CLI.
//
// It builds the response cache, API client, assembler, renderer, publisher
// and deployer from configuration, exposing them via the Wire struct for
// commands to use.
package app
