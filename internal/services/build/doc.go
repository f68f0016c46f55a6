// Package build orchestrates one catalog run: fetch, assemble, render,
// publish, deploy. Each stage is a port; the service owns only the sequencing
// and the run summary.
package build
