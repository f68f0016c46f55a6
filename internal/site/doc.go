// Package site renders a catalog snapshot into static HTML.
//
// The default templates and stylesheet are embedded in the binary; a config
// override can point at on-disk directories instead. Rendering is pure given
// the catalog and configuration, so two renders of the same snapshot produce
// byte-identical trees.
package site
