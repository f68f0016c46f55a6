// Package demo provides a canned listing source so the site can be rendered
// and styled without eBay credentials.
package demo
