// Package catalog assembles normalized items into the snapshot the renderer
// consumes: items grouped by category, hidden categories dropped, categories
// ordered (custom order first, then alphabetical), items sorted with ending
// auctions up front, and a unique URL slug per category.
package catalog
