package domain

import "time"

// Seller is the branding shown on the generated site.
type Seller struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Tagline     string `json:"tagline,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

// Category groups the items sharing one category name. Slug is unique within
// a catalog.
type Category struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ItemCount int    `json:"item_count"`
	Items     []Item `json:"items"`
}

// Catalog is the immutable snapshot handed from the assembler to the
// renderer. TotalItems always equals the sum of the categories' ItemCount.
type Catalog struct {
	Seller      Seller     `json:"seller"`
	Categories  []Category `json:"categories"`
	TotalItems  int        `json:"total_items"`
	GeneratedAt time.Time  `json:"generated_at"`
}
