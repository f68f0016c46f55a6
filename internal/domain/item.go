package domain

import "time"

// Money is an amount in a specific currency.
type Money struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// Item is a single normalized listing. It is immutable once constructed by
// the fetcher; downstream stages only read it.
type Item struct {
	ID        string `json:"item_id"`
	Title     string `json:"title"`
	Price     Money  `json:"price"`
	Condition string `json:"condition"`
	Category  string `json:"category"`

	// URL is the purchase link; the affiliate-tracked variant when the API
	// provides one.
	URL string `json:"item_url"`

	ImageURL    string   `json:"primary_image"`
	GalleryURLs []string `json:"additional_images,omitempty"`

	// ShippingCost is nil when the API reported no shipping options.
	ShippingCost *Money `json:"shipping_cost,omitempty"`
	FreeShipping bool   `json:"free_shipping"`
	Location     string `json:"location,omitempty"`

	BuyingOptions []string `json:"buying_options"`
	Auction       bool     `json:"is_auction"`
	BuyItNow      bool     `json:"is_buy_it_now"`
	BestOffer     bool     `json:"is_best_offer"`

	// CurrentBid is set for auctions that have received bids.
	CurrentBid *Money `json:"current_bid,omitempty"`

	// EndTime is the auction end; zero for listings without one.
	EndTime time.Time `json:"item_end_date,omitempty"`

	// ListedAt is when the listing went live.
	ListedAt time.Time `json:"listed_at,omitempty"`
}

// FetchResult is what a ListingSource returns for one complete run.
type FetchResult struct {
	Items []Item

	// Counters for the build summary.
	APICalls    int
	CacheHits   int
	StaleServed int
}
