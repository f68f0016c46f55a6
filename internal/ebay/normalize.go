package ebay

import (
	"strconv"
	"strings"
	"time"

	"github.com/jbrahy/ebay-catalog/internal/domain"
)

// Wire shapes for the Browse API item_summary/search response. Only the
// fields the catalog needs are mapped.
type searchResponse struct {
	Total         int           `json:"total"`
	ItemSummaries []itemSummary `json:"itemSummaries"`
}

type itemSummary struct {
	ItemID           string       `json:"itemId"`
	Title            string       `json:"title"`
	Price            *moneyValue  `json:"price"`
	CurrentBidPrice  *moneyValue  `json:"currentBidPrice"`
	Image            *imageRef    `json:"image"`
	AdditionalImages []imageRef   `json:"additionalImages"`
	Condition        string       `json:"condition"`
	Categories       []categoryRef `json:"categories"`
	ItemWebURL       string       `json:"itemWebUrl"`
	ItemAffiliateURL string       `json:"itemAffiliateWebUrl"`
	ShippingOptions  []shippingOption `json:"shippingOptions"`
	ItemLocation     *itemLocation `json:"itemLocation"`
	BuyingOptions    []string     `json:"buyingOptions"`
	ItemEndDate      string       `json:"itemEndDate"`
	ItemCreationDate string       `json:"itemCreationDate"`
}

type moneyValue struct {
	Value    flexFloat `json:"value"`
	Currency string    `json:"currency"`
}

// flexFloat accepts both "12.50" and 12.50; the Browse API quotes amounts.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

type imageRef struct {
	ImageURL string `json:"imageUrl"`
}

type categoryRef struct {
	CategoryName string `json:"categoryName"`
}

type shippingOption struct {
	ShippingCost     *moneyValue `json:"shippingCost"`
	ShippingCostType string      `json:"shippingCostType"`
}

type itemLocation struct {
	City string `json:"city"`
}

// normalizeItem maps one raw summary onto a domain item. Absent fields get
// documented defaults; nothing here can fail.
func normalizeItem(raw itemSummary) domain.Item {
	item := domain.Item{
		ID:            raw.ItemID,
		Title:         raw.Title,
		Price:         toMoney(raw.Price),
		Condition:     raw.Condition,
		Category:      "Uncategorized",
		BuyingOptions: raw.BuyingOptions,
	}

	if len(raw.Categories) > 0 && raw.Categories[0].CategoryName != "" {
		// Leaf category first, per the Browse API.
		item.Category = raw.Categories[0].CategoryName
	}

	// Prefer the affiliate-tracked link when the API returned one.
	item.URL = raw.ItemAffiliateURL
	if item.URL == "" {
		item.URL = raw.ItemWebURL
	}

	if raw.Image != nil {
		item.ImageURL = raw.Image.ImageURL
	}
	for _, img := range raw.AdditionalImages {
		if img.ImageURL != "" {
			item.GalleryURLs = append(item.GalleryURLs, img.ImageURL)
		}
	}

	if len(raw.ShippingOptions) > 0 {
		opt := raw.ShippingOptions[0]
		if opt.ShippingCost != nil {
			cost := toMoney(opt.ShippingCost)
			item.ShippingCost = &cost
		}
		item.FreeShipping = opt.ShippingCostType == "FREE" ||
			(item.ShippingCost != nil && item.ShippingCost.Value == 0)
	}

	if raw.ItemLocation != nil {
		item.Location = raw.ItemLocation.City
	}

	for _, opt := range raw.BuyingOptions {
		switch opt {
		case "AUCTION":
			item.Auction = true
		case "FIXED_PRICE":
			item.BuyItNow = true
		case "BEST_OFFER":
			item.BestOffer = true
		}
	}

	if item.Auction {
		if raw.CurrentBidPrice != nil {
			bid := toMoney(raw.CurrentBidPrice)
			item.CurrentBid = &bid
		}
		if t, err := time.Parse(time.RFC3339, raw.ItemEndDate); err == nil {
			item.EndTime = t
		}
	}

	if t, err := time.Parse(time.RFC3339, raw.ItemCreationDate); err == nil {
		item.ListedAt = t
	}

	return item
}

func toMoney(m *moneyValue) domain.Money {
	if m == nil {
		return domain.Money{Currency: "USD"}
	}
	currency := m.Currency
	if currency == "" {
		currency = "USD"
	}
	return domain.Money{Value: float64(m.Value), Currency: currency}
}
