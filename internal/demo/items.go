package demo

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jbrahy/ebay-catalog/internal/domain"
)

// Source generates deterministic sample listings. The same seed and count
// always produce the same items, so demo builds are reproducible.
type Source struct {
	count int
	seed  int64
	now   func() time.Time
}

var _ domain.ListingSource = (*Source)(nil)

func NewSource(count int, seed int64) *Source {
	if count <= 0 {
		count = 40
	}
	return &Source{count: count, seed: seed, now: time.Now}
}

var sampleCategories = []string{
	"Electronics",
	"Collectibles",
	"Home & Garden",
	"Toys & Hobbies",
}

var sampleTitles = map[string][]string{
	"Electronics": {
		"Vintage Sony Walkman WM-10 Cassette Player",
		"Canon AE-1 35mm Film Camera with 50mm Lens",
		"Technics SL-1200 Turntable, Serviced",
		"HP 48G Graphing Calculator",
		"Marantz 2270 Stereo Receiver",
	},
	"Collectibles": {
		"1987 Topps Baseball Complete Set",
		"Zippo Lighter, Brass, 1970s",
		"Coca-Cola Serving Tray, 1950s Reproduction",
		"Hot Wheels Redline Custom Camaro",
		"Star Wars Kenner Figure, Carded",
	},
	"Home & Garden": {
		"Cast Iron Skillet, 10 Inch, Restored",
		"Pyrex Mixing Bowl Set, Primary Colors",
		"Brass Table Lamp with Linen Shade",
		"Hand-Thrown Stoneware Vase",
		"Vintage Seed Catalog Prints, Framed",
	},
	"Toys & Hobbies": {
		"LEGO Space Set 6985, Complete with Box",
		"Lionel O-Gauge Locomotive, Postwar",
		"Estes Model Rocket Starter Kit",
		"Chess Set, Weighted Wood Pieces",
		"RC Buggy, 1/10 Scale, Ready to Run",
	},
}

var sampleConditions = []string{"Used", "Very Good", "Good", "New", "For parts or not working"}

// FetchAll generates the configured number of items. Roughly one in five is
// an auction ending within the next two days.
func (s *Source) FetchAll(_ context.Context, _ string, _ bool) (domain.FetchResult, error) {
	rng := rand.New(rand.NewSource(s.seed))
	now := s.now().UTC()

	items := make([]domain.Item, 0, s.count)
	for i := 0; i < s.count; i++ {
		category := sampleCategories[i%len(sampleCategories)]
		titles := sampleTitles[category]
		title := titles[(i/len(sampleCategories))%len(titles)]
		if i >= len(sampleCategories)*len(titles) {
			title = fmt.Sprintf("%s (Lot %d)", title, i)
		}

		price := float64(rng.Intn(19000)+500) / 100
		item := domain.Item{
			ID:        fmt.Sprintf("v1|demo%04d|0", i),
			Title:     title,
			Price:     domain.Money{Value: price, Currency: "USD"},
			Condition: sampleConditions[rng.Intn(len(sampleConditions))],
			Category:  category,
			URL:       fmt.Sprintf("https://www.ebay.com/itm/demo%04d", i),
			ImageURL:  fmt.Sprintf("https://picsum.photos/seed/demo%d/400/300", i),
			Location:  "Portland, OR",
			ListedAt:  now.Add(-time.Duration(rng.Intn(60*24)) * time.Hour),
		}

		if i%5 == 0 {
			item.Auction = true
			item.BuyingOptions = []string{"AUCTION"}
			item.EndTime = now.Add(time.Duration(rng.Intn(48)+1) * time.Hour)
			bid := price * 0.6
			item.CurrentBid = &domain.Money{Value: float64(int(bid*100)) / 100, Currency: "USD"}
		} else {
			item.BuyItNow = true
			item.BuyingOptions = []string{"FIXED_PRICE"}
			item.FreeShipping = rng.Intn(2) == 0
			if !item.FreeShipping {
				cost := float64(rng.Intn(1500)+300) / 100
				item.ShippingCost = &domain.Money{Value: cost, Currency: "USD"}
			}
		}

		items = append(items, item)
	}

	return domain.FetchResult{Items: items}, nil
}
