package ebay

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeItem_Defaults(t *testing.T) {
	item := normalizeItem(itemSummary{ItemID: "v1|123|0", Title: "Bare"})

	assert.Equal(t, "Uncategorized", item.Category)
	assert.Equal(t, "USD", item.Price.Currency)
	assert.Zero(t, item.Price.Value)
	assert.Empty(t, item.URL)
	assert.False(t, item.FreeShipping)
	assert.Nil(t, item.ShippingCost)
	assert.True(t, item.ListedAt.IsZero())
}

func TestNormalizeItem_PrefersAffiliateURL(t *testing.T) {
	item := normalizeItem(itemSummary{
		ItemWebURL:       "https://example.com/itm/1",
		ItemAffiliateURL: "https://example.com/itm/1?campid=42",
	})
	assert.Equal(t, "https://example.com/itm/1?campid=42", item.URL)

	item = normalizeItem(itemSummary{ItemWebURL: "https://example.com/itm/1"})
	assert.Equal(t, "https://example.com/itm/1", item.URL)
}

func TestNormalizeItem_FreeShipping(t *testing.T) {
	item := normalizeItem(itemSummary{ShippingOptions: []shippingOption{
		{ShippingCostType: "FREE"},
	}})
	assert.True(t, item.FreeShipping)

	item = normalizeItem(itemSummary{ShippingOptions: []shippingOption{
		{ShippingCost: &moneyValue{Value: 0, Currency: "USD"}},
	}})
	assert.True(t, item.FreeShipping, "zero cost counts as free")

	item = normalizeItem(itemSummary{ShippingOptions: []shippingOption{
		{ShippingCost: &moneyValue{Value: 4.99, Currency: "USD"}},
	}})
	assert.False(t, item.FreeShipping)
	require.NotNil(t, item.ShippingCost)
	assert.Equal(t, 4.99, item.ShippingCost.Value)
}

func TestNormalizeItem_AuctionFields(t *testing.T) {
	raw := itemSummary{
		BuyingOptions:   []string{"AUCTION", "BEST_OFFER"},
		CurrentBidPrice: &moneyValue{Value: 25.50, Currency: "USD"},
		ItemEndDate:     "2024-06-01T18:00:00.000Z",
	}
	item := normalizeItem(raw)

	assert.True(t, item.Auction)
	assert.True(t, item.BestOffer)
	assert.False(t, item.BuyItNow)
	require.NotNil(t, item.CurrentBid)
	assert.Equal(t, 25.50, item.CurrentBid.Value)
	assert.Equal(t, time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC), item.EndTime)

	// Fixed-price listings never carry bid or end time.
	fixed := normalizeItem(itemSummary{
		BuyingOptions:   []string{"FIXED_PRICE"},
		CurrentBidPrice: &moneyValue{Value: 9.99},
		ItemEndDate:     "2024-06-01T18:00:00.000Z",
	})
	assert.Nil(t, fixed.CurrentBid)
	assert.True(t, fixed.EndTime.IsZero())
}

func TestFlexFloat_QuotedAndBare(t *testing.T) {
	var m moneyValue
	require.NoError(t, json.Unmarshal([]byte(`{"value":"12.50","currency":"USD"}`), &m))
	assert.Equal(t, 12.50, float64(m.Value))

	require.NoError(t, json.Unmarshal([]byte(`{"value":12.50}`), &m))
	assert.Equal(t, 12.50, float64(m.Value))

	require.NoError(t, json.Unmarshal([]byte(`{"value":""}`), &m))
	assert.Zero(t, float64(m.Value))
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := url.Values{}
	a.Set("offset", "0")
	a.Set("limit", "200")
	a.Set("filter", "sellers:{someseller}")

	b := url.Values{}
	b.Set("filter", "sellers:{someseller}")
	b.Set("limit", "200")
	b.Set("offset", "0")

	assert.Equal(t,
		fingerprint("https://api.ebay.com/buy/browse/v1/item_summary/search", "EBAY_US", a),
		fingerprint("https://api.ebay.com/buy/browse/v1/item_summary/search", "EBAY_US", b),
		"parameter insertion order must not change the key")

	assert.NotEqual(t,
		fingerprint("https://api.ebay.com/buy/browse/v1/item_summary/search", "EBAY_US", a),
		fingerprint("https://api.ebay.com/buy/browse/v1/item_summary/search", "EBAY_GB", a),
		"marketplace is part of the key")
}
