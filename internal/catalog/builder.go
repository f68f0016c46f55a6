package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/jbrahy/ebay-catalog/internal/domain"
)

// Builder carries the display rules from configuration: categories to pin to
// the front and categories to drop.
type Builder struct {
	customOrder []string
	hidden      map[string]bool
}

func NewBuilder(customOrder, hidden []string) *Builder {
	h := make(map[string]bool, len(hidden))
	for _, name := range hidden {
		h[name] = true
	}
	return &Builder{customOrder: customOrder, hidden: h}
}

// Build groups items into an immutable catalog snapshot. Hidden categories
// are excluded from both the category list and the item total.
func (b *Builder) Build(items []domain.Item, seller domain.Seller, now time.Time) domain.Catalog {
	groups := map[string][]domain.Item{}
	var names []string
	for _, item := range items {
		if b.hidden[item.Category] {
			continue
		}
		if _, seen := groups[item.Category]; !seen {
			names = append(names, item.Category)
		}
		groups[item.Category] = append(groups[item.Category], item)
	}

	names = b.orderNames(names)
	slugs := uniqueSlugs(names)

	catalog := domain.Catalog{
		Seller:      seller,
		GeneratedAt: now,
	}
	for _, name := range names {
		group := groups[name]
		sortItems(group)
		catalog.Categories = append(catalog.Categories, domain.Category{
			Name:      name,
			Slug:      slugs[name],
			ItemCount: len(group),
			Items:     group,
		})
		catalog.TotalItems += len(group)
	}
	return catalog
}

// orderNames puts custom-order names first in their configured sequence, then
// the rest alphabetically, case-insensitive.
func (b *Builder) orderNames(names []string) []string {
	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
	}

	var ordered []string
	pinned := map[string]bool{}
	for _, name := range b.customOrder {
		if present[name] && !pinned[name] {
			ordered = append(ordered, name)
			pinned[name] = true
		}
	}

	var rest []string
	for _, name := range names {
		if !pinned[name] {
			rest = append(rest, name)
		}
	}
	sort.Slice(rest, func(i, j int) bool {
		return strings.ToLower(rest[i]) < strings.ToLower(rest[j])
	})
	return append(ordered, rest...)
}

// sortItems orders a category in place: auctions with an end time first,
// soonest ending on top, then everything else newest first. The stable sort
// preserves fetch order on ties.
func sortItems(items []domain.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		iEnds, jEnds := !items[i].EndTime.IsZero(), !items[j].EndTime.IsZero()
		if iEnds != jEnds {
			return iEnds
		}
		if iEnds {
			return items[i].EndTime.Before(items[j].EndTime)
		}
		return items[i].ListedAt.After(items[j].ListedAt)
	})
}
