package site

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jbrahy/ebay-catalog/internal/domain"
)

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// writeSitemap enumerates every generated page, paginated category pages
// included.
func writeSitemap(dir, baseURL string, c domain.Catalog, perPage int) error {
	base := strings.TrimRight(baseURL, "/")
	lastMod := c.GeneratedAt.Format("2006-01-02")

	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []sitemapURL{{Loc: base + "/", LastMod: lastMod}},
	}
	for _, cat := range c.Categories {
		pages := (cat.ItemCount + perPage - 1) / perPage
		for page := 1; page <= pages; page++ {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:     base + "/" + categoryPagePath(cat.Slug, page),
				LastMod: lastMod,
			})
		}
	}

	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding sitemap: %v", domain.ErrRender, err)
	}
	payload := append([]byte(xml.Header), data...)
	payload = append(payload, '\n')

	if err := os.WriteFile(filepath.Join(dir, "sitemap.xml"), payload, 0o644); err != nil {
		return fmt.Errorf("%w: writing sitemap: %v", domain.ErrRender, err)
	}
	return nil
}
