package site

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jbrahy/ebay-catalog/internal/config"
	"github.com/jbrahy/ebay-catalog/internal/domain"
)

//go:embed templates/*.html
var builtinTemplates embed.FS

//go:embed static
var builtinStatic embed.FS

// Renderer writes the HTML tree for one catalog snapshot.
type Renderer struct {
	site        config.Site
	templateDir string
	staticDir   string
	logger      *log.Logger
}

var _ domain.Renderer = (*Renderer)(nil)

// New builds a renderer. Empty templateDir/staticDir select the embedded
// defaults.
func New(site config.Site, build config.Build, logger *log.Logger) *Renderer {
	return &Renderer{
		site:        site,
		templateDir: build.TemplateDir,
		staticDir:   build.StaticDir,
		logger:      logger,
	}
}

type pageData struct {
	Site       config.Site
	Catalog    domain.Catalog
	Recent     []domain.Item
	Category   *domain.Category
	Items      []domain.Item
	Page       int
	TotalPages int

	// Root is the relative path prefix back to the output root, so asset
	// links work from both index.html and category/ pages.
	Root string
}

// cardData is the context handed to the item-card partial.
type cardData struct {
	Site    config.Site
	Catalog domain.Catalog
	Item    domain.Item
}

func cardContext(p pageData, item domain.Item) cardData {
	return cardData{Site: p.Site, Catalog: p.Catalog, Item: item}
}

// Render writes every page and static asset under dir and returns the
// manifest of written paths, relative to dir.
func (r *Renderer) Render(dir string, c domain.Catalog) ([]string, error) {
	tmpl, err := r.parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRender, err)
	}

	var manifest []string
	write := func(rel, name string, data pageData) error {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrRender, err)
		}
		f, err := os.Create(full)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrRender, err)
		}
		if err := tmpl.ExecuteTemplate(f, name, data); err != nil {
			f.Close()
			return fmt.Errorf("%w: rendering %s: %v", domain.ErrRender, rel, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrRender, err)
		}
		manifest = append(manifest, rel)
		return nil
	}

	index := pageData{
		Site:    r.site,
		Catalog: c,
		Recent:  recentItems(c, r.site.RecentItems),
	}
	if err := write("index.html", "index", index); err != nil {
		return nil, err
	}

	for i := range c.Categories {
		cat := &c.Categories[i]
		pages := (cat.ItemCount + r.site.ItemsPerPage - 1) / r.site.ItemsPerPage
		for page := 1; page <= pages; page++ {
			start := (page - 1) * r.site.ItemsPerPage
			end := start + r.site.ItemsPerPage
			if end > cat.ItemCount {
				end = cat.ItemCount
			}
			data := pageData{
				Site:       r.site,
				Catalog:    c,
				Category:   cat,
				Items:      cat.Items[start:end],
				Page:       page,
				TotalPages: pages,
				Root:       "../",
			}
			if err := write(categoryPagePath(cat.Slug, page), "category", data); err != nil {
				return nil, err
			}
		}
	}

	assets, err := r.copyStatic(dir)
	if err != nil {
		return nil, err
	}
	manifest = append(manifest, assets...)

	if r.site.GenerateSitemap {
		if r.site.BaseURL == "" {
			r.logger.Warn("sitemap requested but site.base_url is not set, skipping")
		} else {
			if err := writeSitemap(dir, r.site.BaseURL, c, r.site.ItemsPerPage); err != nil {
				return nil, err
			}
			manifest = append(manifest, "sitemap.xml")
		}
	}

	return manifest, nil
}

// categoryPagePath returns the page path relative to the output root. Page 1
// is the bare slug so category links stay short.
func categoryPagePath(slug string, page int) string {
	if page <= 1 {
		return "category/" + slug + ".html"
	}
	return "category/" + slug + "-page" + strconv.Itoa(page) + ".html"
}

// recentItems returns the n newest items across all categories by listing
// time. Items without a listing time never make the cut.
func recentItems(c domain.Catalog, n int) []domain.Item {
	var all []domain.Item
	for _, cat := range c.Categories {
		for _, item := range cat.Items {
			if !item.ListedAt.IsZero() {
				all = append(all, item)
			}
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].ListedAt.After(all[j].ListedAt)
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}

func (r *Renderer) parseTemplates() (*template.Template, error) {
	tmpl := template.New("").Funcs(template.FuncMap{
		"money":    fmtMoney,
		"timeleft": timeLeft,
		"pagepath": categoryPagePath,
		"card":     cardContext,
		"seq":      oneTo,
	})
	if r.templateDir != "" {
		return tmpl.ParseGlob(filepath.Join(r.templateDir, "*.html"))
	}
	return tmpl.ParseFS(builtinTemplates, "templates/*.html")
}

// copyStatic copies the stylesheet and any other assets into dir/static.
func (r *Renderer) copyStatic(dir string) ([]string, error) {
	var src fs.FS
	if r.staticDir != "" {
		src = os.DirFS(r.staticDir)
	} else {
		sub, err := fs.Sub(builtinStatic, "static")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRender, err)
		}
		src = sub
	}

	var manifest []string
	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(src, p)
		if err != nil {
			return err
		}
		rel := path.Join("static", p)
		full := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(full, data, 0o644); err != nil {
			return err
		}
		manifest = append(manifest, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: copying static assets: %v", domain.ErrRender, err)
	}
	return manifest, nil
}

// oneTo backs the pagination links: 1 through n inclusive.
func oneTo(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// fmtMoney renders an amount for display. It accepts both Money and *Money so
// templates can pass optional fields straight through.
func fmtMoney(v any) string {
	var m domain.Money
	switch x := v.(type) {
	case domain.Money:
		m = x
	case *domain.Money:
		if x == nil {
			return ""
		}
		m = *x
	default:
		return ""
	}
	if m.Currency == "USD" || m.Currency == "" {
		return fmt.Sprintf("$%.2f", m.Value)
	}
	return fmt.Sprintf("%.2f %s", m.Value, m.Currency)
}

// timeLeft describes how long remains between now and end, coarsely. The
// renderer passes the catalog generation time as now to stay deterministic.
func timeLeft(end, now time.Time) string {
	if end.IsZero() {
		return ""
	}
	d := end.Sub(now)
	switch {
	case d <= 0:
		return "ended"
	case d < time.Hour:
		return fmt.Sprintf("%dm left", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh %dm left", int(d.Hours()), int(d.Minutes())%60)
	default:
		days := int(d.Hours()) / 24
		return fmt.Sprintf("%dd %dh left", days, int(d.Hours())%24)
	}
}
