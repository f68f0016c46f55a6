package ebay

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/jbrahy/ebay-catalog/internal/domain"
)

const (
	productionTokenURL  = "https://api.ebay.com/identity/v1/oauth2/token"
	productionBrowseURL = "https://api.ebay.com/buy/browse/v1"
	sandboxTokenURL     = "https://api.sandbox.ebay.com/identity/v1/oauth2/token"
	sandboxBrowseURL    = "https://api.sandbox.ebay.com/buy/browse/v1"

	oauthScope = "https://api.ebay.com/oauth/api_scope"

	// Refresh the token this long before its reported expiry.
	tokenExpirySlack = 60 * time.Second
)

// Config holds client construction options. TokenURL and BrowseURL override
// the environment-derived endpoints; tests point them at a local server.
type Config struct {
	AppID               string
	CertID              string
	Environment         string // PRODUCTION or SANDBOX
	Marketplace         string // e.g. EBAY_US
	AffiliateCampaignID string

	CacheTTL   time.Duration
	PageSize   int // max 200 per Browse API
	MaxPages   int // safety bound on pagination
	Timeout    time.Duration
	MaxRetries int

	TokenURL  string
	BrowseURL string
	HTTP      *http.Client
}

// Client fetches a seller's active listings.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      domain.ResponseCache
	logger     *log.Logger
	now        func() time.Time

	// In-memory credential; lives for the duration of one run.
	token       string
	tokenExpiry time.Time

	apiCalls    int
	cacheHits   int
	staleServed int
}

// NewClient builds a Browse API client on top of the given response cache.
func NewClient(cfg Config, cache domain.ResponseCache, logger *log.Logger) *Client {
	if cfg.TokenURL == "" || cfg.BrowseURL == "" {
		if strings.EqualFold(cfg.Environment, "SANDBOX") {
			cfg.TokenURL = sandboxTokenURL
			cfg.BrowseURL = sandboxBrowseURL
		} else {
			cfg.TokenURL = productionTokenURL
			cfg.BrowseURL = productionBrowseURL
		}
	}
	if cfg.PageSize <= 0 || cfg.PageSize > 200 {
		cfg.PageSize = 200
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 50
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

var _ domain.ListingSource = (*Client)(nil)

// FetchAll pages through the seller's listings until a short page, the
// reported total, or the configured page bound. Any page that cannot be
// served fresh or stale fails the whole fetch; partial results are discarded.
func (c *Client) FetchAll(ctx context.Context, seller string, refresh bool) (domain.FetchResult, error) {
	var items []domain.Item
	total := -1

	for page := 0; page < c.cfg.MaxPages; page++ {
		offset := page * c.cfg.PageSize

		payload, err := c.searchPage(ctx, seller, offset, refresh)
		if err != nil {
			return domain.FetchResult{}, err
		}

		var resp searchResponse
		if err := json.Unmarshal(payload, &resp); err != nil {
			return domain.FetchResult{}, fmt.Errorf("%w: decoding page at offset %d: %v", domain.ErrFetch, offset, err)
		}

		if total < 0 {
			total = resp.Total
			c.logger.Info("seller listing count reported", "seller", seller, "total", total)
		}
		if len(resp.ItemSummaries) == 0 {
			break
		}
		for _, raw := range resp.ItemSummaries {
			items = append(items, normalizeItem(raw))
		}
		if len(resp.ItemSummaries) < c.cfg.PageSize {
			break
		}
		if total >= 0 && offset+len(resp.ItemSummaries) >= total {
			break
		}
		if page == c.cfg.MaxPages-1 {
			c.logger.Warn("pagination stopped at configured page bound", "max_pages", c.cfg.MaxPages)
		}
	}

	c.logger.Info("fetch complete",
		"seller", seller,
		"items", len(items),
		"api_calls", c.apiCalls,
		"cache_hits", c.cacheHits,
		"stale_served", c.staleServed)

	return domain.FetchResult{
		Items:       items,
		APICalls:    c.apiCalls,
		CacheHits:   c.cacheHits,
		StaleServed: c.staleServed,
	}, nil
}

// searchPage returns the raw payload for one page, consulting the cache
// first and falling back to a stale entry if the remote path fails.
func (c *Client) searchPage(ctx context.Context, seller string, offset int, refresh bool) ([]byte, error) {
	params := url.Values{}
	params.Set("filter", fmt.Sprintf("sellers:{%s}", seller))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(c.cfg.PageSize))

	endpoint := c.cfg.BrowseURL + "/item_summary/search"
	fp := fingerprint(endpoint, c.cfg.Marketplace, params)

	if !refresh {
		payload, ok, err := c.cache.Get(fp, c.cfg.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("%w: cache read for %s: %v", domain.ErrFetch, fp, err)
		}
		if ok {
			c.cacheHits++
			c.logger.Debug("cache hit", "fingerprint", fp, "offset", offset)
			return payload, nil
		}
	}

	token, err := c.authenticate(ctx)
	if err != nil {
		if payload, ok := c.stale(fp, offset, err); ok {
			return payload, nil
		}
		return nil, err
	}

	payload, err := c.doSearch(ctx, endpoint, token, params)
	if err != nil {
		if payload, ok := c.stale(fp, offset, err); ok {
			return payload, nil
		}
		return nil, fmt.Errorf("%w: offset %d: %v", domain.ErrFetch, offset, err)
	}

	if err := c.cache.Put(fp, payload); err != nil {
		// The fetch itself succeeded; a cache write failure only costs the
		// next run a remote call.
		c.logger.Warn("cache write failed", "fingerprint", fp, "err", err)
	}
	return payload, nil
}

// stale tries the fallback path after cause made the remote path unusable.
func (c *Client) stale(fp string, offset int, cause error) ([]byte, bool) {
	payload, ok, err := c.cache.GetStale(fp)
	if err != nil {
		c.logger.Error("stale cache read failed", "fingerprint", fp, "err", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	c.staleServed++
	c.logger.Warn("serving stale cache entry after remote failure",
		"fingerprint", fp, "offset", offset, "cause", cause)
	return payload, true
}

// doSearch performs the remote call with bounded retries and backoff.
// Retried: transport errors, 429 and 5xx. Anything else fails immediately.
func (c *Client) doSearch(ctx context.Context, endpoint, token string, params url.Values) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("X-EBAY-C-MARKETPLACE-ID", c.cfg.Marketplace)
		if c.cfg.AffiliateCampaignID != "" {
			req.Header.Set("X-EBAY-C-ENDUSERCTX",
				"affiliateCampaignId="+c.cfg.AffiliateCampaignID)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			c.apiCalls++
			return body, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("unexpected status %d", resp.StatusCode)
			continue
		default:
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
	}
	return nil, fmt.Errorf("after %d retries: %w", c.cfg.MaxRetries, lastErr)
}

// authenticate returns the in-memory token, exchanging credentials for a new
// one when absent or within the expiry slack.
func (c *Client) authenticate(ctx context.Context) (string, error) {
	if c.token != "" && c.now().Before(c.tokenExpiry.Add(-tokenExpirySlack)) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", oauthScope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAuth, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.cfg.AppID, c.cfg.CertID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token endpoint returned %s", domain.ErrAuth, resp.Status)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("%w: decoding token response: %v", domain.ErrAuth, err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: token endpoint returned no access_token", domain.ErrAuth)
	}
	if tok.ExpiresIn <= 0 {
		tok.ExpiresIn = 7200
	}

	c.token = tok.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	c.logger.Info("obtained OAuth token", "expires_in", tok.ExpiresIn)
	return c.token, nil
}

// fingerprint derives the cache key from the logical request: endpoint,
// marketplace and every query parameter (url.Values.Encode sorts keys, so
// identical requests always collapse to the same key).
func fingerprint(endpoint, marketplace string, params url.Values) string {
	sum := sha256.Sum256([]byte(marketplace + " " + endpoint + "?" + params.Encode()))
	return hex.EncodeToString(sum[:])
}
