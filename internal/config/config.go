package config

import (
	"bytes"
	"fmt"
	"os"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jbrahy/ebay-catalog/internal/domain"
)

// Ebay holds API credentials and marketplace selection.
type Ebay struct {
	AppID       string `yaml:"app_id"`
	CertID      string `yaml:"cert_id"`
	Environment string `yaml:"environment" validate:"oneof=PRODUCTION SANDBOX"`
	Marketplace string `yaml:"marketplace" validate:"required"`
}

// Seller identifies whose listings are fetched and how they are branded.
type Seller struct {
	Username    string `yaml:"username" validate:"required"`
	DisplayName string `yaml:"display_name"`
	Tagline     string `yaml:"tagline"`
	Logo        string `yaml:"logo"`
}

// Site controls rendering: display toggles, pagination and affiliate id.
type Site struct {
	BaseURL             string `yaml:"base_url"`
	ItemsPerPage        int    `yaml:"items_per_page" validate:"gte=1"`
	RecentItems         int    `yaml:"recent_items" validate:"gte=0"`
	ShowPrice           bool   `yaml:"show_price"`
	ShowShipping        bool   `yaml:"show_shipping"`
	ShowCondition       bool   `yaml:"show_condition"`
	ShowTimeRemaining   bool   `yaml:"show_time_remaining"`
	GenerateSitemap     bool   `yaml:"generate_sitemap"`
	AffiliateCampaignID string `yaml:"affiliate_campaign_id"`
}

// Categories tunes catalog assembly.
type Categories struct {
	CustomOrder []string `yaml:"custom_order"`
	Hidden      []string `yaml:"hidden"`
}

// Build holds paths and fetch limits.
type Build struct {
	CachePath             string `yaml:"cache_path"`
	OutputDir             string `yaml:"output_dir" validate:"required"`
	TemplateDir           string `yaml:"template_dir"`
	StaticDir             string `yaml:"static_dir"`
	CacheTTLMinutes       int    `yaml:"cache_ttl_minutes" validate:"gte=1"`
	PageSize              int    `yaml:"page_size" validate:"gte=1,lte=200"`
	MaxPages              int    `yaml:"max_pages" validate:"gte=1"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds" validate:"gte=1"`
	MaxRetries            int    `yaml:"max_retries" validate:"gte=0"`
}

// Deploy selects the post-publish target.
type Deploy struct {
	Method                   string   `yaml:"method" validate:"oneof=none s3 rsync"`
	S3Bucket                 string   `yaml:"s3_bucket"`
	S3Region                 string   `yaml:"s3_region"`
	CloudFrontDistributionID string   `yaml:"cloudfront_distribution_id"`
	RsyncTarget              string   `yaml:"rsync_target"`
	RsyncFlags               []string `yaml:"rsync_flags"`
}

// Config is the full configuration document.
type Config struct {
	Ebay       Ebay       `yaml:"ebay"`
	Seller     Seller     `yaml:"seller"`
	Site       Site       `yaml:"site"`
	Categories Categories `yaml:"categories"`
	Build      Build      `yaml:"build"`
	Deploy     Deploy     `yaml:"deploy"`
}

// Load reads path, applies environment credential overrides and defaults,
// and validates. Credentials themselves are not required here; commands that
// talk to the API call RequireCredentials first.
func Load(path string) (*Config, error) {
	// Best effort; a missing .env just means credentials come from the
	// config file or the real environment.
	_ = godotenv.Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrConfig, path, err)
	}

	cfg := defaults()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrConfig, path, err)
	}

	if v := os.Getenv("EBAY_APP_ID"); v != "" {
		cfg.Ebay.AppID = v
	}
	if v := os.Getenv("EBAY_CERT_ID"); v != "" {
		cfg.Ebay.CertID = v
	}

	if err := newValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfig, err)
	}
	return cfg, nil
}

// RequireCredentials fails unless both API credentials are present.
func (c *Config) RequireCredentials() error {
	if c.Ebay.AppID == "" || c.Ebay.CertID == "" {
		return fmt.Errorf("%w: ebay.app_id and ebay.cert_id are required (set them in the config file or via EBAY_APP_ID / EBAY_CERT_ID)", domain.ErrConfig)
	}
	return nil
}

// SellerInfo converts the config branding into the domain type.
func (c *Config) SellerInfo() domain.Seller {
	display := c.Seller.DisplayName
	if display == "" {
		display = c.Seller.Username
	}
	return domain.Seller{
		Username:    c.Seller.Username,
		DisplayName: display,
		Tagline:     c.Seller.Tagline,
		Logo:        c.Seller.Logo,
	}
}

func defaults() *Config {
	return &Config{
		Ebay: Ebay{
			Environment: "PRODUCTION",
			Marketplace: "EBAY_US",
		},
		Site: Site{
			ItemsPerPage:      24,
			RecentItems:       8,
			ShowPrice:         true,
			ShowShipping:      true,
			ShowCondition:     true,
			ShowTimeRemaining: true,
			GenerateSitemap:   true,
		},
		Build: Build{
			CachePath:             ".cache/responses.db",
			OutputDir:             "output",
			CacheTTLMinutes:       15,
			PageSize:              200,
			MaxPages:              50,
			RequestTimeoutSeconds: 30,
			MaxRetries:            3,
		},
		Deploy: Deploy{
			Method:   "none",
			S3Region: "us-east-1",
		},
	}
}

// newValidator registers the cross-field deploy rules: the selected method
// must have its target configured.
func newValidator() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterStructValidation(deployStructValidation, Deploy{})
	return v
}

func deployStructValidation(sl validatorv10.StructLevel) {
	d := sl.Current().Interface().(Deploy)
	switch d.Method {
	case "s3":
		if d.S3Bucket == "" {
			sl.ReportError(d.S3Bucket, "s3_bucket", "S3Bucket", "required_for_s3", "")
		}
	case "rsync":
		if d.RsyncTarget == "" {
			sl.ReportError(d.RsyncTarget, "rsync_target", "RsyncTarget", "required_for_rsync", "")
		}
	}
}
