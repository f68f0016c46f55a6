package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbrahy/ebay-catalog/internal/domain"
)

const minimalYAML = `
seller:
  username: someseller
build:
  output_dir: output
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MinimalWithDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "someseller", cfg.Seller.Username)
	assert.Equal(t, "PRODUCTION", cfg.Ebay.Environment)
	assert.Equal(t, "EBAY_US", cfg.Ebay.Marketplace)
	assert.Equal(t, 24, cfg.Site.ItemsPerPage)
	assert.Equal(t, 15, cfg.Build.CacheTTLMinutes)
	assert.Equal(t, 200, cfg.Build.PageSize)
	assert.Equal(t, "none", cfg.Deploy.Method)
	assert.True(t, cfg.Site.ShowPrice)
}

func TestLoad_FullDocument(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
ebay:
  app_id: my-app
  cert_id: my-cert
  environment: SANDBOX
  marketplace: EBAY_GB
seller:
  username: someseller
  display_name: Some Seller
  tagline: Quality finds
site:
  base_url: https://shop.example.com
  items_per_page: 12
  affiliate_campaign_id: "5338012345"
categories:
  custom_order: [Electronics, Books]
  hidden: [Other]
build:
  output_dir: /var/www/catalog
  cache_ttl_minutes: 30
deploy:
  method: s3
  s3_bucket: shop-bucket
  cloudfront_distribution_id: E123ABC
`))
	require.NoError(t, err)

	assert.Equal(t, "SANDBOX", cfg.Ebay.Environment)
	assert.Equal(t, []string{"Electronics", "Books"}, cfg.Categories.CustomOrder)
	assert.Equal(t, []string{"Other"}, cfg.Categories.Hidden)
	assert.Equal(t, "shop-bucket", cfg.Deploy.S3Bucket)
	assert.Equal(t, 12, cfg.Site.ItemsPerPage)
	require.NoError(t, cfg.RequireCredentials())
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestLoad_MissingSellerFails(t *testing.T) {
	_, err := Load(writeConfig(t, `
build:
  output_dir: output
`))
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	_, err := Load(writeConfig(t, minimalYAML+`
sellr:
  username: typo
`))
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestLoad_BadEnvironmentRejected(t *testing.T) {
	_, err := Load(writeConfig(t, `
ebay:
  environment: STAGING
seller:
  username: someseller
build:
  output_dir: output
`))
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestLoad_EnvOverridesCredentials(t *testing.T) {
	t.Setenv("EBAY_APP_ID", "env-app")
	t.Setenv("EBAY_CERT_ID", "env-cert")

	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "env-app", cfg.Ebay.AppID)
	assert.Equal(t, "env-cert", cfg.Ebay.CertID)
	assert.NoError(t, cfg.RequireCredentials())
}

func TestLoad_DeployCrossFieldRules(t *testing.T) {
	_, err := Load(writeConfig(t, minimalYAML+`
deploy:
  method: s3
`))
	assert.ErrorIs(t, err, domain.ErrConfig, "s3 without bucket")

	_, err = Load(writeConfig(t, minimalYAML+`
deploy:
  method: rsync
`))
	assert.ErrorIs(t, err, domain.ErrConfig, "rsync without target")

	_, err = Load(writeConfig(t, minimalYAML+`
deploy:
  method: rsync
  rsync_target: deploy@host:/var/www/catalog
`))
	assert.NoError(t, err)
}

func TestRequireCredentials(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	err = cfg.RequireCredentials()
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestSellerInfo_DisplayNameFallback(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	info := cfg.SellerInfo()
	assert.Equal(t, "someseller", info.Username)
	assert.Equal(t, "someseller", info.DisplayName, "display name falls back to username")
}
