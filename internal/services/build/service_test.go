package build

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbrahy/ebay-catalog/internal/catalog"
	"github.com/jbrahy/ebay-catalog/internal/domain"
)

type fakeSource struct {
	result  domain.FetchResult
	err     error
	refresh bool
	calls   int
}

func (f *fakeSource) FetchAll(_ context.Context, _ string, refresh bool) (domain.FetchResult, error) {
	f.calls++
	f.refresh = refresh
	return f.result, f.err
}

type fakeRenderer struct {
	calls int
	err   error
}

func (f *fakeRenderer) Render(dir string, _ domain.Catalog) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>"), 0o644); err != nil {
		return nil, err
	}
	return []string{"index.html"}, nil
}

type fakePublisher struct {
	calls int
	err   error
}

func (f *fakePublisher) Publish(_ domain.Catalog, _ domain.Renderer) error {
	f.calls++
	return f.err
}

type fakeDeployer struct {
	calls int
	dir   string
	err   error
}

func (f *fakeDeployer) Deploy(_ context.Context, dir string) error {
	f.calls++
	f.dir = dir
	return f.err
}

type pipeline struct {
	source    *fakeSource
	renderer  *fakeRenderer
	publisher *fakePublisher
	deployer  *fakeDeployer
	service   *Service
}

func newPipeline(items ...domain.Item) *pipeline {
	p := &pipeline{
		source:    &fakeSource{result: domain.FetchResult{Items: items}},
		renderer:  &fakeRenderer{},
		publisher: &fakePublisher{},
		deployer:  &fakeDeployer{},
	}
	p.service = New(
		p.source,
		catalog.NewBuilder(nil, nil),
		p.renderer,
		p.publisher,
		p.deployer,
		domain.Seller{Username: "someseller", DisplayName: "Some Seller"},
		"/var/www/catalog",
		log.New(io.Discard),
	)
	return p
}

func item(id string) domain.Item {
	return domain.Item{ID: id, Title: "Item " + id, Category: "Books",
		ListedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
}

func TestRun_FullPipeline(t *testing.T) {
	p := newPipeline(item("1"), item("2"))

	require.NoError(t, p.service.Run(context.Background(), Options{}))

	assert.Equal(t, 1, p.source.calls)
	assert.Equal(t, 1, p.publisher.calls)
	assert.Equal(t, 1, p.deployer.calls)
	assert.Equal(t, "/var/www/catalog", p.deployer.dir)
}

func TestRun_RefreshReachesSource(t *testing.T) {
	p := newPipeline(item("1"))
	require.NoError(t, p.service.Run(context.Background(), Options{Refresh: true}))
	assert.True(t, p.source.refresh)
}

func TestRun_FetchErrorStopsPipeline(t *testing.T) {
	p := newPipeline()
	p.source.err = errors.New("network down")

	err := p.service.Run(context.Background(), Options{})
	require.Error(t, err)
	assert.Zero(t, p.renderer.calls)
	assert.Zero(t, p.publisher.calls)
	assert.Zero(t, p.deployer.calls)
}

func TestRun_NoListingsIsCleanNoop(t *testing.T) {
	p := newPipeline()

	require.NoError(t, p.service.Run(context.Background(), Options{}))
	assert.Zero(t, p.publisher.calls, "empty seller must not wipe the live site")
	assert.Zero(t, p.deployer.calls)
}

func TestRun_DryRunNeverPublishes(t *testing.T) {
	p := newPipeline(item("1"))

	require.NoError(t, p.service.Run(context.Background(), Options{DryRun: true}))
	assert.Equal(t, 1, p.renderer.calls, "dry run still renders for validation")
	assert.Zero(t, p.publisher.calls)
	assert.Zero(t, p.deployer.calls)
}

func TestRun_DryRunSurfacesRenderError(t *testing.T) {
	p := newPipeline(item("1"))
	p.renderer.err = errors.New("bad template")

	err := p.service.Run(context.Background(), Options{DryRun: true})
	require.Error(t, err)
	assert.Zero(t, p.publisher.calls)
}

func TestRun_SkipDeploy(t *testing.T) {
	p := newPipeline(item("1"))

	require.NoError(t, p.service.Run(context.Background(), Options{SkipDeploy: true}))
	assert.Equal(t, 1, p.publisher.calls)
	assert.Zero(t, p.deployer.calls)
}

func TestRun_PublishErrorSkipsDeploy(t *testing.T) {
	p := newPipeline(item("1"))
	p.publisher.err = errors.New("swap failed")

	err := p.service.Run(context.Background(), Options{})
	require.Error(t, err)
	assert.Zero(t, p.deployer.calls)
}
