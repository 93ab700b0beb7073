package css

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel/config"
	"sentinel/fetch"
	"sentinel/logging"
	u "sentinel/url"
)

type fetcherFunc func(ctx context.Context, req fetch.Request) (*fetch.Response, error)

func (f fetcherFunc) Do(ctx context.Context, req fetch.Request) (*fetch.Response, error) {
	return f(ctx, req)
}

func noFetch(t *testing.T) fetch.Fetcher {
	return fetcherFunc(func(ctx context.Context, req fetch.Request) (*fetch.Response, error) {
		t.Errorf("unexpected fetch of %s", req.URL)
		return nil, errors.New("unexpected")
	})
}

func newResolver(f fetch.Fetcher) *Resolver {
	return NewResolver(f, config.NetworkConfig{}, logging.NewNop())
}

func mustURL(t *testing.T, raw string) *u.URL {
	parsed, err := u.NewURL(raw)
	require.NoError(t, err)
	return parsed
}

func TestResolveInlineStyle(t *testing.T) {
	doc := `<html><head><style>body{background-color:#111;display:none}</style></head></html>`
	table := newResolver(noFetch(t)).Resolve(context.Background(), doc, mustURL(t, "https://a.com/"))

	decls := table.Lookup("body")
	require.NotNil(t, decls)
	assert.Equal(t, "#111", decls["background-color"])
	_, hasDisplay := decls["display"]
	assert.False(t, hasDisplay, "display:none must never be stored")
}

func TestResolveLinkedSheet(t *testing.T) {
	doc := `<link rel="stylesheet" href="/site.css">`
	f := fetcherFunc(func(ctx context.Context, req fetch.Request) (*fetch.Response, error) {
		assert.Equal(t, "https://a.com/site.css", req.URL)
		return &fetch.Response{Status: 200, Body: []byte("h1{color:teal}")}, nil
	})
	table := newResolver(f).Resolve(context.Background(), doc, mustURL(t, "https://a.com/page"))
	require.NotNil(t, table.Lookup("h1"))
	assert.Equal(t, "teal", table.Lookup("h1")["color"])
}

func TestResolveFailedSheetIgnored(t *testing.T) {
	doc := `<style>p{color:red}</style><link rel="stylesheet" href="https://dead.example/x.css">`
	f := fetcherFunc(func(ctx context.Context, req fetch.Request) (*fetch.Response, error) {
		return nil, errors.New("timeout")
	})
	table := newResolver(f).Resolve(context.Background(), doc, mustURL(t, "https://a.com/"))
	assert.Equal(t, "red", table.Lookup("p")["color"])
}

func TestResolveNonSuccessSheetIgnored(t *testing.T) {
	doc := `<link rel="stylesheet" href="/gone.css">`
	f := fetcherFunc(func(ctx context.Context, req fetch.Request) (*fetch.Response, error) {
		return &fetch.Response{Status: 404, Body: []byte("h1{color:red}")}, nil
	})
	table := newResolver(f).Resolve(context.Background(), doc, mustURL(t, "https://a.com/"))
	assert.Empty(t, table)
}

func TestResolveLastRuleWins(t *testing.T) {
	doc := `<style>p{color:red;padding:2px}p{color:blue}</style>`
	table := newResolver(noFetch(t)).Resolve(context.Background(), doc, mustURL(t, "https://a.com/"))
	decls := table.Lookup("p")
	assert.Equal(t, "blue", decls["color"])
	_, hasPadding := decls["padding"]
	assert.False(t, hasPadding, "later rule replaces the earlier one wholesale")
}

func TestResolveUnsupportedPropertiesDropped(t *testing.T) {
	doc := `<style>p{position:absolute;color:black;z-index:999}</style>`
	table := newResolver(noFetch(t)).Resolve(context.Background(), doc, mustURL(t, "https://a.com/"))
	decls := table.Lookup("p")
	assert.Equal(t, Declarations{"color": "black"}, decls)
}

func TestResolveSchemeRelativeLink(t *testing.T) {
	doc := `<link rel="stylesheet" href="//cdn.a.com/x.css">`
	f := fetcherFunc(func(ctx context.Context, req fetch.Request) (*fetch.Response, error) {
		assert.Equal(t, "https://cdn.a.com/x.css", req.URL)
		return &fetch.Response{Status: 200, Body: []byte("b{font-weight:bold}")}, nil
	})
	table := newResolver(f).Resolve(context.Background(), doc, mustURL(t, "https://a.com/"))
	assert.Equal(t, "bold", table.Lookup("b")["font-weight"])
}
