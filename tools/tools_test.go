package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentai/config"
	"rentai/services"
	"rentai/storage"
	"rentai/utils"
	"rentai/web"
)

func testConfig(baseURL string) *config.Config {
	cfg := config.Default()
	cfg.BaseURL = baseURL
	cfg.RateLimitMs = 0
	return cfg
}

func TestCrawlerReportsBrokenLinks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, `<html><body>
				<a href="/a">a</a>
				<a href="/missing">missing</a>
				<a href="https://elsewhere.example/x">external</a>
				<a href="mailto:hello@example.com">mail</a>
			</body></html>`)
		case "/a":
			fmt.Fprint(w, `<html><body><a href="/">home</a><a href="/a#top">self</a></body></html>`)
		default:
			http.NotFound(w, r)
		}
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c, err := NewCrawler(testConfig(ts.URL), utils.NewNopLogger())
	require.NoError(t, err)

	report, err := c.Crawl(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{ts.URL + "/", ts.URL + "/a"}, report.Visited)
	require.Len(t, report.Broken, 1)
	assert.Equal(t, ts.URL+"/missing", report.Broken[0].URL)
	assert.Equal(t, http.StatusNotFound, report.Broken[0].Status)
	assert.Equal(t, ts.URL+"/", report.Broken[0].Referer)
}

func TestCrawlerAgainstSite(t *testing.T) {
	logger := utils.NewNopLogger()
	srv, err := web.NewServer(config.Default(), storage.NewMemoryStore(), services.NewUnavailableSearch(logger), logger)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	c, err := NewCrawler(testConfig(ts.URL), logger)
	require.NoError(t, err)
	report, err := c.Crawl(context.Background())
	require.NoError(t, err)

	for _, route := range []string{"/", "/explore", "/neighborhoods", "/properties", "/saved"} {
		assert.Contains(t, report.Visited, ts.URL+route)
	}
	for _, b := range report.Broken {
		path := strings.TrimPrefix(b.URL, ts.URL)
		assert.NotContains(t, []string{"/explore", "/neighborhoods", "/properties", "/saved"}, path)
	}
	// footer pages have no handlers yet
	assert.NotEmpty(t, report.Broken)
}

func TestCrawlerCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a href="/next">next</a>`)
	}))
	defer ts.Close()

	c, err := NewCrawler(testConfig(ts.URL), utils.NewNopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Crawl(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewCrawlerRejectsBadBaseURL(t *testing.T) {
	_, err := NewCrawler(testConfig("not a url"), utils.NewNopLogger())
	assert.Error(t, err)
}

func TestSnapshotFileName(t *testing.T) {
	tests := []struct {
		route string
		want  string
	}{
		{"/", "home.png"},
		{"/explore", "explore.png"},
		{"/neighborhoods?view=map", "neighborhoods-view-map.png"},
		{"/explore?type=luxury-villas", "explore-type-luxury-villas.png"},
		{"/Saved/", "saved.png"},
	}
	for _, tt := range tests {
		if got := snapshotFileName(tt.route); got != tt.want {
			t.Errorf("snapshotFileName(%q) = %q, want %q", tt.route, got, tt.want)
		}
	}
}

func TestSnapshotRoutes(t *testing.T) {
	routes := SnapshotRoutes()
	assert.Equal(t, "/", routes[0])
	assert.Contains(t, routes, "/explore")
	assert.Contains(t, routes, "/saved")
	assert.Equal(t, "/neighborhoods?view=map", routes[len(routes)-1])
}

func TestFindChromeBinaryPrefersConfigured(t *testing.T) {
	assert.Equal(t, "/opt/custom/chrome", findChromeBinary("/opt/custom/chrome"))
}

func TestSnapshotPageURL(t *testing.T) {
	s := NewSnapshotter(testConfig("http://localhost:8080/"), utils.NewNopLogger())
	assert.Equal(t, "http://localhost:8080/explore", s.pageURL("/explore"))
}
