package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"rentai/catalog"
	"rentai/config"
	"rentai/utils"
)

const pageTimeout = 60 * time.Second

// Snapshot is the outcome of capturing one route.
type Snapshot struct {
	Route string
	File  string
	Title string
	Err   error
}

// Snapshotter captures full-page screenshots of site routes with headless
// Chrome.
type Snapshotter struct {
	cfg    *config.Config
	logger *utils.Logger
	pool   *utils.WorkerPool
	retry  *utils.RetryConfig
}

// NewSnapshotter creates a ready-to-use Snapshotter.
func NewSnapshotter(cfg *config.Config, logger *utils.Logger) *Snapshotter {
	return &Snapshotter{
		cfg:    cfg,
		logger: logger,
		pool:   utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimit()),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// SnapshotRoutes returns the landing page, every navigation target and the
// neighborhood map view.
func SnapshotRoutes() []string {
	routes := []string{"/"}
	for _, l := range catalog.NavLinks() {
		routes = append(routes, l.Href)
	}
	return append(routes, "/neighborhoods?view=map")
}

// Capture screenshots each route into cfg.SnapshotDir. Duplicate routes are
// captured once. Per-route failures are reported in the result and joined
// into the returned error; results keep the input order.
func (s *Snapshotter) Capture(ctx context.Context, routes []string) ([]Snapshot, error) {
	if err := os.MkdirAll(s.cfg.SnapshotDir, 0755); err != nil {
		return nil, fmt.Errorf("snapshot: create output dir: %w", err)
	}

	chromeBin := findChromeBinary(s.cfg.ChromeBin)
	s.logger.Info("[snapshot] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.WindowSize(1366, 900),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	// start the browser once so tabs can share it
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("snapshot: start browser: %w", err)
	}

	seen := utils.NewURLSet()
	var results []Snapshot
	for _, route := range routes {
		if seen.Add(route) {
			results = append(results, Snapshot{Route: route, File: filepath.Join(s.cfg.SnapshotDir, snapshotFileName(route))})
		}
	}

	// each job owns exactly one element of results
	for i := range results {
		shot := &results[i]
		s.pool.Submit(func() {
			shot.Title, shot.Err = s.capture(ctx, browserCtx, s.pageURL(shot.Route), shot.File)
			if shot.Err != nil {
				s.logger.Warn("[snapshot] %s failed: %v", shot.Route, shot.Err)
				return
			}
			s.logger.Debug("[snapshot] %s -> %s", shot.Route, shot.File)
		})
	}
	s.pool.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Route, r.Err))
		}
	}
	s.logger.Info("[snapshot] Captured %d of %d routes", len(results)-len(errs), len(results))
	return results, errors.Join(errs...)
}

func (s *Snapshotter) capture(ctx, browserCtx context.Context, pageURL, file string) (string, error) {
	var title string
	err := s.retry.Do(ctx, "snapshot "+pageURL, func() error {
		tabCtx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, pageTimeout)
		defer cancelTimeout()

		var buf []byte
		if err := chromedp.Run(tabCtx,
			chromedp.Navigate(pageURL),
			chromedp.WaitVisible("main", chromedp.ByQuery),
			chromedp.Title(&title),
			chromedp.FullScreenshot(&buf, 90),
		); err != nil {
			return err
		}
		return os.WriteFile(file, buf, 0644)
	})
	return title, err
}

func (s *Snapshotter) pageURL(route string) string {
	return strings.TrimRight(s.cfg.BaseURL, "/") + route
}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9]+`)

// snapshotFileName maps a route to a file name: "/" -> "home.png",
// "/neighborhoods?view=map" -> "neighborhoods-view-map.png".
func snapshotFileName(route string) string {
	name := unsafeFileChars.ReplaceAllString(strings.ToLower(route), "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "home"
	}
	return name + ".png"
}

// findChromeBinary locates a Chrome/Chromium binary. A configured path wins.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
