// Package tools holds operational helpers that run against a live site:
// a link checker and a page snapshotter.
package tools

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"

	"rentai/config"
	"rentai/utils"
)

const (
	userAgent     = "rentai-linkcheck/1.0"
	crawlMaxDepth = 4
	crawlTimeout  = 30 * time.Second
)

// BrokenLink is a same-site link that did not answer with a 2xx status.
type BrokenLink struct {
	URL     string `json:"url"`
	Referer string `json:"referer"`
	Status  int    `json:"status"`
	Err     string `json:"error"`
}

// CrawlReport lists every page reached and every broken link found.
type CrawlReport struct {
	Visited []string     `json:"visited"`
	Broken  []BrokenLink `json:"broken"`
}

// Crawler walks every same-site link reachable from the base URL.
type Crawler struct {
	base        *url.URL
	logger      *utils.Logger
	parallelism int
	delay       time.Duration
}

// NewCrawler creates a crawler rooted at cfg.BaseURL.
func NewCrawler(cfg *config.Config, logger *utils.Logger) (*Crawler, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("crawler: invalid base url %q", cfg.BaseURL)
	}
	if base.Path == "" {
		base.Path = "/"
	}
	parallelism := cfg.MaxConcurrency
	if parallelism < 1 {
		parallelism = 1
	}
	return &Crawler{base: base, logger: logger, parallelism: parallelism, delay: cfg.RateLimit()}, nil
}

// Crawl visits the site and reports what it found. Results are sorted by URL.
func (cr *Crawler) Crawl(ctx context.Context) (*CrawlReport, error) {
	visited := utils.NewURLSet()

	var mu sync.Mutex
	referers := make(map[string]string)
	var broken []BrokenLink

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.MaxDepth(crawlMaxDepth),
		colly.Async(true),
	)
	c.SetRequestTimeout(crawlTimeout)
	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: cr.parallelism,
		Delay:       cr.delay,
	}); err != nil {
		return nil, fmt.Errorf("crawler: %w", err)
	}

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		cr.logger.Debug("[crawl] Visiting %s", r.URL)
	})

	c.OnResponse(func(r *colly.Response) {
		visited.Add(r.Request.URL.String())
	})

	c.OnError(func(r *colly.Response, err error) {
		u := r.Request.URL.String()
		mu.Lock()
		broken = append(broken, BrokenLink{URL: u, Referer: referers[u], Status: r.StatusCode, Err: err.Error()})
		mu.Unlock()
		cr.logger.Warn("[crawl] Broken link %s (status %d): %v", u, r.StatusCode, err)
	})

	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		link := e.Request.AbsoluteURL(e.Attr("href"))
		if !cr.sameSite(link) {
			return
		}
		mu.Lock()
		if _, seen := referers[link]; !seen {
			referers[link] = e.Request.URL.String()
		}
		mu.Unlock()
		_ = e.Request.Visit(link)
	})

	start := cr.base.String()
	cr.logger.Info("[crawl] Starting at %s", start)
	if err := c.Visit(start); err != nil {
		return nil, fmt.Errorf("crawler: visit %s: %w", start, err)
	}
	c.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("crawler: %w", err)
	}

	sort.Slice(broken, func(i, j int) bool { return broken[i].URL < broken[j].URL })
	report := &CrawlReport{Visited: visited.Sorted(), Broken: broken}
	cr.logger.Info("[crawl] Done: %d pages, %d broken links", len(report.Visited), len(report.Broken))
	return report, nil
}

func (cr *Crawler) sameSite(link string) bool {
	if link == "" {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	if !strings.HasPrefix(u.Scheme, "http") {
		return false
	}
	return u.Host == cr.base.Host
}
