package services

import (
	"context"
	"sync"
	"time"

	"rentai/models"
)

// DefaultSuggestionInterval is how long each search suggestion stays up.
const DefaultSuggestionInterval = 3 * time.Second

// CyclerState is the state of a Cycler.
type CyclerState int

const (
	CyclerIdle CyclerState = iota
	CyclerCycling
)

func (s CyclerState) String() string {
	if s == CyclerCycling {
		return "cycling"
	}
	return "idle"
}

// Cycler rotates the placeholder suggestion of a search box. It cycles only
// while the box has focus and the input is empty.
//
// The index is not reset on a tab switch; it is wrapped against the new
// tab's suggestion count on the next advance.
type Cycler struct {
	interval    time.Duration
	suggestions func(models.StayTab) []string

	mu      sync.Mutex
	tab     models.StayTab
	index   int
	focused bool
	input   string

	changed chan struct{}
	updates chan int
}

// NewCycler creates an idle Cycler on the rental tab.
func NewCycler(interval time.Duration, suggestions func(models.StayTab) []string) *Cycler {
	if interval <= 0 {
		interval = DefaultSuggestionInterval
	}
	return &Cycler{
		interval:    interval,
		suggestions: suggestions,
		tab:         models.TabRental,
		changed:     make(chan struct{}, 1),
		updates:     make(chan int, 1),
	}
}

// Focus marks the search box as focused.
func (c *Cycler) Focus() {
	c.mu.Lock()
	c.focused = true
	c.mu.Unlock()
	c.notify()
}

// Blur marks the search box as unfocused, stopping the rotation.
func (c *Cycler) Blur() {
	c.mu.Lock()
	c.focused = false
	c.mu.Unlock()
	c.notify()
}

// SetInput records the current search text. Non-empty text stops the
// rotation; clearing it while focused resumes it.
func (c *Cycler) SetInput(s string) {
	c.mu.Lock()
	same := c.input == s
	c.input = s
	c.mu.Unlock()
	if !same {
		c.notify()
	}
}

// SetTab switches the active suggestion list.
func (c *Cycler) SetTab(tab models.StayTab) {
	c.mu.Lock()
	same := c.tab == tab
	c.tab = tab
	c.mu.Unlock()
	if !same {
		c.notify()
	}
}

// State reports whether the cycler is currently rotating.
func (c *Cycler) State() CyclerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Cycler) stateLocked() CyclerState {
	if c.focused && c.input == "" {
		return CyclerCycling
	}
	return CyclerIdle
}

// Tick advances the index by one, modulo the active list length, if the
// cycler is cycling. It reports whether the index moved.
func (c *Cycler) Tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stateLocked() != CyclerCycling {
		return false
	}
	k := len(c.suggestions(c.tab))
	if k == 0 {
		return false
	}
	c.index = (c.index + 1) % k
	return true
}

// Index returns the raw suggestion index.
func (c *Cycler) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Current returns the suggestion on display, or "" if the tab has none.
func (c *Cycler) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	list := c.suggestions(c.tab)
	if len(list) == 0 {
		return ""
	}
	return list[c.index%len(list)]
}

// Updates delivers the new index after each timed advance. Slow readers miss
// intermediate values.
func (c *Cycler) Updates() <-chan int {
	return c.updates
}

// Run drives the rotation until ctx is done. The interval restarts whenever
// focus, input or tab changes, and no timer runs while idle.
func (c *Cycler) Run(ctx context.Context) {
	var ticker *time.Ticker
	var tickC <-chan time.Time

	reset := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, tickC = nil, nil
		}
		if c.State() == CyclerCycling {
			ticker = time.NewTicker(c.interval)
			tickC = ticker.C
		}
	}
	reset()
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.changed:
			reset()
		case <-tickC:
			if c.Tick() {
				c.publish(c.Index())
			}
		}
	}
}

func (c *Cycler) notify() {
	select {
	case c.changed <- struct{}{}:
	default:
	}
}

func (c *Cycler) publish(index int) {
	select {
	case c.updates <- index:
	default:
		// drop the stale value and keep the latest
		select {
		case <-c.updates:
		default:
		}
		select {
		case c.updates <- index:
		default:
		}
	}
}
