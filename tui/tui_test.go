package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentai/catalog"
	"rentai/models"
	"rentai/services"
	"rentai/utils"
)

type fixedSearch struct {
	listings []models.Listing
	err      error
}

func (f fixedSearch) Search(ctx context.Context, req services.SearchRequest) ([]models.Listing, error) {
	return f.listings, f.err
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newApp(t *testing.T, search services.SearchBackend) (App, *services.Cycler) {
	t.Helper()
	if search == nil {
		search = services.NewUnavailableSearch(utils.NewNopLogger())
	}
	cycler := services.NewCycler(time.Hour, catalog.Suggestions)
	return NewApp(context.Background(), cycler, search, NewExploreModel(catalog.Listings())), cycler
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	next, ok := m.(App)
	require.True(t, ok)
	return next, cmd
}

func TestLandingRotatesPlaceholder(t *testing.T) {
	app, cycler := newApp(t, nil)
	rental := catalog.Suggestions(models.TabRental)

	require.Equal(t, services.CyclerCycling, cycler.State())
	assert.Equal(t, rental[0], app.landing.Placeholder())

	require.True(t, cycler.Tick())
	app, cmd := update(t, app, suggestionMsg(cycler.Index()))
	assert.NotNil(t, cmd, "must keep waiting for the next suggestion")
	assert.Equal(t, rental[1], app.landing.Placeholder())
}

func TestLandingTypingStopsRotation(t *testing.T) {
	app, cycler := newApp(t, nil)

	app, _ = update(t, app, keyRunes("v"))
	assert.Equal(t, services.CyclerIdle, cycler.State())
	assert.False(t, cycler.Tick())

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, services.CyclerCycling, cycler.State())
	_ = app
}

func TestLandingTabSwitchKeepsIndex(t *testing.T) {
	app, cycler := newApp(t, nil)
	cycler.Tick()
	cycler.Tick()

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, models.TabShortlet, app.landing.Tab())
	assert.Equal(t, 2, cycler.Index())
	assert.Equal(t, catalog.Suggestions(models.TabShortlet)[2], app.landing.Placeholder())
	assert.Contains(t, app.View(), "Short-let")
}

func TestLandingSearchShowsNotice(t *testing.T) {
	app, _ := newApp(t, nil)

	app, _ = update(t, app, keyRunes("villa with pool"))
	app, cmd := update(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	res, ok := msg.(searchResultMsg)
	require.True(t, ok)
	assert.ErrorIs(t, res.err, services.ErrSearchUnavailable)

	app, _ = update(t, app, msg)
	assert.Equal(t, pageLanding, app.page)
	assert.Equal(t, searchComingSoon, app.landing.Notice())
}

func TestLandingEmptyEnterDoesNothing(t *testing.T) {
	app, _ := newApp(t, nil)
	_, cmd := update(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestLandingBackendErrorNotice(t *testing.T) {
	app, _ := newApp(t, fixedSearch{err: errors.New("boom")})
	app, _ = update(t, app, searchResultMsg{query: "x", err: errors.New("boom")})
	assert.Equal(t, "Search failed: boom", app.landing.Notice())
	assert.Equal(t, pageLanding, app.page)
}

func TestSearchResultsOpenExplore(t *testing.T) {
	hit := models.Listing{ID: "2", Title: "Modern Villa with Pool"}
	app, cycler := newApp(t, fixedSearch{listings: []models.Listing{hit}})

	app, _ = update(t, app, searchResultMsg{query: "pool", listings: []models.Listing{hit}})
	assert.Equal(t, pageExplore, app.page)
	assert.Equal(t, services.CyclerIdle, cycler.State())
	assert.Equal(t, []models.Listing{hit}, app.explore.Visible())

	// changing the filter leaves the results view
	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyRight})
	assert.Len(t, app.explore.Visible(), 2)
}

func TestNavigateBetweenPages(t *testing.T) {
	app, cycler := newApp(t, nil)

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, services.CyclerIdle, cycler.State())

	app, _ = update(t, app, keyRunes("e"))
	require.Equal(t, pageExplore, app.page)
	assert.Contains(t, app.View(), "Explore Properties")

	app, _ = update(t, app, keyRunes("b"))
	assert.Equal(t, pageLanding, app.page)
	assert.Equal(t, services.CyclerCycling, cycler.State())

	_, cmd := update(t, app, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestExploreFilterCycling(t *testing.T) {
	m := NewExploreModel(catalog.Listings())
	ids := func() []string {
		var out []string
		for _, l := range m.Visible() {
			out = append(out, l.ID)
		}
		return out
	}

	want := [][]string{
		{"1", "2", "3", "4"},
		{"1", "3"},
		{"2"},
		{"4"},
		{"1", "4"},
		{"1", "2", "3", "4"},
	}
	for i, w := range want {
		assert.Equal(t, w, ids(), "step %d (%s)", i, m.Filter())
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "all", m.Filter())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "premium", m.Filter())
}

func TestExploreSearchTextDoesNotFilter(t *testing.T) {
	m := NewExploreModel(catalog.Listings())
	m, _ = m.Update(keyRunes("/"))
	require.True(t, m.Editing())

	m, _ = m.Update(keyRunes("studio"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Editing())
	assert.Equal(t, "studio", m.Query())
	assert.Len(t, m.Visible(), 4)
}

func TestExploreViewCards(t *testing.T) {
	m := NewExploreModel(catalog.Listings())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})

	view := m.View()
	assert.Contains(t, view, "Cozy Studio Apartment")
	assert.Contains(t, view, "₦15,000,000/year")
	assert.Contains(t, view, "4 Available · 2 Premium")
	assert.False(t, strings.Contains(view, "Waterfront Duplex"))

	empty := NewExploreModel(nil)
	assert.Contains(t, empty.View(), "No properties match this filter.")
}
