package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"rentai/catalog"
	"rentai/models"
	"rentai/services"
	"rentai/storage"
	"rentai/utils"
)

type page int

const (
	pageLanding page = iota
	pageExplore
)

// App switches between the landing and explore pages.
type App struct {
	landing LandingModel
	explore ExploreModel
	page    page
}

// NewApp creates the app on the landing page with the search box focused.
func NewApp(ctx context.Context, cycler *services.Cycler, search services.SearchBackend, explore ExploreModel) App {
	landing := NewLandingModel(ctx, cycler, search)
	landing.Focus()
	return App{landing: landing, explore: explore, page: pageLanding}
}

func (a App) Init() tea.Cmd {
	return a.landing.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.explore, cmd = a.explore.Update(msg)
		return a, cmd

	case suggestionMsg:
		// keep listening whichever page is shown
		a.landing, cmd = a.landing.Update(msg)
		return a, cmd

	case searchResultMsg:
		a.landing, cmd = a.landing.Update(msg)
		if msg.err == nil {
			a.landing.Blur()
			a.explore.ShowResults(msg.listings)
			a.page = pageExplore
		}
		return a, cmd
	}

	switch a.page {
	case pageLanding:
		if key, ok := msg.(tea.KeyMsg); ok && !a.landing.Focused() {
			switch key.String() {
			case "q":
				return a, tea.Quit
			case "e":
				a.page = pageExplore
				return a, nil
			}
		}
		a.landing, cmd = a.landing.Update(msg)

	case pageExplore:
		if key, ok := msg.(tea.KeyMsg); ok && !a.explore.Editing() {
			switch key.String() {
			case "q":
				return a, tea.Quit
			case "esc", "b":
				a.page = pageLanding
				return a, a.landing.Focus()
			}
		}
		a.explore, cmd = a.explore.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	if a.page == pageExplore {
		return a.explore.View()
	}
	return a.landing.View()
}

// Run starts the terminal client and blocks until the user quits or ctx is
// cancelled. The cycler runs for the lifetime of the program.
func Run(ctx context.Context, store storage.CatalogReader, search services.SearchBackend, cycler *services.Cycler, logger *utils.Logger) error {
	listings, err := store.Listings(ctx)
	if err != nil {
		return fmt.Errorf("tui: load listings: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go cycler.Run(ctx)

	logger.Debug("[tui] Starting with %d listings, %d rental suggestions", len(listings), len(catalog.Suggestions(models.TabRental)))
	p := tea.NewProgram(NewApp(ctx, cycler, search, NewExploreModel(listings)), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
