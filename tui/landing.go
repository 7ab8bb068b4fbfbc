package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rentai/catalog"
	"rentai/models"
	"rentai/services"
)

const searchComingSoon = "AI-powered search is coming soon. Press esc then e to browse all listings."

// suggestionMsg carries a new cycler index.
type suggestionMsg int

// searchResultMsg is the outcome of a submitted landing query.
type searchResultMsg struct {
	query    string
	listings []models.Listing
	err      error
}

// waitForSuggestion blocks until the cycler advances.
func waitForSuggestion(c *services.Cycler) tea.Cmd {
	return func() tea.Msg {
		return suggestionMsg(<-c.Updates())
	}
}

func runSearch(ctx context.Context, backend services.SearchBackend, req services.SearchRequest) tea.Cmd {
	return func() tea.Msg {
		listings, err := backend.Search(ctx, req)
		return searchResultMsg{query: req.Query, listings: listings, err: err}
	}
}

// LandingModel is the landing search box with stay tabs. The placeholder
// rotates through the active tab's suggestions while the box is focused
// and empty.
type LandingModel struct {
	ctx    context.Context
	input  textinput.Model
	cycler *services.Cycler
	search services.SearchBackend
	tab    models.StayTab
	notice string
	styles Styles
}

// NewLandingModel creates an unfocused landing page on the rental tab.
func NewLandingModel(ctx context.Context, cycler *services.Cycler, search services.SearchBackend) LandingModel {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 200
	ti.Width = 60

	cycler.SetTab(models.TabRental)
	ti.Placeholder = cycler.Current()

	return LandingModel{
		ctx:    ctx,
		input:  ti,
		cycler: cycler,
		search: search,
		tab:    models.TabRental,
		styles: DefaultStyles(),
	}
}

func (m LandingModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForSuggestion(m.cycler))
}

// Focus gives the search box focus, which starts the rotation when empty.
func (m *LandingModel) Focus() tea.Cmd {
	m.cycler.Focus()
	return m.input.Focus()
}

// Blur removes focus and stops the rotation.
func (m *LandingModel) Blur() {
	m.cycler.Blur()
	m.input.Blur()
}

func (m LandingModel) Focused() bool { return m.input.Focused() }

func (m LandingModel) Tab() models.StayTab { return m.tab }

func (m LandingModel) Notice() string { return m.notice }

func (m LandingModel) Placeholder() string { return m.input.Placeholder }

func (m *LandingModel) switchTab() {
	if m.tab == models.TabRental {
		m.tab = models.TabShortlet
	} else {
		m.tab = models.TabRental
	}
	m.cycler.SetTab(m.tab)
	m.input.Placeholder = m.cycler.Current()
}

func (m LandingModel) Update(msg tea.Msg) (LandingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case suggestionMsg:
		m.input.Placeholder = m.cycler.Current()
		return m, waitForSuggestion(m.cycler)

	case searchResultMsg:
		switch {
		case errors.Is(msg.err, services.ErrSearchUnavailable):
			m.notice = searchComingSoon
		case msg.err != nil:
			m.notice = "Search failed: " + msg.err.Error()
		default:
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyTab:
			m.switchTab()
			return m, nil
		case tea.KeyEsc:
			m.Blur()
			return m, nil
		case tea.KeyEnter:
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				return m, nil
			}
			return m, runSearch(m.ctx, m.search, services.SearchRequest{Query: q, Tab: m.tab})
		}
		if !m.input.Focused() {
			if msg.String() == "/" {
				return m, m.Focus()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.cycler.SetInput(m.input.Value())
	return m, cmd
}

func (m LandingModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("RentAI · Find your next home in Lagos"))
	b.WriteString("\n")

	tabs := make([]string, 0, 2)
	for _, t := range []models.StayTab{models.TabRental, models.TabShortlet} {
		label := "Long-term Rental"
		if t == models.TabShortlet {
			label = "Short-let"
		}
		if t == m.tab {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, s := range catalog.QuickStats(m.tab) {
		b.WriteString(m.styles.Price.Render(s.Count))
		b.WriteString(" ")
		b.WriteString(m.styles.Muted.Render(s.Title))
		b.WriteString("   ")
	}
	b.WriteString("\n")

	help := "tab: switch rental/short-let · enter: search · esc: leave box · ctrl+c: quit"
	if !m.input.Focused() {
		help = "/: search · e: explore · tab: switch rental/short-let · q: quit"
	}
	b.WriteString(m.styles.Help.Render(help))
	return b.String()
}
