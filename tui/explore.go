package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rentai/catalog"
	"rentai/models"
	"rentai/services"
)

// ExploreModel browses the listing catalog as cards with the filter pills.
// Search text can be typed but does not narrow the cards.
type ExploreModel struct {
	all     []models.Listing
	results []models.Listing
	filters []catalog.Option
	active  int

	query        textinput.Model
	queryFocused bool

	width  int
	styles Styles
}

// NewExploreModel creates a browser over listings with the "all" filter.
func NewExploreModel(listings []models.Listing) ExploreModel {
	qi := textinput.New()
	qi.Prompt = "search: "
	qi.Placeholder = "Search by location, property type..."
	qi.CharLimit = 100
	qi.Width = 40

	return ExploreModel{
		all:     listings,
		filters: catalog.ListingFilters(),
		query:   qi,
		styles:  DefaultStyles(),
	}
}

// Filter returns the active filter selector.
func (m ExploreModel) Filter() string {
	return m.filters[m.active].ID
}

// Query returns the typed search text.
func (m ExploreModel) Query() string {
	return m.query.Value()
}

// Editing reports whether keys go to the search box.
func (m ExploreModel) Editing() bool {
	return m.queryFocused
}

// Visible returns the cards on screen: search results if any were handed
// over, otherwise the catalog through the active filter.
func (m ExploreModel) Visible() []models.Listing {
	if m.results != nil {
		return m.results
	}
	return services.FilterListings(m.Filter(), m.all)
}

// ShowResults replaces the filtered view with search results until the
// filter is changed.
func (m *ExploreModel) ShowResults(listings []models.Listing) {
	m.results = listings
	if m.results == nil {
		m.results = []models.Listing{}
	}
}

func (m *ExploreModel) step(delta int) {
	n := len(m.filters)
	m.active = (m.active + delta + n) % n
	m.results = nil
}

func (m ExploreModel) Update(msg tea.Msg) (ExploreModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.queryFocused {
			switch msg.Type {
			case tea.KeyEsc, tea.KeyEnter:
				m.queryFocused = false
				m.query.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.query, cmd = m.query.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "right", "l", "tab":
			m.step(1)
		case "left", "h", "shift+tab":
			m.step(-1)
		case "/":
			m.queryFocused = true
			return m, m.query.Focus()
		}
	}
	return m, nil
}

func (m ExploreModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Explore Properties"))
	b.WriteString("\n")
	b.WriteString(m.query.View())
	b.WriteString("\n\n")

	pills := make([]string, len(m.filters))
	for i, f := range m.filters {
		if i == m.active && m.results == nil {
			pills[i] = m.styles.ActivePill.Render(f.Label)
		} else {
			pills[i] = m.styles.Pill.Render(f.Label)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, pills...))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d Available · %d Premium", len(m.all), services.CountPremium(m.all))))
	b.WriteString("\n\n")

	visible := m.Visible()
	if len(visible) == 0 {
		b.WriteString(m.styles.Muted.Render("No properties match this filter."))
	} else {
		b.WriteString(m.grid(visible))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("←/→: filter · /: search · esc: back · q: quit"))
	return b.String()
}

// grid lays cards out two per row on wide terminals.
func (m ExploreModel) grid(listings []models.Listing) string {
	cols := 1
	if m.width >= 2*(m.styles.Card.GetWidth()+2) {
		cols = 2
	}

	var rows []string
	for i := 0; i < len(listings); i += cols {
		end := min(i+cols, len(listings))
		cards := make([]string, 0, cols)
		for _, l := range listings[i:end] {
			cards = append(cards, renderCard(l, m.styles))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(l models.Listing, s Styles) string {
	var badges []string
	if l.IsPremium {
		badges = append(badges, s.PremiumBadge.Render("★ Premium"))
	}
	if l.IsNew {
		badges = append(badges, s.NewBadge.Render("New"))
	}

	lines := []string{
		s.CardTitle.Render(l.Title),
		s.Muted.Render(l.Location),
		s.Price.Render(services.FormatNaira(l.Price) + "/year"),
		fmt.Sprintf("%d beds · %s baths · %d sqft", l.Beds, services.FormatBaths(l.Baths), l.Sqft),
	}
	if len(badges) > 0 {
		lines = append(lines, strings.Join(badges, " "))
	}
	return s.Card.Render(strings.Join(lines, "\n"))
}
