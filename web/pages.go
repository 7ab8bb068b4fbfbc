package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"rentai/catalog"
	"rentai/models"
	"rentai/services"
	"rentai/storage"
	"rentai/utils"
)

const (
	viewList = "list"
	viewMap  = "map"
)

const searchComingSoon = "AI-powered search is coming soon. Meanwhile, browse all listings on the explore page."

// page carries what every rendered page shares.
type page struct {
	Title  string
	Nav    []models.Link
	Footer []models.LinkSection
}

func newPage(title string) page {
	return page{Title: title, Nav: catalog.NavLinks(), Footer: catalog.FooterSections()}
}

type landingPage struct {
	page
	Tab         models.StayTab
	Tabs        []models.StayTab
	Suggestions []string
	Placeholder string
	QuickStats  []models.QuickStat
	Query       string
	Notice      string
}

type explorePage struct {
	page
	Filters   []catalog.Option
	Active    string
	Query     string
	Listings  []models.Listing
	Available int
	Premium   int
}

type neighborhoodsPage struct {
	page
	PriceRanges   []catalog.Option
	Amenities     []string
	Price         string
	Amenity       string
	View          string
	Neighborhoods []models.Neighborhood
}

type propertiesPage struct {
	page
	Types []models.PropertyType
}

type savedPage struct {
	page
	Session string
	Saved   []models.SavedListing
}

// PageController serves the HTML pages.
type PageController struct {
	store    storage.CatalogReader
	sessions *SessionStore
	search   services.SearchBackend
	logger   *utils.Logger
}

// NewPageController creates a PageController.
func NewPageController(store storage.CatalogReader, sessions *SessionStore, search services.SearchBackend, logger *utils.Logger) *PageController {
	return &PageController{store: store, sessions: sessions, search: search, logger: logger}
}

// Register registers the page routes.
func (ctrl *PageController) Register(e *echo.Echo) {
	e.GET("/", ctrl.Landing)
	e.POST("/search", ctrl.Search)
	e.GET("/explore", ctrl.Explore)
	e.GET("/neighborhoods", ctrl.Neighborhoods)
	e.GET("/properties", ctrl.PropertyTypes)
	e.GET("/saved", ctrl.Saved)
	e.POST("/saved/:session/remove/:id", ctrl.RemoveSaved)
}

func (ctrl *PageController) landing(tab models.StayTab, query, notice string) landingPage {
	suggestions := catalog.Suggestions(tab)
	return landingPage{
		page:        newPage("Home"),
		Tab:         tab,
		Tabs:        []models.StayTab{models.TabRental, models.TabShortlet},
		Suggestions: suggestions,
		Placeholder: suggestions[0],
		QuickStats:  catalog.QuickStats(tab),
		Query:       query,
		Notice:      notice,
	}
}

// Landing renders the home page for the selected stay tab.
func (ctrl *PageController) Landing(c echo.Context) error {
	tab := catalog.ParseTab(c.QueryParam("tab"))
	return c.Render(http.StatusOK, "landing", ctrl.landing(tab, "", ""))
}

// Search hands the landing query to the search backend. Without a backend
// the landing page is shown again with a notice.
func (ctrl *PageController) Search(c echo.Context) error {
	req := services.SearchRequest{
		Query: strings.TrimSpace(c.FormValue("q")),
		Tab:   catalog.ParseTab(c.FormValue("tab")),
	}

	results, err := ctrl.search.Search(c.Request().Context(), req)
	if errors.Is(err, services.ErrSearchUnavailable) {
		return c.Render(http.StatusOK, "landing", ctrl.landing(req.Tab, req.Query, searchComingSoon))
	}
	if err != nil {
		ctrl.logger.Error("[web] search failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	all, err := ctrl.store.Listings(c.Request().Context())
	if err != nil {
		return ctrl.storeError(err)
	}
	return c.Render(http.StatusOK, "explore", explorePage{
		page:      newPage("Search results"),
		Filters:   catalog.ListingFilters(),
		Active:    services.FilterAll,
		Query:     req.Query,
		Listings:  results,
		Available: len(all),
		Premium:   services.CountPremium(all),
	})
}

// Explore renders the listing grid. The selector comes from ?filter=, or
// from ?type= when a property type card links here with a known filter id.
// The free-text ?q= is echoed back but does not narrow the results.
func (ctrl *PageController) Explore(c echo.Context) error {
	all, err := ctrl.store.Listings(c.Request().Context())
	if err != nil {
		return ctrl.storeError(err)
	}

	selector := exploreSelector(c.QueryParam("filter"), c.QueryParam("type"))
	return c.Render(http.StatusOK, "explore", explorePage{
		page:      newPage("Explore"),
		Filters:   catalog.ListingFilters(),
		Active:    selector,
		Query:     c.QueryParam("q"),
		Listings:  services.FilterListings(selector, all),
		Available: len(all),
		Premium:   services.CountPremium(all),
	})
}

func exploreSelector(filter, typ string) string {
	if filter != "" {
		return filter
	}
	for _, o := range catalog.ListingFilters() {
		if o.ID == typ {
			return typ
		}
	}
	return services.FilterAll
}

// Neighborhoods renders the neighborhood browser as cards or as the map
// placeholder.
func (ctrl *PageController) Neighborhoods(c echo.Context) error {
	ns, err := ctrl.store.Neighborhoods(c.Request().Context())
	if err != nil {
		return ctrl.storeError(err)
	}

	price := orDefault(c.QueryParam("price"), services.PriceAll)
	amenity := orDefault(c.QueryParam("amenity"), services.AmenityAll)
	view := viewList
	if c.QueryParam("view") == viewMap {
		view = viewMap
	}

	return c.Render(http.StatusOK, "neighborhoods", neighborhoodsPage{
		page:          newPage("Neighborhoods"),
		PriceRanges:   catalog.PriceRanges(),
		Amenities:     catalog.Amenities(),
		Price:         price,
		Amenity:       amenity,
		View:          view,
		Neighborhoods: services.FilterNeighborhoods(price, amenity, ns),
	})
}

// PropertyTypes renders the property type categories.
func (ctrl *PageController) PropertyTypes(c echo.Context) error {
	types, err := ctrl.store.PropertyTypes(c.Request().Context())
	if err != nil {
		return ctrl.storeError(err)
	}
	return c.Render(http.StatusOK, "properties", propertiesPage{
		page:  newPage("Property Types"),
		Types: types,
	})
}

// Saved renders the saved homes held by ?session=. Without a live session
// a new one is started from the seed.
func (ctrl *PageController) Saved(c echo.Context) error {
	token := c.QueryParam("session")
	saved, ok := ctrl.sessions.Saved(token)
	if !ok {
		token, saved = ctrl.sessions.Create()
	}
	return c.Render(http.StatusOK, "saved", savedPage{
		page:    newPage("Saved Homes"),
		Session: token,
		Saved:   saved,
	})
}

// RemoveSaved drops one entry from a session and redirects back to it.
func (ctrl *PageController) RemoveSaved(c echo.Context) error {
	token := c.Param("session")
	if _, ok := ctrl.sessions.Remove(token, c.Param("id")); !ok {
		return c.Redirect(http.StatusSeeOther, "/saved")
	}
	return c.Redirect(http.StatusSeeOther, "/saved?session="+token)
}

func (ctrl *PageController) storeError(err error) error {
	ctrl.logger.Error("[web] catalog store: %v", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "catalog unavailable")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
