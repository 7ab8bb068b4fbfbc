package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"rentai/catalog"
	"rentai/services"
	"rentai/storage"
	"rentai/utils"
)

// APIController serves the catalog as JSON.
type APIController struct {
	store    storage.CatalogReader
	insights *services.InsightService
	logger   *utils.Logger
}

// NewAPIController creates an APIController.
func NewAPIController(store storage.CatalogReader, insights *services.InsightService, logger *utils.Logger) *APIController {
	return &APIController{store: store, insights: insights, logger: logger}
}

// Register registers the API routes on g.
func (ctrl *APIController) Register(g *echo.Group) {
	g.GET("/healthz", ctrl.Health)
	g.GET("/listings", ctrl.GetListings)
	g.GET("/listings/:id", ctrl.GetListingByID)
	g.GET("/neighborhoods", ctrl.GetNeighborhoods)
	g.GET("/property-types", ctrl.GetPropertyTypes)
	g.GET("/suggestions", ctrl.GetSuggestions)
	g.GET("/stats", ctrl.GetStats)
}

func (ctrl *APIController) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetListings returns the listings passing ?filter= (default "all").
func (ctrl *APIController) GetListings(c echo.Context) error {
	listings, err := ctrl.store.Listings(c.Request().Context())
	if err != nil {
		return ctrl.internal(c, "Failed to retrieve listings", err)
	}
	selector := orDefault(c.QueryParam("filter"), services.FilterAll)
	return c.JSON(http.StatusOK, services.FilterListings(selector, listings))
}

func (ctrl *APIController) GetListingByID(c echo.Context) error {
	l, err := ctrl.store.Listing(c.Request().Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Listing not found",
		})
	}
	if err != nil {
		return ctrl.internal(c, "Failed to retrieve listing", err)
	}
	return c.JSON(http.StatusOK, l)
}

// GetNeighborhoods returns the neighborhoods passing ?price= and ?amenity=.
func (ctrl *APIController) GetNeighborhoods(c echo.Context) error {
	ns, err := ctrl.store.Neighborhoods(c.Request().Context())
	if err != nil {
		return ctrl.internal(c, "Failed to retrieve neighborhoods", err)
	}
	price := orDefault(c.QueryParam("price"), services.PriceAll)
	amenity := orDefault(c.QueryParam("amenity"), services.AmenityAll)
	return c.JSON(http.StatusOK, services.FilterNeighborhoods(price, amenity, ns))
}

func (ctrl *APIController) GetPropertyTypes(c echo.Context) error {
	types, err := ctrl.store.PropertyTypes(c.Request().Context())
	if err != nil {
		return ctrl.internal(c, "Failed to retrieve property types", err)
	}
	return c.JSON(http.StatusOK, types)
}

func (ctrl *APIController) GetSuggestions(c echo.Context) error {
	tab := catalog.ParseTab(c.QueryParam("tab"))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"tab":         tab,
		"suggestions": catalog.Suggestions(tab),
		"quickStats":  catalog.QuickStats(tab),
	})
}

func (ctrl *APIController) GetStats(c echo.Context) error {
	listings, err := ctrl.store.Listings(c.Request().Context())
	if err != nil {
		return ctrl.internal(c, "Failed to compute stats", err)
	}
	return c.JSON(http.StatusOK, ctrl.insights.Generate(listings))
}

func (ctrl *APIController) internal(c echo.Context, msg string, err error) error {
	ctrl.logger.Error("[api] %s: %v", msg, err)
	return c.JSON(http.StatusInternalServerError, map[string]string{
		"error": msg,
	})
}
