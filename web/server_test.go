package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentai/config"
	"rentai/models"
	"rentai/services"
	"rentai/storage"
	"rentai/utils"
)

type stubSearch struct {
	results []models.Listing
	got     services.SearchRequest
}

func (s *stubSearch) Search(ctx context.Context, req services.SearchRequest) ([]models.Listing, error) {
	s.got = req
	return s.results, nil
}

func newTestServer(t *testing.T, search services.SearchBackend) *Server {
	t.Helper()
	logger := utils.NewNopLogger()
	if search == nil {
		search = services.NewUnavailableSearch(logger)
	}
	srv, err := NewServer(config.Default(), storage.NewMemoryStore(), search, logger)
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, srv *Server, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func getDoc(t *testing.T, srv *Server, target string) *goquery.Document {
	t.Helper()
	rec := do(t, srv, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func cardIDs(doc *goquery.Document, selector string) []string {
	var ids []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		ids = append(ids, s.AttrOr("data-id", ""))
	})
	return ids
}

func TestExploreFilters(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		target string
		want   []string
	}{
		{"/explore", []string{"1", "2", "3", "4"}},
		{"/explore?filter=all", []string{"1", "2", "3", "4"}},
		{"/explore?filter=apartment", []string{"1", "3"}},
		{"/explore?filter=villa", []string{"2"}},
		{"/explore?filter=premium", []string{"1", "4"}},
		{"/explore?filter=Apartment", nil},
		{"/explore?type=duplex", []string{"4"}},
		{"/explore?type=apartments", []string{"1", "2", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			doc := getDoc(t, srv, tt.target)
			assert.Equal(t, tt.want, cardIDs(doc, ".listing-card"))
			assert.Equal(t, "4 Available", doc.Find(".stats .available").Text())
			assert.Equal(t, "2 Premium", doc.Find(".stats .premium-count").Text())
		})
	}
}

func TestExploreEchoesSearchTextWithoutFiltering(t *testing.T) {
	srv := newTestServer(t, nil)
	doc := getDoc(t, srv, "/explore?filter=villa&q=penthouse")

	val, _ := doc.Find(`input[name="q"]`).Attr("value")
	assert.Equal(t, "penthouse", val)
	assert.Equal(t, []string{"2"}, cardIDs(doc, ".listing-card"))
	assert.Equal(t, "Villas", doc.Find(".filter.active").Text())
}

func TestExploreEmptyState(t *testing.T) {
	srv := newTestServer(t, nil)
	doc := getDoc(t, srv, "/explore?filter=bungalow")
	assert.Equal(t, 0, doc.Find(".listing-card").Length())
	assert.Equal(t, 1, doc.Find(".empty").Length())
}

func TestListingCardContent(t *testing.T) {
	srv := newTestServer(t, nil)
	card := getDoc(t, srv, "/explore?filter=premium").Find(`.listing-card[data-id="1"]`)

	assert.Equal(t, "₦15,000,000/year", card.Find(".price").Text())
	assert.Equal(t, "/luxury-penthouse.jpg", card.Find("img").AttrOr("src", ""))
	assert.Equal(t, 1, card.Find(".badge.premium").Length())
	assert.Equal(t, 0, card.Find(".badge.new").Length())
	assert.Contains(t, card.Find(".specs").Text(), "4.5 baths")
}

func TestNeighborhoodFilters(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		target string
		want   []string
	}{
		{"/neighborhoods", []string{"ikoyi", "vi", "lekki1"}},
		{"/neighborhoods?price=under-5m", nil},
		{"/neighborhoods?price=5m-10m", []string{"vi", "lekki1"}},
		{"/neighborhoods?price=above-10m", []string{"ikoyi"}},
		{"/neighborhoods?amenity=Waterfront", []string{"ikoyi"}},
		{"/neighborhoods?price=5m-10m&amenity=Nightlife", []string{"vi"}},
		{"/neighborhoods?price=bogus", []string{"ikoyi", "vi", "lekki1"}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			doc := getDoc(t, srv, tt.target)
			assert.Equal(t, tt.want, cardIDs(doc, ".neighborhood-card"))
		})
	}
}

func TestNeighborhoodMapPlaceholder(t *testing.T) {
	srv := newTestServer(t, nil)
	doc := getDoc(t, srv, "/neighborhoods?view=map&price=above-10m")

	assert.Contains(t, doc.Find(".map-placeholder").Text(), "Map Integration Coming Soon")
	assert.Equal(t, []string{"ikoyi"}, cardIDs(doc, ".coordinates li"))
	assert.Equal(t, 0, doc.Find(".neighborhood-card").Length())
}

func TestPropertyTypeCardsLinkToExplore(t *testing.T) {
	srv := newTestServer(t, nil)
	doc := getDoc(t, srv, "/properties")

	cards := doc.Find(".property-type-card")
	require.Equal(t, 6, cards.Length())
	assert.Equal(t, "/explore?type=apartments", cards.First().AttrOr("href", ""))
	assert.Equal(t, "building-2", cards.First().Find(".icon").AttrOr("data-icon", ""))
	assert.Equal(t, IconGlyph(models.IconBuilding2), cards.First().Find(".icon").Text())
}

func TestSavedRemoveFlow(t *testing.T) {
	srv := newTestServer(t, nil)

	doc := getDoc(t, srv, "/saved")
	require.Equal(t, []string{"1"}, cardIDs(doc, ".saved-card"))
	action := doc.Find(".saved-card form").AttrOr("action", "")
	require.True(t, strings.HasPrefix(action, "/saved/"), action)
	token := strings.Split(action, "/")[2]

	rec := do(t, srv, http.MethodPost, "/saved/"+token+"/remove/missing", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"1"}, cardIDs(getDoc(t, srv, "/saved?session="+token), ".saved-card"))

	rec = do(t, srv, http.MethodPost, action, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/saved?session="+token, rec.Header().Get("Location"))

	doc = getDoc(t, srv, "/saved?session="+token)
	assert.Empty(t, cardIDs(doc, ".saved-card"))
	assert.Equal(t, "/explore", doc.Find(".empty a").AttrOr("href", ""))

	// a fresh page starts from the seed again
	doc = getDoc(t, srv, "/saved")
	assert.Equal(t, []string{"1"}, cardIDs(doc, ".saved-card"))
}

func TestRemoveFromUnknownSessionRedirects(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := do(t, srv, http.MethodPost, "/saved/not-a-session/remove/1", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/saved", rec.Header().Get("Location"))
}

func TestLandingTabs(t *testing.T) {
	srv := newTestServer(t, nil)

	doc := getDoc(t, srv, "/")
	assert.Equal(t, 4, doc.Find(".suggestions li").Length())
	assert.Contains(t, doc.Find(".tab.active").Text(), "Long-term Rental")
	assert.Equal(t, "1,200+", doc.Find(".quick-stat strong").First().Text())

	doc = getDoc(t, srv, "/?tab=shortlet")
	assert.Contains(t, doc.Find(".tab.active").Text(), "Short-let")
	assert.Equal(t, "Luxury 2-bed apartment in VI for weekend getaway...",
		doc.Find(`input[name="q"]`).AttrOr("placeholder", ""))
}

func TestSearchWithoutBackendShowsNotice(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := do(t, srv, http.MethodPost, "/search", url.Values{"q": {"  villa in lekki "}, "tab": {"shortlet"}})
	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, searchComingSoon, doc.Find(".notice").Text())
	assert.Equal(t, "villa in lekki", doc.Find(`input[name="q"]`).AttrOr("value", ""))
	assert.Equal(t, "shortlet", doc.Find(`input[name="tab"]`).AttrOr("value", ""))
}

func TestSearchWithBackendRendersResults(t *testing.T) {
	backend := &stubSearch{results: []models.Listing{{ID: "2", Title: "Modern Villa with Pool", Images: []string{"/v.jpg"}}}}
	srv := newTestServer(t, backend)

	rec := do(t, srv, http.MethodPost, "/search", url.Values{"q": {"pool"}})
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)

	assert.Equal(t, []string{"2"}, cardIDs(doc, ".listing-card"))
	assert.Equal(t, "pool", backend.got.Query)
	assert.Equal(t, models.TabRental, backend.got.Tab)
}

func TestLayoutNavAndFooter(t *testing.T) {
	srv := newTestServer(t, nil)
	doc := getDoc(t, srv, "/properties")
	assert.Equal(t, 4, doc.Find(".site-nav a").Length())
	assert.Equal(t, 4, doc.Find(".footer-section").Length())
	assert.Equal(t, "Property Types | RentAI", doc.Find("title").Text())
}

func TestAPIListings(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/v1/listings?filter=premium", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listings []models.Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listings))
	require.Len(t, listings, 2)
	assert.Equal(t, "1", listings[0].ID)
	assert.Equal(t, "4", listings[1].ID)

	rec = do(t, srv, http.MethodGet, "/api/v1/listings/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var one models.Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &one))
	assert.Equal(t, "Cozy Studio Apartment", one.Title)

	rec = do(t, srv, http.MethodGet, "/api/v1/listings/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Listing not found"}`, rec.Body.String())
}

func TestAPINeighborhoodsAndTypes(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/v1/neighborhoods?price=5m-10m&amenity=Schools", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ns []models.Neighborhood
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ns))
	require.Len(t, ns, 1)
	assert.Equal(t, "lekki1", ns[0].ID)

	rec = do(t, srv, http.MethodGet, "/api/v1/property-types", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var types []models.PropertyType
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &types))
	require.Len(t, types, 6)
	assert.Equal(t, models.IconWarehouse, types[5].Icon)
}

func TestAPISuggestionsStatsHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/v1/suggestions?tab=shortlet", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sugg struct {
		Tab         string   `json:"tab"`
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sugg))
	assert.Equal(t, "shortlet", sugg.Tab)
	assert.Len(t, sugg.Suggestions, 4)

	rec = do(t, srv, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report models.CatalogReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 4, report.TotalListings)
	assert.Equal(t, 2, report.PremiumListings)
	assert.Equal(t, int64(15000000), report.MaxPrice)

	rec = do(t, srv, http.MethodGet, "/api/v1/healthz", nil)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSessionExpiry(t *testing.T) {
	store := NewSessionStore(time.Minute)
	now := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	token, saved := store.Create()
	require.Len(t, saved, 1)

	now = now.Add(30 * time.Second)
	_, ok := store.Saved(token)
	require.True(t, ok)

	// Saved extended the lifetime, so this is still inside the window
	now = now.Add(45 * time.Second)
	_, ok = store.Saved(token)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, store.Evict())
	assert.Equal(t, 0, store.Len())

	_, ok = store.Remove(token, "1")
	assert.False(t, ok)
}

func TestSessionsAreIndependent(t *testing.T) {
	store := NewSessionStore(time.Minute)
	a, _ := store.Create()
	b, _ := store.Create()
	require.NotEqual(t, a, b)

	left, ok := store.Remove(a, "1")
	require.True(t, ok)
	assert.Empty(t, left)

	other, ok := store.Saved(b)
	require.True(t, ok)
	assert.Len(t, other, 1)
}

func TestJanitorStopsOnCancel(t *testing.T) {
	store := NewSessionStore(time.Millisecond)
	store.Create()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.RunJanitor(ctx, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
