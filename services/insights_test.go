package services

import (
	"bytes"
	"testing"

	"rentai/catalog"
	"rentai/models"
	"rentai/utils"
)

func insightListings() []models.Listing {
	return []models.Listing{
		{ID: "1", Title: "Penthouse", Price: 15000000, Location: "Ikoyi", Sqft: 3200, Type: "apartment", IsPremium: true},
		{ID: "2", Title: "Villa", Price: 8500000, Location: "Lekki", Sqft: 4500, Type: "villa", IsNew: true},
		{ID: "3", Title: "Studio", Price: 2500000, Location: "Victoria Island", Sqft: 650, Type: "apartment"},
		{ID: "4", Title: "Duplex", Price: 12000000, Location: "Ikoyi", Sqft: 3800, Type: "duplex", IsPremium: true},
		{ID: "5", Title: "Unpriced", Price: 0, Location: "Lekki", Sqft: 100, Type: "apartment"},
	}
}

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(insightListings())
	if r.TotalListings != 5 {
		t.Errorf("TotalListings: got %d, want 5", r.TotalListings)
	}
	if r.PremiumListings != 2 {
		t.Errorf("PremiumListings: got %d, want 2", r.PremiumListings)
	}
	if r.NewListings != 1 {
		t.Errorf("NewListings: got %d, want 1", r.NewListings)
	}
}

func TestInsightPrices(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(insightListings())
	wantAvg := 9500000.0
	if r.AveragePrice != wantAvg {
		t.Errorf("AveragePrice: got %.2f, want %.2f", r.AveragePrice, wantAvg)
	}
	if r.MinPrice != 2500000 {
		t.Errorf("MinPrice: got %d, want 2500000", r.MinPrice)
	}
	if r.MaxPrice != 15000000 {
		t.Errorf("MaxPrice: got %d, want 15000000", r.MaxPrice)
	}
}

func TestInsightMostExpensiveWhenFirst(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(insightListings())
	if r.MostExpensive == nil {
		t.Fatal("MostExpensive should not be nil")
	}
	if r.MostExpensive.Title != "Penthouse" {
		t.Errorf("MostExpensive: got %q, want %q", r.MostExpensive.Title, "Penthouse")
	}
}

func TestInsightLargest(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(insightListings())
	if len(r.Largest) != 3 {
		t.Fatalf("Largest len: got %d, want 3", len(r.Largest))
	}
	want := []string{"Villa", "Duplex", "Penthouse"}
	for i, l := range r.Largest {
		if l.Title != want[i] {
			t.Errorf("Largest[%d]: got %q, want %q", i, l.Title, want[i])
		}
	}
}

func TestInsightGrouping(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(insightListings())
	if r.ListingsByLocation["Ikoyi"] != 2 {
		t.Errorf("Ikoyi count: got %d, want 2", r.ListingsByLocation["Ikoyi"])
	}
	if r.ListingsByType["apartment"] != 3 {
		t.Errorf("apartment count: got %d, want 3", r.ListingsByType["apartment"])
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(nil)
	if r.TotalListings != 0 {
		t.Errorf("expected 0 total listings for empty input")
	}
	if r.MostExpensive != nil {
		t.Errorf("expected no most expensive listing for empty input")
	}
}

func TestInsightPrintSeed(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	var buf bytes.Buffer
	svc.Print(&buf, svc.Generate(catalog.Listings()))

	out := buf.String()
	for _, want := range []string{"Available properties : \033[1m4", "Premium listings     : \033[1m2", "₦15,000,000"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FormatNaira(15000000), "₦15,000,000"},
		{FormatNaira(650), "₦650"},
		{FormatAmount(1000), "1,000"},
		{FormatAmount(-2500000), "-2,500,000"},
		{FormatMillions(12000000), "₦12.0M"},
		{FormatMillions(8500000), "₦8.5M"},
		{FormatBaths(4.5), "4.5"},
		{FormatBaths(5), "5"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
