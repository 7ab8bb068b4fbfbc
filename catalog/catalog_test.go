package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentai/models"
)

func TestSeedCatalogsAreValid(t *testing.T) {
	require.NoError(t, ValidateListings(Listings()))
	require.NoError(t, ValidateNeighborhoods(Neighborhoods()))
	require.NoError(t, ValidatePropertyTypes(PropertyTypes()))
}

func TestAccessorsReturnCopies(t *testing.T) {
	l := Listings()
	l[0].Title = "changed"
	l[0].Images[0] = "/changed.jpg"

	fresh := Listings()
	assert.Equal(t, "Luxury Penthouse with Ocean View", fresh[0].Title)
	assert.Equal(t, "/luxury-penthouse.jpg", fresh[0].Images[0])

	n := Neighborhoods()
	n[0].Amenities[0] = "changed"
	assert.Equal(t, "Waterfront", Neighborhoods()[0].Amenities[0])
}

func TestValidateListingsReportsAllProblems(t *testing.T) {
	bad := []models.Listing{
		{ID: "1", Price: 10},
		{ID: "1", Price: -5},
		{Title: "nameless"},
	}
	err := ValidateListings(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
	assert.Contains(t, err.Error(), "negative price")
	assert.Contains(t, err.Error(), "empty id")
}

func TestSuggestionsPerTab(t *testing.T) {
	assert.Len(t, Suggestions(models.TabRental), 4)
	assert.Len(t, Suggestions(models.TabShortlet), 4)
	assert.Equal(t, Suggestions(models.TabRental), Suggestions("unknown"))
	assert.NotEqual(t, Suggestions(models.TabRental)[0], Suggestions(models.TabShortlet)[0])
}

func TestParseTab(t *testing.T) {
	assert.Equal(t, models.TabShortlet, ParseTab("shortlet"))
	assert.Equal(t, models.TabRental, ParseTab("rental"))
	assert.Equal(t, models.TabRental, ParseTab(""))
}
