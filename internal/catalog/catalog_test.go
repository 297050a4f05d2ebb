package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountries(t *testing.T) {
	got := Countries()

	codes := make([]string, 0, len(got))
	for _, c := range got {
		codes = append(codes, c.Code)
	}
	assert.Equal(t, []string{"us", "gb", "in", "ca", "au"}, codes)

	assert.Equal(t, Country{Code: "gb", Label: "UK", Name: "United Kingdom"}, got[1])
	assert.Equal(t, "India", got[2].Name)
}

func TestCategories(t *testing.T) {
	got := Categories()

	assert.Len(t, got, 7)
	assert.Equal(t, Category{Code: "general", Label: "General"}, got[0])
	assert.Equal(t, Category{Code: "science", Label: "Science"}, got[6])
}

func TestCountryName(t *testing.T) {
	assert.Equal(t, "United States", CountryName("us"))
	assert.Equal(t, "Australia", CountryName("AU"))
	assert.Equal(t, "ZZZZ", CountryName("zzzz"))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Technology", CategoryLabel("technology"))
	assert.Equal(t, "Sports", CategoryLabel("SPORTS"))
}

func TestIsCountryAndCategory(t *testing.T) {
	assert.True(t, IsCountry("gb"))
	assert.False(t, IsCountry("GB"))
	assert.False(t, IsCountry("zz"))

	assert.True(t, IsCategory("sports"))
	assert.False(t, IsCategory("weather"))
	assert.False(t, IsCategory(""))
}
