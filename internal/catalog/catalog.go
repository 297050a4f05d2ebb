// Package catalog lists the countries and categories offered to viewers.
package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

type Country struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Name  string `json:"name"`
}

type Category struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var countries = []struct{ code, label string }{
	{"us", "US"},
	{"gb", "UK"},
	{"in", "India"},
	{"ca", "Canada"},
	{"au", "Australia"},
}

var categoryCodes = []string{
	"general",
	"entertainment",
	"business",
	"health",
	"technology",
	"sports",
	"science",
}

var regionNamer = display.Regions(language.English)

// Countries returns the selectable countries in display order.
func Countries() []Country {
	out := make([]Country, 0, len(countries))
	for _, c := range countries {
		out = append(out, Country{Code: c.code, Label: c.label, Name: CountryName(c.code)})
	}
	return out
}

// Categories returns the selectable categories in display order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryCodes))
	for _, code := range categoryCodes {
		out = append(out, Category{Code: code, Label: CategoryLabel(code)})
	}
	return out
}

// CountryName returns the English name of an ISO 3166 region code,
// or the upper-cased code when it is not a known region.
func CountryName(code string) string {
	region, err := language.ParseRegion(code)
	if err != nil {
		return strings.ToUpper(code)
	}
	if name := regionNamer.Name(region); name != "" {
		return name
	}
	return strings.ToUpper(code)
}

// CategoryLabel title-cases a category code. Casers are stateful, so one is
// built per call.
func CategoryLabel(code string) string {
	return cases.Title(language.English).String(code)
}

// IsCountry reports whether code is one of the selectable countries.
func IsCountry(code string) bool {
	for _, c := range countries {
		if c.code == code {
			return true
		}
	}
	return false
}

// IsCategory reports whether code is one of the selectable categories.
func IsCategory(code string) bool {
	return slices.Contains(categoryCodes, code)
}
