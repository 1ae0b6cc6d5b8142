package dhl

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// CountryNames resolves ISO 3166-1 alpha-2 codes to the country names printed
// on the waybill. It must be safe for concurrent use.
type CountryNames interface {
	CountryName(code string) string
}

// CountryMap is a fixed code to name table.
type CountryMap map[string]string

// CountryName implements CountryNames.
func (m CountryMap) CountryName(code string) string {
	return m[strings.ToUpper(code)]
}

type displayCountries struct {
	namer display.Namer
}

// EnglishCountryNames returns English region names from the CLDR tables.
func EnglishCountryNames() CountryNames {
	return displayCountries{namer: display.English.Regions()}
}

func (d displayCountries) CountryName(code string) string {
	region, err := language.ParseRegion(code)
	if err != nil {
		return ""
	}
	return d.namer.Name(region)
}
