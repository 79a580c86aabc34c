package ui

import "github.com/leonelquinteros/gotext"

// Domain is the gettext domain holding the editor strings.
const Domain = "dungeonwright"

// NewLocale loads the catalog for lang from dir. Missing catalogs fall back
// to the built-in English strings, which double as message ids.
func NewLocale(dir, lang string) *gotext.Locale {
	locale := gotext.NewLocale(dir, lang)
	if dir != "" {
		locale.AddDomain(Domain)
	}
	locale.SetDomain(Domain)
	return locale
}
