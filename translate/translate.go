// Package translate localizes the diagnostic and error text of the UVM tools.
//
// Messages are written as en-US Sprintf() formats and looked up in the
// golang.org/x/text message catalog. The language is taken from the UVM_LANG
// environment variable, or else from the user's locale settings.
package translate

import (
	"log"
	"os"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LANG_ENV overrides the detected locale when set.
const LANG_ENV = "UVM_LANG"

// supported lists the catalog languages; the first entry is the fallback.
var supported = []language.Tag{
	language.AmericanEnglish,
	language.Russian,
}

var printer *message.Printer

func init() {
	for tag, messages := range catalog {
		for key, msg := range messages {
			err := message.SetString(tag, key, msg)
			if err != nil {
				log.Printf("uvm: catalog %v: %v", tag, err)
			}
		}
	}

	printer = message.NewPrinter(Match(locales()...))
}

// locales returns the preferred locales, most preferred first.
func locales() []string {
	if lang := os.Getenv(LANG_ENV); len(lang) != 0 {
		return []string{lang}
	}

	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("uvm: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return locales
}

// Match returns the supported language closest to the locale list.
func Match(locales ...string) (tag language.Tag) {
	matcher := language.NewMatcher(supported)
	tag, _ = language.MatchStrings(matcher, locales...)
	base, _ := tag.Base()
	for _, lang := range supported {
		if want, _ := lang.Base(); want == base {
			return lang
		}
	}

	return supported[0]
}

// SetLanguage switches all later translations to the given language.
func SetLanguage(tag language.Tag) {
	printer = message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
