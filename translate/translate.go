// Package translate formats user-facing text in the caller's locale.
//
// Message keys are the British English text printed by the CESIL tools.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// defaultLocale is used when the host reports no locale.
const defaultLocale = "en-GB"

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("cesil: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{defaultLocale}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From formats a diagnostic or notice, with Sprintf() verbs, in the
// printer's locale.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
