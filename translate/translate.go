// Package translate formats user visible messages for the locale of the
// host, falling back to en-US.
package translate

import (
	"log"
	"sync/atomic"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const FALLBACK = "en-US" // Used when no locale can be found.

type state struct {
	tag     language.Tag
	printer *message.Printer
}

var current atomic.Pointer[state]

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("vmcpu: locale: %v", err)
	}

	Use(locales...)
}

// Use selects the best match among locales for subsequent messages. With
// no locales, FALLBACK is used. Messages already formatted, such as the
// package level error values, keep the language they were created in.
func Use(locales ...string) {
	if len(locales) == 0 {
		locales = []string{FALLBACK}
	}

	tag := message.MatchLanguage(locales...)
	current.Store(&state{
		tag:     tag,
		printer: message.NewPrinter(tag),
	})
}

// Language returns the language in use.
func Language() language.Tag {
	return current.Load().tag
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return current.Load().printer.Sprintf(key, args...)
}
