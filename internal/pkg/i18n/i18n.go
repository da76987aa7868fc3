// Package i18n translates error codes and validation kinds into user-facing
// text. Only English and Spanish are shipped.
package i18n

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported lists the shipped locales; the first one is the fallback.
var Supported = []language.Tag{language.English, language.Spanish}

var (
	cat     = newCatalog()
	matcher = language.NewMatcher(Supported)
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range english {
		_ = b.SetString(language.English, key, msg)
	}
	for key, msg := range spanish {
		_ = b.SetString(language.Spanish, key, msg)
	}
	return b
}

type printerKey struct{}

// Match picks the best supported locale for an explicit locale value or an
// Accept-Language header. explicit wins when it names a supported language.
func Match(explicit, acceptLanguage string) language.Tag {
	if explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			if _, idx, conf := matcher.Match(tag); conf != language.No {
				return Supported[idx]
			}
		}
	}
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 {
			if _, idx, conf := matcher.Match(tags...); conf != language.No {
				return Supported[idx]
			}
		}
	}
	return Supported[0]
}

// NewPrinter returns a printer bound to the shipped catalog.
func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(cat))
}

// WithPrinter stores p in ctx.
func WithPrinter(ctx context.Context, p *message.Printer) context.Context {
	return context.WithValue(ctx, printerKey{}, p)
}

// PrinterFromContext returns the request printer, or an English one.
func PrinterFromContext(ctx context.Context) *message.Printer {
	if p, ok := ctx.Value(printerKey{}).(*message.Printer); ok {
		return p
	}
	return NewPrinter(Supported[0])
}

// T translates key for the locale stored in ctx. Unknown keys come back unchanged.
func T(ctx context.Context, key string) string {
	return PrinterFromContext(ctx).Sprintf(message.Key(key, key))
}

// Kind translates a validation kind.
func Kind(ctx context.Context, kind string) string {
	return T(ctx, "validation."+kind)
}

// Middleware resolves the locale from ?locale=, then Accept-Language.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag := Match(r.URL.Query().Get("locale"), r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Language", tag.String())
		next.ServeHTTP(w, r.WithContext(WithPrinter(r.Context(), NewPrinter(tag))))
	})
}
