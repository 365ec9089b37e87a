package middlewares

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/modkit/internal"
	"github.com/dmitrymomot/modkit/pkg/i18n"
	"github.com/dmitrymomot/modkit/pkg/logger"
)

// localeKey is the context key for the negotiated locale.
type localeKey struct{}

// LocaleConfig configures the locale middleware.
type LocaleConfig struct {
	// Supported lists the locales the application serves; the first
	// one is the fallback.
	Supported []string

	// CookieName, when set, names a cookie checked before the
	// Accept-Language header, so an explicit user choice wins.
	CookieName string
}

// LocaleOption configures LocaleConfig.
type LocaleOption func(*LocaleConfig)

// WithLocaleCookie sets the cookie consulted before header
// negotiation.
func WithLocaleCookie(name string) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.CookieName = name
	}
}

// Locale resolves the request locale against the supported list and
// stores it in the request context.
func Locale(supported []string, opts ...LocaleOption) internal.Middleware {
	cfg := &LocaleConfig{Supported: supported}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			locale := ""

			if cfg.CookieName != "" {
				if cookie, err := c.Request().Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
					locale = i18n.Negotiate(cookie.Value, cfg.Supported)
				}
			}
			if locale == "" {
				locale = i18n.Negotiate(c.Header("Accept-Language"), cfg.Supported)
			}

			c.Set(localeKey{}, locale)

			r := c.Request()
			c.SetRequest(r.WithContext(context.WithValue(r.Context(), localeKey{}, locale)))

			c.SetHeader("Content-Language", locale)

			return next(c)
		}
	}
}

// GetLocale returns the negotiated locale, or "" when the middleware
// is not installed.
func GetLocale(c internal.Context) string {
	if v, ok := c.Get(localeKey{}).(string); ok {
		return v
	}
	// App-level and route-level layers carry separate value stores;
	// the request context crosses them.
	if v, ok := c.Value(localeKey{}).(string); ok {
		return v
	}
	return ""
}

// LocaleFromRequest reads the negotiated locale straight off a
// request, for code outside the handler chain.
func LocaleFromRequest(r *http.Request) string {
	if v, ok := r.Context().Value(localeKey{}).(string); ok {
		return v
	}
	return ""
}

// LocaleExtractor returns a logger extractor that attaches "locale"
// to records logged with the request context.
func LocaleExtractor() logger.ContextExtractor {
	return func(ctx context.Context) []slog.Attr {
		if v, ok := ctx.Value(localeKey{}).(string); ok && v != "" {
			return []slog.Attr{slog.String("locale", v)}
		}
		return nil
	}
}
