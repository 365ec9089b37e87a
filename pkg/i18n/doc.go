// Package i18n negotiates the request locale from the Accept-Language
// header against the locales the application supports, using BCP 47
// matching from golang.org/x/text.
//
// # Usage
//
//	locale := i18n.Negotiate(r.Header.Get("Accept-Language"),
//	    []string{"en", "pl", "de"})
//
// The first supported locale is the fallback for empty or
// unparseable headers and for requests preferring only unsupported
// languages.
package i18n
