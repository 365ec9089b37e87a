// Package internal contains the application plumbing behind the public
// modkit API: the App, the deferred registration ledger, the chi router
// adapter, the request Context, and the server runtime that fires the
// fixed lifecycle stages.
//
// The root modkit package re-exports the public surface via type
// aliases; nothing here is imported directly by applications.
package internal
