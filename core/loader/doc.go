// Package loader registers the HTTP features of the server.
//
// A feature is a group of routes with its own service, for example shortage
// reconciliation or the integrity checks. The start command builds every
// feature, registers it with a Manager and calls LoadAll once the global
// middleware is in place. Disabled features are skipped; the first feature
// that fails to load stops the server start.
package loader
