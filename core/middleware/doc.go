// Package middleware groups the fiber middleware of the server.
//
// rayid runs first and tags every request with an id that handlers pass to
// logger.WithRayID and that is echoed in the X-Ray-ID response header. auth
// follows the public swagger route and rejects requests without the
// configured API key.
package middleware
