// Package logger builds the zap logger used across the application.
//
// Config selects the level and the encoder. "debug" switches to zap's
// development preset; console output colours the level and drops stack
// traces, json output is meant for log shippers.
//
// Request handlers log through WithRayID so every line of a request carries
// the id assigned by the rayid middleware.
//
//	logg, err := logger.New(&cfg.Log)
//	l := logger.WithRayID(logg, c)
//	l.Warn("Unusable value in order data", zap.String("identifier", id))
package logger
