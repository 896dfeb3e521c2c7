package logger

import (
	"fmt"

	"github.com/hanneshbsrt/fehlmengen/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a new zap logger based on the configuration.
// "debug" selects the development preset (ISO8601 time, caller, stack
// traces on warn); every other level uses the production preset.
func New(cfg *Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var config zap.Config
	if level.Level() == zapcore.DebugLevel {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	config.Level = level

	switch cfg.Format {
	case "console":
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.DisableStacktrace = true
	case "json", "":
		config.Encoding = "json"
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.MessageKey = "message"

	return config.Build()
}

// WithRayID returns a logger with the ray_id field set from the Fiber context.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if id, ok := c.Locals(rayid.LocalsKey).(string); ok && id != "" {
		return l.With(zap.String("ray_id", id))
	}
	return l
}
