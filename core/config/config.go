package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/hanneshbsrt/fehlmengen/core/database"
	"github.com/hanneshbsrt/fehlmengen/core/ingest"
	"github.com/hanneshbsrt/fehlmengen/core/logger"
	"github.com/hanneshbsrt/fehlmengen/core/ocr"
	"github.com/hanneshbsrt/fehlmengen/core/reconcile"
	"github.com/hanneshbsrt/fehlmengen/core/report"
	"github.com/hanneshbsrt/fehlmengen/core/server"
	"github.com/hanneshbsrt/fehlmengen/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage used for published reports.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the optional ERP database connection.
	Database database.Config `mapstructure:"database"`
	// Ingest holds configuration for the dataset parsers.
	Ingest ingest.Config `mapstructure:"ingest"`
	// OCR holds configuration for label recognition.
	OCR ocr.Config `mapstructure:"ocr"`
	// Reconcile holds configuration for the reconciliation engine.
	Reconcile reconcile.Config `mapstructure:"reconcile"`
	// Report holds configuration for report rendering and publishing.
	Report report.Config `mapstructure:"report"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings that would only fail at the first upload.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	for name, format := range map[string]string{
		"INGEST_STOCK_FORMAT":       c.Ingest.StockFormat,
		"INGEST_ORDERS_FORMAT":      c.Ingest.OrdersFormat,
		"INGEST_OVERRIDES_FORMAT":   c.Ingest.OverridesFormat,
		"INGEST_IDENTIFIERS_FORMAT": c.Ingest.IdentifiersFormat,
	} {
		if format != ingest.FormatCSV && format != ingest.FormatXLSX {
			errs = append(errs, fmt.Errorf("%s: unsupported input format %q", name, format))
		}
	}

	if !c.Report.IsValidFormat() {
		errs = append(errs, fmt.Errorf("REPORT_FORMAT: unsupported report format %q", c.Report.Format))
	}

	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverPostgres, database.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER: unsupported driver %q", c.Database.Driver))
	}

	if c.OCR.MinConfidence < 0 || c.OCR.MinConfidence > 100 {
		errs = append(errs, fmt.Errorf("OCR_MIN_CONFIDENCE: %v is outside 0-100", c.OCR.MinConfidence))
	}

	if c.Reconcile.Workers < 1 {
		errs = append(errs, fmt.Errorf("RECONCILE_WORKERS: must be at least 1, got %d", c.Reconcile.Workers))
	}

	return errors.Join(errs...)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
