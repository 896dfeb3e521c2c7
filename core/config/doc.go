// Package config provides configuration management for the shortage reconciler.
//
// It uses Viper for environment variables and an optional .env file loaded
// with godotenv. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is divided into sections, each owned by the package it configures:
//   - Server: HTTP port, API key and upload limit
//   - Storage: S3/MinIO credentials and the report bucket
//   - Log: logging level and format
//   - Database: optional ERP connection for reading open orders
//   - Ingest: dataset formats, CSV dialect and header aliases
//   - OCR: tesseract binary, language and identifier pattern
//   - Reconcile: strict catalogs, sentinel label, workers
//   - Report: default format, labels and publishing
//
// Environment keys are the section and field joined by an underscore, e.g.
// SERVER_PORT, INGEST_ORDERS_FORMAT or OCR_MIN_CONFIDENCE. LoadConfig
// validates formats, the database driver and numeric ranges before returning.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
