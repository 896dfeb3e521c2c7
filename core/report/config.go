package report

import "unicode/utf8"

// Config holds configuration for report rendering and publishing.
type Config struct {
	// Format is the default report format (xlsx, csv, json).
	Format string `mapstructure:"format" default:"xlsx"`
	// Delimiter is the CSV field separator.
	Delimiter string `mapstructure:"delimiter" default:";"`
	// Sheet is the worksheet name of xlsx reports.
	Sheet string `mapstructure:"sheet" default:"Fehlmengen"`
	// YesLabel is written for identifiers with an open order.
	YesLabel string `mapstructure:"yes_label" default:"Ja"`
	// NoLabel is written for identifiers without an open order.
	NoLabel string `mapstructure:"no_label" default:"Nein"`
	// Publish uploads every rendered report to object storage.
	Publish bool `mapstructure:"publish" default:"false"`
	// Prefix is the object key prefix of published reports.
	Prefix string `mapstructure:"prefix" default:"reports/"`
	// Keep is the number of newest published reports retained. 0 keeps all.
	Keep int `mapstructure:"keep" default:"0"`
}

// IsValidFormat checks if the configured format is supported.
func (c Config) IsValidFormat() bool {
	return IsValidFormat(c.Format)
}

// Labels returns the default labels with the configured yes/no values.
func (c Config) Labels() Labels {
	l := DefaultLabels()
	if c.YesLabel != "" {
		l.Yes = c.YesLabel
	}
	if c.NoLabel != "" {
		l.No = c.NoLabel
	}
	if c.Sheet != "" {
		l.Sheet = c.Sheet
	}
	return l
}

// Comma returns the CSV delimiter, falling back to ';'.
func (c Config) Comma() rune {
	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if size == 0 || size != len(c.Delimiter) || r == utf8.RuneError {
		return ';'
	}
	return r
}
