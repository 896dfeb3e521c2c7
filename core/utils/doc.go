// Package utils provides conversion helpers shared by the ingest adapters.
// It turns scanned database values and spreadsheet cells into strings and
// decimals and normalizes column headers for matching.
package utils
