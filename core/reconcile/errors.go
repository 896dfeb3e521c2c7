package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateIdentifier is returned by strict catalog construction when an
	// identifier occurs more than once.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")

	// ErrMalformedDataset is returned when a normalized input dataset cannot be
	// used, e.g. a required column is missing.
	ErrMalformedDataset = errors.New("malformed input dataset")
)

// DuplicateIdentifierError reports the offending identifier and both row positions.
type DuplicateIdentifierError struct {
	Catalog    string
	Identifier string
	First      int
	Second     int
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("%s catalog: identifier %q at rows %d and %d", e.Catalog, e.Identifier, e.First, e.Second)
}

// Unwrap lets errors.Is match ErrDuplicateIdentifier.
func (e *DuplicateIdentifierError) Unwrap() error {
	return ErrDuplicateIdentifier
}

// MalformedDatasetError describes why a dataset was rejected.
// Row is the 1-based data row for cell level problems, 0 otherwise.
type MalformedDatasetError struct {
	Dataset string
	Missing []string
	Row     int
	Column  string
	Reason  string
}

func (e *MalformedDatasetError) Error() string {
	var b strings.Builder
	b.WriteString(e.Dataset)
	b.WriteString(" dataset")
	if len(e.Missing) > 0 {
		b.WriteString(": missing required columns: ")
		b.WriteString(strings.Join(e.Missing, ", "))
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
		if e.Column != "" {
			fmt.Fprintf(&b, " column %q", e.Column)
		}
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

// Unwrap lets errors.Is match ErrMalformedDataset.
func (e *MalformedDatasetError) Unwrap() error {
	return ErrMalformedDataset
}
