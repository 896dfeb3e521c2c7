// Package integrity provides health checks for the collaborators of the
// shortage reconciler.
//
// # Checks Provided
//
//   - Storage: the report bucket exists (and can be created with ?fix=true).
//   - Database: the configured ERP orders table has a column for every
//     required field of the orders schema, honouring header aliases.
//   - OCR: the tesseract binary runs and reports its version.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
//   - GET /integrity/database : Runs the orders table check.
//   - GET /integrity/ocr : Runs the OCR check.
package integrity
