// Package shortage implements the shortage reconciliation feature.
//
// Purchasing uploads the stock export, the open purchase orders and optionally
// quantity overrides and an identifier list. The service parses them through
// core/ingest, runs the core/reconcile engine and renders the report with
// core/report. Without identifiers every stock item is reported; without an
// orders upload the configured ERP table is read.
//
// # Components
//
//   - Service: parsing, reconciliation, rendering, publishing and label recognition.
//   - Handler: HTTP endpoints.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST /shortages/reconcile : multipart upload, returns xlsx, csv or json.
//   - POST /shortages/labels : recognise identifiers on label photos.
//   - DELETE /shortages/cache : purge the dataset parse cache.
//   - GET /shortages/reports : list published reports.
//   - GET /shortages/reports/:name : download a published report.
//   - DELETE /shortages/reports/:name : delete a published report.
//
// Malformed datasets answer 422, duplicate identifiers in strict mode 409 and
// missing uploads 400.
package shortage
