// Package report renders reconciliation results for the purchasing department.
//
// Reports have one row per requested identifier with the columns
// Artikelnummer, Bezeichnung, Bestand, Einheit, Ist Bestellt?, Bestellmenge,
// Lieferdatum, Sachbearbeiter and Bestellung. Headers and the yes/no values are
// carried by Labels so other languages only need a different Labels value.
//
// # Formats
//
//   - xlsx: excelize workbook with a bold, frozen header row
//   - csv: semicolon separated by default, as expected by German Excel
//   - json: the full result including warnings and summary
//
// # Publishing
//
// Publisher uploads rendered reports to the object store under a configured
// prefix with a time-stamped name and fetches them back by name. With
// report.keep set, only the newest reports are retained after each upload.
//
// # Usage
//
//	var buf bytes.Buffer
//	err := report.Render(&buf, "xlsx", result, cfg.Report)
//	name, err := report.NewPublisher(client, cfg.Storage.Bucket, cfg.Report.Prefix).Publish(ctx, "xlsx", buf.Bytes())
package report
