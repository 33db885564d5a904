// package models defines the transport-neutral legacy row shapes shared by the
// extractors and the per-entity migrators.
//
// Every struct here is a snapshot of one row from the legacy relational
// store. Identifiers and foreign keys are normalized to decimal strings,
// date-like columns to RFC3339 strings. Nullable columns become pointers
// that are nil when the source column was NULL.
package models
