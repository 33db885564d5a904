// package extract reads legacy rows out of the relational store.
//
// Each extractor returns the full row set for one entity, reshaped into the
// transport-neutral forms in [models]. Timestamps become RFC3339 strings and
// NULL columns become nil pointers. Extractors are read-only and return no
// partial results; any database error surfaces to the caller.
package extract
