// Package stats implements the pure statistics functions for market views.
//
// Everything operates on plain slices and returns values; there is no I/O
// and no shared state, so the query aggregator can run these concurrently
// across items without coordination. Each statistic is computed three times
// per result set: over all records, over NQ-only, and over HQ-only.
package stats
