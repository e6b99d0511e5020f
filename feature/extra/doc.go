// Package extra serves the auxiliary data accumulated by uploads.
//
// This covers the content-ID to character-name mapping and the upload
// statistics: daily counts, per-world totals, and the recently-updated
// item list. Counters live in Redis; the content ID table lives in the
// relational database next to the market records.
package extra
