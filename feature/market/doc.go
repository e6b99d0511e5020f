// Package market serves aggregated market board data.
//
// It answers the current-data and sale-history queries for a world or a
// whole datacenter, merging the per-world rows written by the upload
// feature into a single view with price statistics, stack-size
// histograms, and sale velocities. Tax rate lookups live here too since
// they read the same store.
package market
