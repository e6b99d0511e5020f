// Package models holds the upload wire format and the trusted source
// record. The wire structs mirror the client payload exactly; the
// normalization step in the parent package converts them into the
// persisted market record types.
package models
