// Package gamedata provides the read-only game reference data catalog.
//
// The market pipeline needs three lookups: world ID to name, datacenter
// membership, and whether an item is marketable. The production Catalog
// loads these as JSON documents from the object storage bucket at startup
// and serves them from memory; tests use the Static provider.
//
// The catalog is an opaque collaborator to the upload and query features:
// they only see the Provider interface and the ResolveWorldDc helper.
package gamedata
