// Package upload accepts crowd-sourced market data from trusted clients.
//
// An upload authenticates with an API key, of which only the SHA-256
// digest is stored, and then flows through a chain of behaviors. Each
// behavior claims the payload sections it understands: listings replace
// the stored set for their (world, item), sales merge into history, tax
// rates overwrite per world, and character content IDs upsert
// last-write-wins. The first failing behavior rejects the upload; the
// source's upload counter is credited regardless since it runs first and
// never fails the request.
package upload
