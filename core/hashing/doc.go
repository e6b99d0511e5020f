// Package hashing is the one-way pseudonymization boundary.
//
// Raw player, retainer, and uploader identifiers must never be stored or
// logged. Hash turns them into SHA-256 hex digests before they leave the
// upload pipeline. The transformation is deliberately irreversible; there
// is no lookup from digest back to identifier anywhere in the system.
package hashing
