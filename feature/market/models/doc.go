// Package models defines the market record entities and the aggregated
// view DTOs served by the market feature.
//
// Entities (Listing, Sale, MarketStatus, TaxRates) are GORM models keyed by
// (world, item). Views are computed per query by the aggregation service
// and discarded after the response; nothing in this package caches.
package models
