// Package database handles relational database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to
// configure MySQL connections based on the application's configuration.
// A sqlite driver path exists so feature tests can run against an
// in-memory database with the same access code.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
