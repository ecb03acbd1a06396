// Package config builds the database connections and the event store for the circulation
// handlers from a Postgres DSN.
package config
