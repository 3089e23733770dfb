// Package server exposes the HTTP API on echo: session reservations, the
// status lifecycle, listings and search, cached read models, and the health
// and metrics endpoints.
package server
