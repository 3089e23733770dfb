// Package domain defines the core domain types and interfaces.
//
// This package contains concept-oriented files (session.go, counselee.go,
// counselor.go, etc.) with shared types and cross-cutting interfaces. No
// implementation code beyond pure domain logic (the status transition rules
// and the session-number assignment) lives here. Interfaces stay on the
// consumer side to prevent circular imports.
package domain
