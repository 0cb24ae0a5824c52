// Package mock provides test doubles for the ai package.
//
// MockEmbedder produces deterministic hash-derived vectors by default so
// index and retrieval tests are reproducible without an embedding
// service; behavior can be overridden per-test via function fields.
package mock
