// Package services contains the core application services: the
// per-document indexing pipeline, multi-document retrieval, and answer
// generation. Services depend only on domain types and driven ports.
package services
