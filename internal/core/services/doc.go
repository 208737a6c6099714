// Package services implements the driving port interfaces.
// Services contain the core business logic - the model fallback
// protocol, retrieval-augmented prompt assembly, and the ingestion
// pipeline - and orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no external dependencies.
package services
