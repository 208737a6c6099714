// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TextExtractor: Pulls plain text out of uploaded PDF bytes
//   - EmbeddingService: Generates vector embeddings
//   - VectorStore: Stores chunks and answers nearest-neighbour queries
//   - ModelClient: Talks to the generation model server
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DocumentLog: Upload registry. Without it, document listing is
//     unavailable and uploads are simply not recorded.
//   - SettingsStore: Configuration persistence. Callers can build
//     Settings by hand instead.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
