// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentBackend: Uploads, lists and deletes documents on the backend
//   - QueryBackend: Asks the backend a question
//   - DocumentRegistry: The session's ingested documents
//   - ConversationLog: The session's messages
//
// # Optional Interfaces
//
//   - AuthBackend: Login and registration. Only the CLI auth commands need it.
//   - SettingsStore: Client settings persistence. Only the CLI needs it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
