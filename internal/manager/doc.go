// Package manager coordinates the router with persisted state. It is structured into small
// files by concern:
//
//   - manager.go: core Manager type, constructor, Ready/Status.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - errors.go: error types and helpers (IsInvalidRequest).
//   - service_config.go: loading, seeding and saving the service configuration blob.
//   - chat.go: Chat and TestConnection, the entry points used by HTTP and CLI.
//   - history.go: exchange history and local backend discovery.
//
// The service configuration is read from the store at the start of every call and passed
// to the router explicitly; the router itself never touches storage.
package manager
