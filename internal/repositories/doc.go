// Package repositories implements SQLite persistence for the operation history.
//
// Key Implementations:
//   - [OperationRepository] : Append-style audit log of playlist mutations and URL resolutions
//
// The history is never consulted before an API call; it records what was done, not what the
// server currently holds.
package repositories
