// Package tasks runs playlist mutations with real-time progress reporting.
//
// # Core Operations
//
// [PlaylistEngine] wraps a [PlaylistWriter] (services.QQMusicService) and an optional [Recorder]
// (repositories.OperationRepository):
//
//  1. [PlaylistEngine.Mutate] : Add or remove one song and record the outcome
//  2. [PlaylistEngine.Batch] : Add or remove many songs in order
//     - Requests are sequential and paced by a token bucket limiter
//     - A failing song is reported and the batch moves on
//     - Cancelling the context stops the batch before the next request
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # History
//
// Every attempted mutation is handed to the [Recorder]. Recording errors are logged and never fail the mutation.
package tasks
