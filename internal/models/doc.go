// Package models defines domain entities and persistence interfaces for qqm.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs derived from QQ Music API responses
//   - [Playlist] : A playlist created by the user, identified by its dirId
//   - [SongURL] : A resolved download URL for a song mid in a given file format
//
// 2. Persistent Entities: Database-backed models
//   - [Operation] : One playlist mutation or URL resolution run from the CLI
//
// Persistent entities implement the [Model] interface and are stored through a [Repository].
package models
