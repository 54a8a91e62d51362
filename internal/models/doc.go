// Package models defines domain entities and persistence interfaces for the slx client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): structs mirroring the Streamlet API wire format
//   - [User] : The authenticated principal and video owners
//   - [Video] : Video metadata including engagement counts
//   - [Playlist] : Named video grouping with visibility and member stubs
//   - [PlaylistVideo] : Member stub (identity, title, thumbnail)
//   - [LoginInput] / [RegisterInput] : Credential and profile payloads
//
// 2. Persistent Entities: rows in the local SQLite cache
//   - [Session] : Stored auth cookies, keyed by base URL and cookie name
//   - [CachedVideo] : Watch-history videos available offline
//   - [CachedPlaylist] : Playlist metadata available offline
//
// Persistent entities implement the Model interface providing ID generation,
// timestamps, validation, and soft delete support. The Repository[T] interface
// defines standard CRUD operations for database access.
package models
