// Package tasks implements startup hydration and cache synchronization.
//
// The core type is [Hydrator], which wires the API client, the state stores,
// and the local repositories together: restoring persisted session cookies,
// probing the session, seeding the reaction store from the subscription
// endpoint, and mirroring fetched history and playlists into the SQLite
// cache so listing commands work offline.
package tasks
