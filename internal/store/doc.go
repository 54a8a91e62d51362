// Package store implements the client-side state containers for the slx
// application: session (auth), watch history, playlists, and engagement
// reactions.
//
// Each store owns its slice of state exclusively and is safe for concurrent
// use: mutations replace slices wholesale under the store's lock, so readers
// never observe a torn write. Stores are plain structs constructed with an
// injected [api.Client] and logger; nothing in this package is a global.
//
// Mutating operations follow the optimistic-then-reconcile protocol where
// noted: snapshot the current state, apply the change locally, issue the
// server call, and on failure restore the snapshot and return the error.
// Hydration operations (Fetch, Probe) never return errors; failures are
// logged and the prior state is left intact.
package store
