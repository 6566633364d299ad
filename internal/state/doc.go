// Package state owns the shared waitlist snapshot.
//
// The Store is the single holder of the "current displayed collection": the
// refresh controller writes it, the UI reads it. Entries are replaced
// wholesale on every successful reload (never patched in place), so readers
// never observe a partially-applied update. Failed reloads keep the stale
// entries and surface the error alongside them.
package state
