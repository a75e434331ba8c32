// Package state holds the two client state machines.
//
// Sync sequences session, list, delete and sign-out operations against a
// SharedItemStore and publishes immutable SyncState snapshots. Composer does
// the same for a single draft being shared. Each machine owns one goroutine
// that applies every transition, so at most one store call per machine is in
// flight at any time. Events arriving meanwhile wait in a FIFO queue.
//
// Store failures never escape as panics: they are classified with Kind and
// shown through the LastError field of the snapshot.
package state
