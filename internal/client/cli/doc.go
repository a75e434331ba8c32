// Package cli provides the interactive CrossClip command-line client.
//
// App drives the Sync and Composer state machines from a read-eval-print
// loop. Every command queues an event, waits for the Sync machine to settle
// and renders the resulting snapshot. A background watcher pings the server
// and reports when the client goes online or offline.
//
// Commands:
//   - signin / signout: connect or disconnect a Google account
//   - list (l) / refresh: show the shared items, or reload them first
//   - share: compose a new item from the lines typed until "."
//   - delete <n|id>: remove an item by list number or id
//   - retry: repeat the last failed refresh
package cli
