// Package client contains the CLI's connection to the CrossClip server.
//
// # Overview
//
// The package provides:
//  1. The Client interface used by the adapter layer: Ping, SignIn,
//     SignOut, CurrentUser, AddItem, ListItems and DeleteItem.
//  2. GRPCClient, which injects the stored access token via an interceptor,
//     transparently refreshes expired tokens, persists the rotated pair and
//     maps gRPC status codes to sentinel errors.
//  3. MetadataTokenStore, the SQLite-backed TokenStore, and the local
//     database bootstrap (InitDatabase, RunMigrations).
//
// # Error Handling
//
// Transport conditions are exposed as ErrUnavailable and ErrUnauthorized;
// callers match them with errors.Is.
package client
