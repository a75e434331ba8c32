// Package api is the wire contract between the CrossClip CLI and server.
//
// The service is plain gRPC. Messages are Go structs carried with a JSON
// codec registered under the "json" content subtype, so neither side needs
// generated protobuf code. The service descriptor and the client stub below
// are the hand-written equivalent of what protoc-gen-go-grpc would emit.
//
// Methods (all unary, service crossclip.v1.CrossClipService):
//
//	Ping          liveness probe, unauthenticated
//	SignIn        exchange a Google ID token for CrossClip tokens
//	RefreshToken  rotate the refresh token, mint a new access token
//	SignOut       revoke a refresh token
//	CurrentUser   profile of the caller
//	AddItem       store a shared item, returns its id
//	ListItems     items of the caller, newest first
//	DeleteItem    remove an item; missing ids are not an error
package api
