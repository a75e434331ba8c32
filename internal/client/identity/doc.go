// Package identity runs the Google OAuth 2.0 installed-app flow for the CLI.
//
// The consent URL is printed, the user approves in a browser and pastes back
// either the authorization code or the whole redirect URL. The code is then
// exchanged (with PKCE) at Google's token endpoint for an access token and an
// ID token. Only the ID token is passed on to the CrossClip server, which
// checks that it was issued to this app's client ID.
package identity
