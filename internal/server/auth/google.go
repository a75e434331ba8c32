package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/crossclip/internal/common"
)

const defaultGoogleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// googleIssuers are the values Google puts in the iss claim of ID tokens.
var googleIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

// Identity is what the identity provider tells us about the signed-in person.
type Identity struct {
	Subject     string
	Email       string
	DisplayName string
	AvatarURL   string
}

// IdentityVerifier turns a provider ID token into a verified Identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

// GoogleVerifier checks Google ID tokens with the tokeninfo endpoint and
// accepts only tokens issued to clientID.
type GoogleVerifier struct {
	tokenInfoURL string
	clientID     string
	httpClient   *http.Client
}

// NewGoogleVerifier returns a verifier for tokens minted for clientID. An
// empty tokenInfoURL selects Google's production endpoint and a nil client
// selects http.DefaultClient.
func NewGoogleVerifier(tokenInfoURL, clientID string, httpClient *http.Client) *GoogleVerifier {
	if tokenInfoURL == "" {
		tokenInfoURL = defaultGoogleTokenInfoURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GoogleVerifier{tokenInfoURL: tokenInfoURL, clientID: clientID, httpClient: httpClient}
}

type googleTokenInfo struct {
	Aud     string `json:"aud"`
	Iss     string `json:"iss"`
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Verify asks Google to validate idToken and then checks that it was issued
// by Google for this server's client ID. Google answers 400 for malformed,
// expired or badly signed tokens; that and any claim mismatch map to
// common.ErrIdentityRejected. Other failures are returned wrapped.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	if v.clientID == "" {
		return nil, errors.New("google client id is not configured")
	}
	if idToken == "" {
		return nil, common.ErrIdentityRejected
	}

	u, err := url.Parse(v.tokenInfoURL)
	if err != nil {
		return nil, fmt.Errorf("invalid token info url: %w", err)
	}
	q := u.Query()
	q.Set("id_token", idToken)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create token info request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token info request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read token info response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest ||
		resp.StatusCode == http.StatusUnauthorized ||
		resp.StatusCode == http.StatusForbidden:
		return nil, common.ErrIdentityRejected
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("token info fetch failed with status %d: %s", resp.StatusCode, string(body))
	}

	var info googleTokenInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse token info response: %w", err)
	}
	if info.Aud != v.clientID || !googleIssuers[info.Iss] || info.Sub == "" {
		return nil, common.ErrIdentityRejected
	}

	return &Identity{
		Subject:     info.Sub,
		Email:       info.Email,
		DisplayName: info.Name,
		AvatarURL:   info.Picture,
	}, nil
}

var _ IdentityVerifier = (*GoogleVerifier)(nil)
