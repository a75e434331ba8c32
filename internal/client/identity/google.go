package identity

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/crossclip/internal/common"
)

var defaultScopes = []string{"openid", "email", "profile"}

// GoogleConfig describes the OAuth client registered for the CLI.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	RedirectURL  string
	Scopes       []string
}

// Credential is the outcome of a completed consent.
type Credential struct {
	AccessToken string
	IDToken     string
}

type GoogleProvider struct {
	cfg        GoogleConfig
	httpClient *http.Client
	prompter   Prompter
}

func NewGoogleProvider(cfg GoogleConfig, httpClient *http.Client, prompter Prompter) *GoogleProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = defaultScopes
	}
	return &GoogleProvider{cfg: cfg, httpClient: httpClient, prompter: prompter}
}

// Consent walks the user through the browser consent and exchanges the
// resulting code.
func (g *GoogleProvider) Consent(ctx context.Context) (*Credential, error) {
	if g.cfg.ClientID == "" {
		return nil, errors.New("google client id is not configured")
	}

	verifier := newCodeVerifier()
	state, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, err
	}

	authURL, err := g.authCodeURL(state, computeS256Challenge(verifier))
	if err != nil {
		return nil, err
	}

	g.prompter.Show("Open this URL in a browser and approve access:\n\n  " + authURL + "\n")
	input, err := g.prompter.ReadCode("Paste the code or the redirect URL (empty to cancel): ")
	if err != nil {
		return nil, err
	}

	code, err := parseCodeInput(input, state)
	if err != nil {
		return nil, err
	}

	return g.exchange(ctx, code, verifier)
}

func (g *GoogleProvider) authCodeURL(state, challenge string) (string, error) {
	u, err := url.Parse(g.cfg.AuthURL)
	if err != nil {
		return "", fmt.Errorf("invalid auth url: %w", err)
	}

	query := url.Values{}
	query.Set("response_type", "code")
	query.Set("client_id", g.cfg.ClientID)
	query.Set("redirect_uri", g.cfg.RedirectURL)
	query.Set("scope", strings.Join(g.cfg.Scopes, " "))
	query.Set("state", state)
	query.Set("code_challenge", challenge)
	query.Set("code_challenge_method", "S256")
	query.Set("prompt", "select_account")
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// parseCodeInput accepts either a bare code or the full redirect URL.
func parseCodeInput(input, state string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrCancelled
	}
	if !strings.Contains(input, "?") {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("%w: malformed redirect url", ErrRejected)
	}
	q := u.Query()

	switch q.Get("error") {
	case "":
	case "access_denied":
		return "", ErrCancelled
	default:
		return "", fmt.Errorf("%w: %s", ErrRejected, q.Get("error"))
	}

	if got := q.Get("state"); got != "" && got != state {
		return "", fmt.Errorf("%w: state mismatch", ErrRejected)
	}

	code := q.Get("code")
	if code == "" {
		return "", ErrCancelled
	}
	return code, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	IDToken     string `json:"id_token"`
	ExpiresIn   int64  `json:"expires_in"`
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

func (g *GoogleProvider) exchange(ctx context.Context, code, verifier string) (*Credential, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", g.cfg.RedirectURL)
	form.Set("client_id", g.cfg.ClientID)
	form.Set("client_secret", g.cfg.ClientSecret)
	form.Set("code_verifier", verifier)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}

	var payload tokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("token exchange: status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	if resp.StatusCode != http.StatusOK {
		switch {
		case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
			return nil, fmt.Errorf("%w: %s", ErrRejected, firstNonEmpty(payload.Description, payload.Error, resp.Status))
		default:
			return nil, fmt.Errorf("token exchange: status %d", resp.StatusCode)
		}
	}

	if !strings.EqualFold(payload.TokenType, "Bearer") || payload.IDToken == "" || payload.AccessToken == "" {
		return nil, ErrInvalidCredential
	}

	return &Credential{AccessToken: payload.AccessToken, IDToken: payload.IDToken}, nil
}

func newCodeVerifier() string {
	return base64.RawURLEncoding.EncodeToString(common.GenerateRandByteArray(48))
}

func computeS256Challenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
