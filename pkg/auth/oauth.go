package auth

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/ezbase/ezbase/pkg/domain"
	"github.com/ezbase/ezbase/pkg/records"
)

const googleIssuer = "https://accounts.google.com"

// ProviderGoogle is the provider tag stored on accounts created through
// Google identity linking
const ProviderGoogle = "google"

// IdentityClaims are the claims extracted from a verified provider ID token
type IdentityClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	GivenName     string `json:"given_name"`
}

// GoogleProvider handles the authorization-code exchange with Google and
// the verification of the returned ID token against Google's published keys
type GoogleProvider struct {
	cfg         *oauth2.Config
	frontendURL string
	timeout     time.Duration

	mu       sync.Mutex
	verifier *oidc.IDTokenVerifier
}

// NewGoogleProvider configures the Google OAuth client. frontendURL is
// where the browser is sent after the exchange, carrying the issued token.
func NewGoogleProvider(clientID, clientSecret, redirectURL, frontendURL string, timeout time.Duration) *GoogleProvider {
	return &GoogleProvider{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/userinfo.email",
			},
		},
		frontendURL: frontendURL,
		timeout:     timeout,
	}
}

// AuthCodeURL returns the provider URL the front end sends the browser to
func (g *GoogleProvider) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

// Exchange trades the authorization code for a verified identity. The whole
// round trip runs under a deadline and fails closed on expiry.
func (g *GoogleProvider) Exchange(ctx context.Context, code string) (*IdentityClaims, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	token, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: code exchange failed: %v", domain.ErrExternalService, err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("%w: provider response carried no identity token", domain.ErrExternalService)
	}

	verifier, err := g.getVerifier(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: provider key discovery failed: %v", domain.ErrExternalService, err)
	}

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: identity token failed verification: %v", domain.ErrExternalService, err)
	}

	var claims IdentityClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: failed to decode identity claims: %v", domain.ErrExternalService, err)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: identity token carried no email", domain.ErrExternalService)
	}
	return &claims, nil
}

// RedirectURL builds the front-end URL carrying the issued token as a
// query parameter
func (g *GoogleProvider) RedirectURL(token string) (string, error) {
	target, err := url.Parse(g.frontendURL)
	if err != nil {
		return "", fmt.Errorf("%w: invalid front-end URL: %v", domain.ErrInternal, err)
	}
	query := target.Query()
	query.Set("jwt", token)
	target.RawQuery = query.Encode()
	return target.String(), nil
}

// getVerifier lazily discovers Google's signing keys. Discovery needs the
// network, so it cannot run at construction time in tests or offline boots.
func (g *GoogleProvider) getVerifier(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.verifier == nil {
		provider, err := oidc.NewProvider(ctx, googleIssuer)
		if err != nil {
			return nil, err
		}
		g.verifier = provider.Verifier(&oidc.Config{ClientID: g.cfg.ClientID})
	}
	return g.verifier, nil
}

// GoogleAuthURL returns the authorization URL the front end redirects to
func (s *Service) GoogleAuthURL(state string) (string, error) {
	if s.google == nil {
		return "", fmt.Errorf("%w: google oauth is not configured", domain.ErrValidation)
	}
	return s.google.AuthCodeURL(state), nil
}

// OAuthLogin completes the Google exchange, links the external identity to
// a local account (creating one on first login), and returns the front-end
// redirect URL carrying a token for the account.
func (s *Service) OAuthLogin(ctx context.Context, code string) (string, error) {
	if s.google == nil {
		return "", fmt.Errorf("%w: google oauth is not configured", domain.ErrValidation)
	}
	if code == "" {
		return "", fmt.Errorf("%w: missing authorization code", domain.ErrValidation)
	}

	claims, err := s.google.Exchange(ctx, code)
	if err != nil {
		return "", err
	}

	account, err := s.linkIdentity(claims)
	if err != nil {
		return "", err
	}

	token, err := s.signToken(account, RoleUser)
	if err != nil {
		return "", err
	}
	return s.google.RedirectURL(token)
}

// linkIdentity finds the account matching the verified email, or creates
// one tagged with the provider. The create is unique-keyed on email, so a
// concurrent first login cannot produce a duplicate account: the loser of
// the race re-reads the winner's record.
func (s *Service) linkIdentity(claims *IdentityClaims) (domain.Document, error) {
	users := s.db.GetCollection(UsersCollection)

	matches, err := users.Find(map[string]interface{}{"email": claims.Email})
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		return records.Sanitize(matches[0]), nil
	}

	details := domain.Document{
		"email":     claims.Email,
		"name":      claims.GivenName,
		"providers": []string{ProviderGoogle},
	}
	created, err := s.records.CreateUnique(details, UsersCollection, "email")
	if err == nil {
		return created, nil
	}
	if !domain.IsConflict(err) {
		return nil, err
	}

	matches, err = users.Find(map[string]interface{}{"email": claims.Email})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: identity linking lost a race and found no account", domain.ErrInternal)
	}
	return records.Sanitize(matches[0]), nil
}
