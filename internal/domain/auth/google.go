package auth

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	apperrors "github.com/evanlin/lifeboard/pkg/errors"
)

const googleIssuerURL = "https://accounts.google.com"

// GoogleAuthURL builds the consent URL for Google sign-in.
func (s *service) GoogleAuthURL(_ context.Context, state string) (string, error) {
	cfg, err := s.googleOAuthConfig()
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// GoogleCallback exchanges the authorization code and logs the owner in.
// Google sign-in never creates accounts; the ID token must match the
// owner's email or a previously linked subject.
func (s *service) GoogleCallback(ctx context.Context, code string) (LoginResponse, error) {
	cfg, err := s.googleOAuthConfig()
	if err != nil {
		return LoginResponse{}, err
	}
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap("auth_error", "google code exchange failed", err)
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return LoginResponse{}, apperrors.Wrap("auth_error", "google response carried no id token", nil)
	}

	provider, err := oidc.NewProvider(ctx, googleIssuerURL)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap("auth_error", "failed to initialize oidc provider", err)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: s.cfg.Google.ClientID})
	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap("invalid_token", "google id token rejected", err)
	}

	var payload struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := idToken.Claims(&payload); err != nil {
		return LoginResponse{}, apperrors.Wrap("auth_error", "failed to decode google claims", err)
	}
	if !payload.EmailVerified {
		return LoginResponse{}, apperrors.Wrap("invalid_credentials", "google email is not verified", nil)
	}

	email, err := normalizeEmail(payload.Email)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap("auth_error", "google returned a malformed email", err)
	}
	user, found, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap("auth_error", "failed to fetch account", err)
	}
	if !found {
		return LoginResponse{}, apperrors.Wrap("invalid_credentials", "no owner account matches this google identity", nil)
	}
	if user.GoogleSub == "" {
		if err := s.repo.SetGoogleSub(ctx, user.ID, idToken.Subject); err != nil {
			return LoginResponse{}, apperrors.Wrap("auth_error", "failed to link google identity", err)
		}
		s.logger.Info("google identity linked", "email", user.Email)
	} else if user.GoogleSub != idToken.Subject {
		return LoginResponse{}, apperrors.Wrap("invalid_credentials", "google identity does not match the linked account", nil)
	}
	return s.issueTokens(user)
}

func (s *service) googleOAuthConfig() (*oauth2.Config, error) {
	if s.cfg.Google.ClientID == "" || s.cfg.Google.ClientSecret == "" || s.cfg.Google.RedirectURL == "" {
		return nil, apperrors.Wrap("auth_disabled", "google sign-in is not configured", nil)
	}
	return &oauth2.Config{
		ClientID:     s.cfg.Google.ClientID,
		ClientSecret: s.cfg.Google.ClientSecret,
		RedirectURL:  s.cfg.Google.RedirectURL,
		Scopes:       []string{oidc.ScopeOpenID, "email"},
		Endpoint:     google.Endpoint,
	}, nil
}
