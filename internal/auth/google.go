package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/madhava-poojari/mentorship-api/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// GoogleIdentity is what a verified Google ID token says about the caller.
type GoogleIdentity struct {
	Email         string
	Name          string
	Picture       string
	EmailVerified bool
}

// GoogleVerifier turns an authorization code into a verified identity.
type GoogleVerifier interface {
	Exchange(ctx context.Context, code string) (*GoogleIdentity, error)
}

type googleOAuth struct {
	oauth    *oauth2.Config
	clientID string
}

func NewGoogleVerifier(cfg *config.Config) GoogleVerifier {
	return &googleOAuth{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		clientID: cfg.GoogleClientID,
	}
}

func (g *googleOAuth) Exchange(ctx context.Context, code string) (*GoogleIdentity, error) {
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange: %w", err)
	}
	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return nil, errors.New("no id_token in token response")
	}
	payload, err := idtoken.Validate(ctx, raw, g.clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid id_token: %w", err)
	}
	return identityFromClaims(payload.Claims), nil
}

func identityFromClaims(claims map[string]interface{}) *GoogleIdentity {
	id := &GoogleIdentity{}
	id.Email, _ = claims["email"].(string)
	id.Name, _ = claims["name"].(string)
	id.Picture, _ = claims["picture"].(string)
	switch v := claims["email_verified"].(type) {
	case bool:
		id.EmailVerified = v
	case string:
		id.EmailVerified = v == "true"
	}
	return id
}
