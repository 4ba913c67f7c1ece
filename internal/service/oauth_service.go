package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"collectible-documenter-be/internal/config"
	"collectible-documenter-be/internal/dto"
	"collectible-documenter-be/internal/entity"
	"collectible-documenter-be/internal/pkg/apperr"
	"collectible-documenter-be/internal/pkg/logger"
	"collectible-documenter-be/internal/repository/memory"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const googleIssuer = "https://accounts.google.com"

type IOAuthService interface {
	GetLoginURL() (string, error)
	HandleCallback(ctx context.Context, code, state string) (*dto.LoginResponse, error)
}

type oauthService struct {
	googleConf *oauth2.Config
	verifier   *oidc.IDTokenVerifier
	nonces     *memory.NonceRepository
	allowed    map[string]struct{}
	jwtSecret  string
	logger     logger.ILogger
}

// NewOAuthService builds the provider client once at process start; the
// OIDC verifier caches Google's signing keys for the life of the process.
func NewOAuthService(
	ctx context.Context,
	cfg config.OAuthConfig,
	jwtSecret string,
	nonces *memory.NonceRepository,
	log logger.ILogger,
) (IOAuthService, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to init identity provider: %w", err)
	}

	conf := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		Endpoint:     provider.Endpoint(),
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedEmails))
	for _, email := range cfg.AllowedEmails {
		allowed[email] = struct{}{}
	}

	return &oauthService{
		googleConf: conf,
		verifier:   provider.Verifier(&oidc.Config{ClientID: cfg.GoogleClientID}),
		nonces:     nonces,
		allowed:    allowed,
		jwtSecret:  jwtSecret,
		logger:     log,
	}, nil
}

func (s *oauthService) GetLoginURL() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	state := base64.URLEncoding.EncodeToString(b)
	s.nonces.Put(state)

	return s.googleConf.AuthCodeURL(state), nil
}

func (s *oauthService) HandleCallback(ctx context.Context, code, state string) (*dto.LoginResponse, error) {
	// Consume-once: a replayed callback carries a state that no longer
	// exists.
	if !s.nonces.Consume(state) {
		return nil, apperr.Validation("invalid or expired state")
	}
	if code == "" {
		return nil, apperr.Validation("missing authorization code")
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, apperr.Transport("code exchange failed", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, apperr.Transport("token response missing identity token", nil)
	}

	// Signature and audience are checked against the configured client id.
	idToken, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, apperr.Transport("identity token verification failed", err)
	}

	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, apperr.Transport("failed to parse identity claims", err)
	}

	if _, ok := s.allowed[claims.Email]; !ok {
		s.logger.Warn("oauth", "Rejected email outside allow-list", map[string]interface{}{
			"email": claims.Email,
		})
		return nil, apperr.Unauthorized("Unauthorized")
	}

	user := entity.AuthUser{Email: claims.Email, FullName: claims.Name}

	sessionToken, err := s.signSessionToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("oauth", "User authenticated", map[string]interface{}{
		"email": user.Email,
	})

	return &dto.LoginResponse{
		AccessToken: sessionToken,
		User: dto.UserDTO{
			Email:    user.Email,
			FullName: user.FullName,
		},
	}, nil
}

func (s *oauthService) signSessionToken(user entity.AuthUser) (string, error) {
	claims := jwt.MapClaims{
		"email": user.Email,
		"name":  user.FullName,
		"exp":   time.Now().Add(time.Hour * 24).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
