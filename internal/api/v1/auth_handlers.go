package v1

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/madhava-poojari/mentorship-api/internal/auth"
	"github.com/madhava-poojari/mentorship-api/internal/config"
	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/madhava-poojari/mentorship-api/internal/service"
	"github.com/madhava-poojari/mentorship-api/internal/utils"
)

const (
	refreshCookie = "refresh_token"
	authTimeout   = 10 * time.Second
)

type AuthHandler struct {
	cfg    *config.Config
	google auth.GoogleVerifier
	users  UserAPI
	tokens TokenStore
	log    *slog.Logger
}

type tokenResp struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
	User        *models.User `json:"user,omitempty"`
}

func NewAuthHandler(cfg *config.Config, google auth.GoogleVerifier, users UserAPI, tokens TokenStore, log *slog.Logger) *AuthHandler {
	return &AuthHandler{cfg: cfg, google: google, users: users, tokens: tokens, log: log}
}

// GoogleSignIn exchanges an authorization code from the web client for our
// own access token and refresh cookie.
func (h *AuthHandler) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var req googleSignInRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(w, "missing code", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authTimeout)
	defer cancel()

	id, err := h.google.Exchange(ctx, req.Code)
	if err != nil {
		h.log.Warn("google sign-in rejected", "error", err)
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "google sign-in failed", nil, nil)
		return
	}
	u, err := h.users.SignInGoogle(ctx, service.GoogleProfile{
		Email:         id.Email,
		Name:          id.Name,
		Picture:       id.Picture,
		EmailVerified: id.EmailVerified,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.issueTokens(ctx, w, r, u, "login successful")
}

// Refresh rotates the refresh cookie and returns a new access token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookie)
	if err != nil || cookie.Value == "" {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "missing refresh token cookie", nil, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authTimeout)
	defer cancel()

	newPlain := utils.RandomToken()
	newExpiry := time.Now().Add(h.cfg.RefreshTokenTTL)
	userID, err := h.tokens.RotateRefreshToken(ctx, cookie.Value, newPlain, newExpiry)
	if err != nil {
		// revoked, expired or unknown
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "invalid refresh token", nil, nil)
		return
	}
	u, err := h.tokens.GetUserByID(ctx, userID)
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "user not found", nil, nil)
		return
	}
	access, err := auth.GenerateAccessToken(h.cfg, u.ID, string(u.Role))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	http.SetCookie(w, refreshTokenCookie(r, newPlain, newExpiry))
	resp := tokenResp{AccessToken: access, ExpiresIn: int64(h.cfg.AccessTokenTTL.Seconds())}
	utils.WriteJSONResponse(w, http.StatusOK, true, "refresh successful", resp, nil)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookie)
	if err != nil || cookie.Value == "" {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "missing refresh token cookie", nil, nil)
		return
	}
	if err := h.tokens.RevokeRefreshToken(r.Context(), cookie.Value); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	c := refreshTokenCookie(r, "", time.Unix(0, 0))
	c.MaxAge = -1
	http.SetCookie(w, c)
	utils.WriteJSONResponse(w, http.StatusOK, true, "logged out", nil, nil)
}

func (h *AuthHandler) issueTokens(ctx context.Context, w http.ResponseWriter, r *http.Request, u *models.User, msg string) {
	access, err := auth.GenerateAccessToken(h.cfg, u.ID, string(u.Role))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	rt := utils.RandomToken()
	expires := time.Now().Add(h.cfg.RefreshTokenTTL)
	if err := h.tokens.SaveRefreshToken(ctx, u.ID, rt, expires); err != nil {
		writeError(w, r, h.log, fmt.Errorf("save refresh token: %w", err))
		return
	}
	http.SetCookie(w, refreshTokenCookie(r, rt, expires))
	resp := tokenResp{AccessToken: access, ExpiresIn: int64(h.cfg.AccessTokenTTL.Seconds()), User: u}
	utils.WriteJSONResponse(w, http.StatusOK, true, msg, resp, nil)
}

// refreshTokenCookie scopes the cookie to the request host without its port.
func refreshTokenCookie(r *http.Request, value string, expires time.Time) *http.Cookie {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return &http.Cookie{
		Name:     refreshCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
		Domain:   host,
		Expires:  expires,
	}
}
