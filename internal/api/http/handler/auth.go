package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/driveassist/auth-server/internal/logger"
	"github.com/driveassist/auth-server/internal/model"
	"github.com/driveassist/auth-server/internal/service"
)

// AuthService defines the sign-in and session operations the handler
// exposes.
type AuthService interface {
	LoginURL(providerTag, state string) (string, error)
	SignIn(ctx context.Context, providerTag, code string) (service.SessionResult, error)
	Refresh(ctx context.Context, expiredToken string) (service.SessionResult, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (model.Summary, error)
}

// Auth handles the OAuth callback and session endpoints.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	providerTag    string
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, providerTag string, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		providerTag:    providerTag,
		logger:         logger,
	}
}

// stateBlob rides through the provider consent flow and carries the
// URL to send the browser back to after the callback.
type stateBlob struct {
	SiteRedirect string `json:"siteredirect"`
}

// Login starts the OAuth flow.
// GET /auth/google/login?redirect=<url>
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	state, err := json.Marshal(stateBlob{SiteRedirect: r.URL.Query().Get("redirect")})
	if err != nil {
		writeError(w, err)
		return
	}

	loginURL, err := h.authService.LoginURL(h.providerTag, string(state))
	if err != nil {
		h.logger.Error("Auth handler: failed to build login url", "error", err.Error())
		writeError(w, err)
		return
	}

	http.Redirect(w, r, loginURL, http.StatusTemporaryRedirect)
}

// Callback handles the provider redirect: exchanges the code, signs
// the user in and sends the browser back with the session token in the
// query string.
// GET /auth/google?code=xxx&state=yyy
func (h *Auth) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing authorization code"})
		return
	}

	redirectTo := "/"
	if state := r.URL.Query().Get("state"); state != "" {
		var blob stateBlob
		// An unparseable state falls back to the default redirect.
		if err := json.Unmarshal([]byte(state), &blob); err == nil && blob.SiteRedirect != "" {
			redirectTo = blob.SiteRedirect
		}
	}

	result, err := h.authService.SignIn(r.Context(), h.providerTag, code)
	if err != nil {
		h.logger.Error("Auth handler: sign-in failed", "error", err.Error())
		writeError(w, err)
		return
	}

	h.logger.Info("Auth handler: sign-in completed", "user_id", result.User.ID)

	query := url.Values{"token": {result.SessionToken}}
	http.Redirect(w, r, redirectTo+"?"+query.Encode(), http.StatusTemporaryRedirect)
}

type refreshRequest struct {
	ExpiredToken string `json:"expired_token"`
}

// Refresh renews a session from an expired session token.
// POST /auth/refresh
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ExpiredToken == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing expired token"})
		return
	}

	result, err := h.authService.Refresh(r.Context(), req.ExpiredToken)
	if err != nil {
		h.logger.Error("Auth handler: refresh failed", "error", err.Error())
		writeError(w, err)
		return
	}

	h.logger.Info("Auth handler: session refreshed", "user_id", result.User.ID)

	writeJSON(w, http.StatusOK, result)
}

// Me returns the authenticated user's summary.
// GET /auth/me
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	summary, err := h.authService.CurrentUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
