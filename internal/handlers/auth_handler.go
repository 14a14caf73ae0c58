package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vocabulariojapones/backend/internal/middleware"
	"github.com/vocabulariojapones/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic
type AuthService interface {
	// Method Register creates a new user account and logs it in.
	//
	// "username" and "password" parameters come from the registration form.
	//
	// If the credentials are invalid or the username is taken, the error will be
	// returned together with "nil" user and an empty token.
	Register(ctx context.Context, username, password string) (*models.User, string, error)
	// Method Login authenticates a user and creates a session.
	//
	// Unknown username and wrong password yield the same ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	// Method Logout destroys the session behind the token.
	// Logging out an already missing session succeeds.
	Logout(ctx context.Context, token string) error
	// Method CurrentUser resolves the user behind a session token.
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService  AuthService
	sessionTTL   time.Duration
	secureCookie bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, sessionTTL time.Duration, secureCookie bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		authService:  authService,
		sessionTTL:   sessionTTL,
		secureCookie: secureCookie,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(authMiddleware).Post("/logout", h.Logout)
	})
	r.Get("/user", h.CurrentUser)
}

// Register handles POST /api/auth/register
// @Summary Register a new user
// @Description Register a new user with username and password. Establishes a login session as a side effect.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} models.User "Created user"
// @Failure 400 {object} map[string]string "Invalid credentials or username taken"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.Logger.Error("failed to register user", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	h.RespondJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/login
// @Summary Login user
// @Description Authenticate with username and password. Sets the session cookie on success.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.User "Authenticated user"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.Logger.Warn("failed login attempt", zap.String("username", req.Username))
		h.RespondDomainError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	h.RespondJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout
// @Summary Logout user
// @Description Destroy the current session and clear the session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Session closed"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			h.Logger.Error("failed to logout", zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	h.clearSessionCookie(w)
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "session closed"})
}

// CurrentUser handles GET /api/user
// @Summary Get current user
// @Description Resolve the logged-in user from the session cookie. Answers 401, never 500, on a missing or stale session.
// @Tags auth
// @Produce json
// @Success 200 {object} models.User "Current user"
// @Failure 401 {object} map[string]string "Not logged in"
// @Router /user [get]
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		h.RespondError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	user, err := h.authService.CurrentUser(r.Context(), cookie.Value)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// setSessionCookie sets the session token as an HTTP-only cookie
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie
func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
