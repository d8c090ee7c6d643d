package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"time"

	"github.com/custodia-labs/accountd/internal/core/domain"
	"github.com/custodia-labs/accountd/internal/core/ports/driving"
)

const refreshCookieName = "refreshToken"

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Message string            `json:"message" example:"Unauthorized"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks database and Redis connections)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A backend is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	if s.redis != nil {
		if err := s.redis.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Registration

// handleRegister godoc
// @Summary      Register user
// @Description  Create a new user account
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request  body      driving.RegisterRequest  true  "User details"
// @Success      201      {object}  domain.UserSummary
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      409      {object}  ErrorResponse  "User already exists"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /users [post]
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req driving.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if fieldErrs := validateRegistration(req); len(fieldErrs) > 0 {
		writeFieldErrors(w, fieldErrs)
		return
	}

	user, err := s.userService.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "User already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid input")
		default:
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, user.ToSummary())
}

// Auth endpoints

// handleLogin godoc
// @Summary      User login
// @Description  Authenticate with email and password. Returns a short-lived access token and sets the refresh token cookie.
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResult
// @Failure      400      {object}  ErrorResponse  "Invalid request body or malformed credentials"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if fieldErrs := validateCredentials(req); len(fieldErrs) > 0 {
		writeFieldErrors(w, fieldErrs)
		return
	}

	result, err := s.authService.Login(r.Context(), req)
	if err != nil {
		// Every login failure looks the same to the caller
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	s.setRefreshCookie(w, result.RefreshToken)
	writeJSON(w, http.StatusOK, result)
}

// handleRefresh godoc
// @Summary      Refresh access token
// @Description  Exchange the refresh token cookie for a new access token. The refresh token is rotated.
// @Tags         Authentication
// @Produce      json
// @Success      200  {object}  domain.RefreshResult
// @Failure      401  {object}  ErrorResponse  "Missing, invalid, expired, or superseded refresh token"
// @Router       /auth/refresh [get]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := s.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	s.setRefreshCookie(w, result.RefreshToken)
	writeJSON(w, http.StatusOK, result)
}

// handleLogout godoc
// @Summary      Logout user
// @Description  Clears the refresh token cookie
// @Tags         Authentication
// @Security     BearerAuth
// @Success      200  "Empty body"
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /auth/logout [get]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearRefreshCookie(w)
	w.WriteHeader(http.StatusOK)
}

// User endpoints

// handleGetMe godoc
// @Summary      Get current user
// @Description  Get the currently authenticated user's profile
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserSummary
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Router       /users/me [get]
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.userService.Get(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user.ToSummary())
}

// Input validation

func validateRegistration(req driving.RegisterRequest) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if len(req.Name) < 3 || len(req.Name) > 50 {
		errs["name"] = "must be between 3 and 50 characters"
	}
	validateEmailField(req.Email, errs)
	validatePasswordField(req.Password, errs)
	return errs
}

func validateCredentials(req domain.LoginRequest) domain.FieldErrors {
	errs := domain.FieldErrors{}
	validateEmailField(req.Email, errs)
	validatePasswordField(req.Password, errs)
	return errs
}

func validateEmailField(email string, errs domain.FieldErrors) {
	if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "must be a valid email address"
	}
}

func validatePasswordField(password string, errs domain.FieldErrors) {
	if len(password) < 8 || len(password) > 50 {
		errs["password"] = "must be between 8 and 50 characters"
	}
}

// Cookie helpers

func (s *Server) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.refreshTTL / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// Response helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Message: message})
}

func writeFieldErrors(w http.ResponseWriter, fieldErrs domain.FieldErrors) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Message: "validation failed",
		Errors:  fieldErrs,
	})
}
