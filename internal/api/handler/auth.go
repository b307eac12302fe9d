package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/erppro/identity/internal/api/apierr"
	"github.com/erppro/identity/internal/api/middleware"
	"github.com/erppro/identity/internal/api/request"
	"github.com/erppro/identity/internal/api/response"
	"github.com/erppro/identity/internal/model"
	"github.com/erppro/identity/internal/services/policy"
	"github.com/erppro/identity/internal/services/session"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	sessions *session.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *session.Service) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if request.MissingField(&req) != "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("email and password are required"))
		return
	}

	account, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "login successful",
		response.AuthFromState(account, h.sessions.State().Token))
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if field := request.MissingField(&req); field != "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError(field+" is required"))
		return
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("birthdate must be in YYYY-MM-DD format"))
		return
	}

	account, err := h.sessions.Register(r.Context(), model.Registration{
		Username:        req.Username,
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Phone:           req.Phone,
		BirthDate:       birthDate,
		Address:         req.Address,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "account created successfully",
		response.AuthFromState(account, h.sessions.State().Token))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout()
	response.Success(w, http.StatusOK, "logged out", nil)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())
	response.Success(w, http.StatusOK, "authenticated", response.AccountFromModel(account))
}

// PasswordCheck handles POST /api/v1/password/check.
// The breakdown is advisory feedback for a strength meter; registration
// still applies the policy itself.
func (h *AuthHandler) PasswordCheck(w http.ResponseWriter, r *http.Request) {
	var req request.PasswordCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	eval := policy.Evaluate(req.Password)
	response.Success(w, http.StatusOK, "password evaluated",
		response.PasswordCheckFromEvaluation(eval))
}
