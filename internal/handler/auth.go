package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vorapat/event-registry-api/internal/usecase"
	"github.com/vorapat/event-registry-api/pkg/httpx"
	"github.com/vorapat/event-registry-api/pkg/validate"
)

// AuthHandler serves the authentication and account endpoints.
type AuthHandler struct {
	authUsecase    usecase.AuthUsecase
	accountUsecase usecase.AccountUsecase
	validator      *validate.Validator
	logger         *zerolog.Logger
}

func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	accountUsecase usecase.AccountUsecase,
	validator *validate.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase:    authUsecase,
		accountUsecase: accountUsecase,
		validator:      validator,
		logger:         logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Client-supplied role or activity flags are deliberately absent here: a
// registration can never pick its own privileges.
type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	ID          string `json:"id"          validate:"required"`
	Token       string `json:"token"       validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.authUsecase.Login)
}

// LoginMobile handles POST /api/auth/login/mobile.
func (h *AuthHandler) LoginMobile(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.authUsecase.LoginMobile)
}

func (h *AuthHandler) login(
	w http.ResponseWriter,
	r *http.Request,
	doLogin func(ctx context.Context, params usecase.LoginParams) (*usecase.Tokens, error),
) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	tokens, err := doLogin(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			httpx.Error(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, usecase.ErrEmailNotVerified):
			httpx.Error(w, http.StatusForbidden, "email verification required")
		case errors.Is(err, usecase.ErrAccountDisabled):
			httpx.Error(w, http.StatusForbidden, "account is disabled")
		case errors.Is(err, usecase.ErrNotEligible):
			httpx.Error(w, http.StatusForbidden, "no active event registration")
		default:
			h.logger.Error().Err(err).Msg("failed to log in")
			httpx.Internal(w)
		}
		return
	}

	httpx.JSON(w, http.StatusOK, tokens)
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	result, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPasswordLength):
			httpx.Error(w, http.StatusUnprocessableEntity, "password must be between 8 and 25 characters")
		case errors.Is(err, usecase.ErrEmailTaken):
			httpx.Error(w, http.StatusConflict, "email is already registered")
		default:
			h.logger.Error().Err(err).Msg("failed to register user")
			httpx.Internal(w)
		}
		return
	}

	httpx.JSON(w, http.StatusCreated, result)
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	accessToken, err := h.authUsecase.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidRefreshToken):
			httpx.Error(w, http.StatusForbidden, "invalid or expired refresh token")
		case errors.Is(err, usecase.ErrUserNotFound):
			httpx.Error(w, http.StatusNotFound, "user not found")
		default:
			h.logger.Error().Err(err).Msg("failed to refresh token")
			httpx.Internal(w)
		}
		return
	}

	httpx.JSON(w, http.StatusOK, refreshResponse{AccessToken: accessToken})
}

// VerifyEmail handles GET /api/auth/verify?token=&id=.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	id := r.URL.Query().Get("id")
	if token == "" || id == "" {
		httpx.Error(w, http.StatusBadRequest, "token and id are required")
		return
	}

	if err := h.accountUsecase.VerifyEmail(r.Context(), id, token); err != nil {
		switch {
		case errors.Is(err, usecase.ErrTokenInvalid):
			httpx.Error(w, http.StatusBadRequest, "token is invalid or has expired")
		case errors.Is(err, usecase.ErrUserNotFound):
			httpx.Error(w, http.StatusNotFound, "user not found")
		default:
			h.logger.Error().Err(err).Msg("failed to verify email")
			httpx.Internal(w)
		}
		return
	}

	httpx.JSON(w, http.StatusOK, messageResponse{Message: "email verified"})
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := h.accountUsecase.ForgotPassword(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			httpx.Error(w, http.StatusNotFound, "no account with that email exists")
		default:
			h.logger.Error().Err(err).Msg("failed to request password reset")
			httpx.Internal(w)
		}
		return
	}

	httpx.JSON(w, http.StatusOK, messageResponse{Message: "password reset email sent"})
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := h.accountUsecase.ResetPassword(r.Context(), req.ID, req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, usecase.ErrPasswordLength):
			httpx.Error(w, http.StatusUnprocessableEntity, "password must be between 8 and 25 characters")
		case errors.Is(err, usecase.ErrTokenInvalid):
			httpx.Error(w, http.StatusBadRequest, "token is invalid or has expired")
		case errors.Is(err, usecase.ErrUserNotFound):
			httpx.Error(w, http.StatusNotFound, "user not found")
		default:
			h.logger.Error().Err(err).Msg("failed to reset password")
			httpx.Internal(w)
		}
		return
	}

	httpx.JSON(w, http.StatusOK, messageResponse{Message: "password has been reset"})
}
