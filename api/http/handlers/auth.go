package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/skill-bridge/server/api/http/presenter"
	"github.com/skill-bridge/server/pkg/company"
)

type AuthHandler struct {
	auth  company.AuthUseCase
	reset company.PasswordResetUseCase
}

func NewAuthHandler(auth company.AuthUseCase, reset company.PasswordResetUseCase) *AuthHandler {
	return &AuthHandler{auth: auth, reset: reset}
}

type registerCompanyRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Image    string `json:"image"`
}

func companyView(c company.Company) fiber.Map {
	return fiber.Map{
		"id":       c.ID.String(),
		"name":     c.Name,
		"email":    c.Email,
		"image":    c.Image,
		"website":  c.Website,
		"location": c.Location,
	}
}

// Register creates a recruiter account and issues a token.
// @Summary Register company
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerCompanyRequest true "registration payload"
// @Success 201 {object} presenter.Response
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /company/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "name, email and password are required")
	}

	result, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password, req.Image)
	if err != nil {
		switch {
		case errors.Is(err, company.ErrAlreadyExists):
			return presenter.Error(c, http.StatusConflict, "company already registered")
		case errors.Is(err, company.ErrInvalidCredentials):
			return presenter.Error(c, http.StatusBadRequest, "name, email and password are required")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to register company")
		}
	}

	return presenter.Data(c, http.StatusCreated, fiber.Map{
		"company": companyView(result.Company),
		"token":   result.Token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a recruiter account.
// @Summary Company login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} presenter.Response
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /company/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}

	result, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, company.ErrInvalidCredentials) || errors.Is(err, company.ErrNotFound) {
			return presenter.Error(c, http.StatusUnauthorized, "invalid email or password")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to login")
	}

	return presenter.Data(c, http.StatusOK, fiber.Map{
		"company": companyView(result.Company),
		"token":   result.Token,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword emails a one-time reset code.
// @Summary Request password reset OTP
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body forgotPasswordRequest true "account email"
// @Success 200 {object} presenter.Response
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" {
		return presenter.Error(c, http.StatusBadRequest, "email is required")
	}

	if err := h.reset.RequestReset(c.Context(), req.Email); err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "no account found with this email")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to send OTP")
	}
	return presenter.Message(c, http.StatusOK, "OTP sent to your email")
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword verifies the OTP and sets a new password.
// @Summary Reset password with OTP
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body resetPasswordRequest true "reset payload"
// @Success 200 {object} presenter.Response
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.OTP) == "" || req.NewPassword == "" {
		return presenter.Error(c, http.StatusBadRequest, "email, otp and newPassword are required")
	}

	err := h.reset.ResetPassword(c.Context(), req.Email, req.OTP, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, company.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "no account found with this email")
		case errors.Is(err, company.ErrNoResetRequest),
			errors.Is(err, company.ErrTooManyAttempts),
			errors.Is(err, company.ErrInvalidOTP):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to reset password")
		}
	}
	return presenter.Message(c, http.StatusOK, "password reset successfully")
}
