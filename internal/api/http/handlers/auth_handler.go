package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/upm-platform/complaint-service/internal/api/dto"
	"github.com/upm-platform/complaint-service/internal/auth"
	"github.com/upm-platform/complaint-service/internal/i18n"
	"github.com/upm-platform/complaint-service/internal/service"
	apperrors "github.com/upm-platform/complaint-service/pkg/util"
)

// AuthHandler exposes sign-up, login and logout.
type AuthHandler struct {
	auth       *service.AuthService
	sessionTTL time.Duration
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: authService, sessionTTL: sessionTTL}
}

// SignUp handles POST /auth/sign-up.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("", "invalid payload")
	}

	lang := auth.LangFromContext(c)
	result, err := h.auth.Register(c.Context(), service.RegisterInput{
		Email:           req.Email,
		FirstName:       req.FirstName,
		Password:        req.Password1,
		PasswordConfirm: req.Password2,
		Lang:            lang,
	})
	if err != nil {
		return err
	}

	h.setSessionCookie(c, result.Session.Token)
	return c.Status(http.StatusCreated).JSON(authResponse(result, lang))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("", "invalid payload")
	}

	lang := auth.LangFromContext(c)
	result, err := h.auth.Login(c.Context(), req.Email, req.Password, lang)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, result.Session.Token)
	return c.JSON(authResponse(result, lang))
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.Context(), c.Cookies(auth.SessionCookie)); err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return c.JSON(fiber.Map{"success": true})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

func authResponse(result *service.AuthResult, lang string) dto.AuthResponse {
	return dto.AuthResponse{
		User: dto.AuthUser{
			ID:        result.User.ID,
			Email:     result.User.Email,
			FirstName: result.User.FirstName,
			UserType:  string(result.User.UserType),
		},
		Message:    i18n.T(lang, result.MessageKey),
		RedirectTo: result.RedirectTo,
	}
}
