package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/finance-tracker/backend/internal/auth"
)

type AuthHandler struct {
	PIN      string
	PINHash  string
	Sessions *auth.SessionManager
}

// NewAuthHandler создает обработчик входа по PIN.
func NewAuthHandler(pin, pinHash string, sessions *auth.SessionManager) *AuthHandler {
	return &AuthHandler{
		PIN:      pin,
		PINHash:  pinHash,
		Sessions: sessions,
	}
}

type LoginRequest struct {
	PIN string `json:"pin" validate:"required,min=4,max=12"`
}

type LoginResponse struct {
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Login проверяет PIN и выдает сессионный токен.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	pin := strings.TrimSpace(req.PIN)
	if !auth.VerifyPIN(pin, h.PIN, h.PINHash) {
		return unauthorized(c)
	}

	token, expiresAt, err := h.Sessions.NewSessionToken()
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		SessionToken: token,
		ExpiresAt:    expiresAt,
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": message})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
}

func conflict(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, map[string]string{"error": message})
}

func notFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, map[string]string{"error": message})
}

func serverError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
