package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/matchday-hq/matchday/internal/dto"
	"github.com/matchday-hq/matchday/internal/middleware"
	"github.com/matchday-hq/matchday/internal/models"
	"github.com/matchday-hq/matchday/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func userResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		Approved:  user.Approved,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
	}
}

// Register creates an account that stays locked until an admin approves
// it, so no token is issued here.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken):
			return conflict(c, err.Error())
		case errors.Is(err, services.ErrInvalidRole):
			return unprocessable(c, err.Error())
		default:
			return badRequest(c, err.Error())
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration received. An administrator must approve your account before you can sign in.",
		"user":    userResponse(user),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	token, user, err := h.authService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrApprovalPending):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Code: "approval_pending",
				Message: "Your account has not been approved yet. Please contact an administrator.",
			})
		default:
			return internalError(c)
		}
	}

	return c.JSON(dto.AuthResponse{
		AccessToken: token,
		User:        userResponse(user),
	})
}

// Logout is stateless with bearer tokens; the client discards the token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(userResponse(user))
}
