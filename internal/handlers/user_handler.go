package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/matchday-hq/matchday/internal/dto"
	"github.com/matchday-hq/matchday/internal/services"
)

// UserHandler is the admin account surface: the approval queue and user
// edits. All routes behind AdminOnly.
type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List()
	if err != nil {
		return internalError(c)
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, userResponse(&users[i]))
	}
	return c.JSON(resp)
}

func (h *UserHandler) Approve(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	user, err := h.userService.Approve(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(userResponse(user))
}

// Reject removes the account and everything it owns.
func (h *UserHandler) Reject(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	if err := h.userService.Reject(id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(dto.MessageResponse{Message: "User removed"})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken):
			return conflict(c, err.Error())
		default:
			return badRequest(c, err.Error())
		}
	}
	return c.JSON(userResponse(user))
}
