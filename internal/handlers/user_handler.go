package handlers

import (
	"errors"

	"github.com/emreacar/identity-backend/internal/dto"
	"github.com/emreacar/identity-backend/internal/services"
	"github.com/emreacar/identity-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UserHandler serves the admin account management endpoints.
type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	q := dto.ListUsersQuery{Take: 10}
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "Invalid query parameters")
	}
	if fields := validation.Check(&q); fields != nil {
		return validationFailed(c, fields)
	}

	users, total, err := h.userService.List(c.UserContext(), &q)
	if err != nil {
		return internalError(c, err)
	}

	data := make([]dto.UserResponse, len(users))
	for i := range users {
		data[i] = dto.NewUserResponse(&users[i])
	}
	return c.JSON(dto.ListUsersResponse{Data: data, Total: total})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := validation.Check(&req); fields != nil {
		return validationFailed(c, fields)
	}

	user, err := h.userService.Update(c.UserContext(), id, &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c, err)
	}

	return c.JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	if err := h.userService.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c, err)
	}

	return c.JSON(dto.MessageResponse{Message: "User deleted successfully."})
}
