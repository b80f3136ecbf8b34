package handlers

import (
	"errors"

	"github.com/emreacar/identity-backend/internal/dto"
	"github.com/emreacar/identity-backend/internal/middleware"
	"github.com/emreacar/identity-backend/internal/services"
	"github.com/emreacar/identity-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := validation.Check(&req); fields != nil {
		return validationFailed(c, fields)
	}

	accessToken, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{AccessToken: accessToken})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := validation.Check(&req); fields != nil {
		return validationFailed(c, fields)
	}

	accessToken, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrEmailNotVerified):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c, err)
	}

	return c.JSON(dto.AuthResponse{AccessToken: accessToken})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	user, err := h.authService.Me(c.UserContext(), userID)
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

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")

	if err := h.authService.VerifyEmail(c.UserContext(), token); err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c, err)
	}

	return c.JSON(dto.MessageResponse{Message: "Email verified successfully."})
}

// SendResetPassword responds with the same body and status whether or not
// the address is registered.
func (h *AuthHandler) SendResetPassword(c *fiber.Ctx) error {
	var req dto.SendResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := validation.Check(&req); fields != nil {
		return validationFailed(c, fields)
	}

	if err := h.authService.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return internalError(c, err)
	}

	return c.JSON(dto.MessageResponse{
		Message: "If the email is registered, a reset link has been sent.",
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := validation.Check(&req); fields != nil {
		return validationFailed(c, fields)
	}

	if err := h.authService.ConfirmPasswordReset(c.UserContext(), req.Token, req.Password); err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c, err)
	}

	return c.JSON(dto.MessageResponse{Message: "Password has been reset."})
}
