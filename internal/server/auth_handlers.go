package server

import (
	"portfolio/internal/models"
	"portfolio/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	token, user, err := s.userService.Login(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, fiber.StatusOK, "Login successful", fiber.Map{
		"token": token,
		"user":  user.Summary(),
	})
}

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(c.Context(), callerFromCtx(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, fiber.StatusCreated, "User registered successfully", user.Summary())
}

// VerifyAuth handles GET /api/auth/verify. The gate has already
// validated the token, so this just echoes the caller identity.
func (s *Server) VerifyAuth(c *fiber.Ctx) error {
	caller := callerFromCtx(c)
	return respondData(c, fiber.StatusOK, "Token is valid", fiber.Map{
		"id":    caller.UserID,
		"email": caller.Email,
		"role":  caller.Role,
	})
}

// GetProfile handles GET /api/auth/profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.Context(), callerFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", user)
}

// UpdateProfile handles PUT /api/auth/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req service.UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), callerFromCtx(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Profile updated successfully", user)
}

// ChangePassword handles PUT /api/auth/change-password
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.userService.ChangePassword(c.Context(), callerFromCtx(c), req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password changed successfully",
	})
}
