package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hadinata/identity-service/internal/identity/dto"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	api := app.Group("/api")
	api.Get("/health", Health)

	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/verify-email", h.VerifyEmail)
	auth.Post("/resend-otp", h.ResendOtp)
	auth.Post("/login", h.Login)

	// Protected routes
	auth.Post("/logout", h.Protect(), h.Logout)
	auth.Get("/me", h.Protect(), h.Me)

	app.Use(notFound)
}

func Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"message":   "API is working",
		"timestamp": time.Now(),
	})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.Response{
		Success: false,
		Message: "route not found",
	})
}
