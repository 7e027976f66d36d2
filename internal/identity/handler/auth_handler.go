package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/hadinata/identity-service/internal/errors"
	"github.com/hadinata/identity-service/internal/identity/domain"
	"github.com/hadinata/identity-service/internal/identity/dto"
	"github.com/hadinata/identity-service/internal/identity/service"
	"github.com/hadinata/identity-service/pkg/constant"
)

const loginCookieTTL = 7 * 24 * time.Hour

type AuthHandler struct {
	userService  *service.UserService
	tokenService service.TokenGenerator
	env          string
	logger       *slog.Logger
}

func NewAuthHandler(userService *service.UserService, tokenService service.TokenGenerator,
	env string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		env:          env,
		logger:       logger,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return h.fail(c, apperrors.New(apperrors.KindInvalid, "invalid input"))
	}
	if err := input.Validate(); err != nil {
		return h.fail(c, err)
	}

	user, err := h.userService.Register(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.Response{
		Success: true,
		Message: "User registered successfully. Please check your email for verification OTP.",
		Data:    dto.NewUserOutput(user),
	})
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var input dto.VerifyEmailInput
	if err := c.BodyParser(&input); err != nil {
		return h.fail(c, apperrors.New(apperrors.KindInvalid, "invalid input"))
	}
	if err := input.Validate(); err != nil {
		return h.fail(c, err)
	}

	user, token, err := h.userService.VerifyEmail(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.Response{
		Success: true,
		Message: "Email verified successfully",
		Token:   token,
		Data:    dto.NewUserOutput(user),
	})
}

func (h *AuthHandler) ResendOtp(c *fiber.Ctx) error {
	var input dto.ResendOtpInput
	if err := c.BodyParser(&input); err != nil {
		return h.fail(c, apperrors.New(apperrors.KindInvalid, "invalid input"))
	}
	if err := input.Validate(); err != nil {
		return h.fail(c, err)
	}

	if err := h.userService.ResendOtp(c.UserContext(), input); err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.Response{
		Success: true,
		Message: "OTP sent successfully. Please check your email.",
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return h.fail(c, apperrors.New(apperrors.KindInvalid, "invalid input"))
	}
	if err := input.Validate(); err != nil {
		return h.fail(c, err)
	}

	user, token, err := h.userService.Login(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     constant.TokenCookieName,
		Value:    token,
		Expires:  time.Now().Add(loginCookieTTL),
		HTTPOnly: true,
		Secure:   h.env == "production",
	})

	return c.Status(fiber.StatusOK).JSON(dto.Response{
		Success: true,
		Message: "Logged in successfully",
		Token:   token,
		Data:    dto.NewUserOutput(user),
	})
}

// Logout clears the client-held cookie. Tokens are self-contained and are
// not revoked server-side; an already-issued token stays valid until it
// expires.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     constant.TokenCookieName,
		Value:    "none",
		Expires:  time.Now().Add(10 * time.Second),
		HTTPOnly: true,
	})

	return c.Status(fiber.StatusOK).JSON(dto.Response{
		Success: true,
		Message: "Logged out successfully",
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := c.Locals(constant.ContextUserKey).(*domain.User)
	if !ok {
		return h.fail(c, apperrors.New(apperrors.KindUnauthorized, "not authorized"))
	}

	return c.Status(fiber.StatusOK).JSON(dto.Response{
		Success: true,
		Data:    dto.NewUserOutput(user),
	})
}

// fail maps a core error to the envelope. Untyped errors are treated as
// dependency failures; production responses hide the underlying cause.
func (h *AuthHandler) fail(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Wrap(apperrors.KindDependency, "something went wrong", err)
	}

	status := apperrors.StatusCode(appErr.Kind)
	if status >= fiber.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.Path(), "error", err)
	}

	resp := dto.Response{Success: false, Message: appErr.Message}
	if h.env != "production" && appErr.Err != nil {
		resp.Error = appErr.Err.Error()
	}

	return c.Status(status).JSON(resp)
}
