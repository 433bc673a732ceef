package handlers

import (
	"log"

	"adventureworks/internal/apperrors"
	"adventureworks/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.HandleSignup)
	authRoutes.Post("/signin", h.HandleSignin)
	authRoutes.Post("/google", h.HandleGoogle)
}

// SignupRequest is the request body for account creation.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
}

// HandleSignup creates an account and issues a session token.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": apperrors.ErrMissingFields.Error()})
	}

	user, token, err := h.authService.SignUp(req.Email, req.Password, req.Name)
	if err != nil {
		log.Printf("Error signing up %s: %v", req.Email, err)
		status, msg := apperrors.Classify(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(fiber.Map{"token": token, "user": user})
}

// SigninRequest is the request body for password sign-in.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignin authenticates by email and password and issues a
// session token.
func (h *AuthHandler) HandleSignin(c *fiber.Ctx) error {
	var req SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, token, err := h.authService.SignIn(req.Email, req.Password)
	if err != nil {
		status, msg := apperrors.Classify(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(fiber.Map{"token": token, "user": user})
}

// GoogleRequest is the request body for Google sign-in.
type GoogleRequest struct {
	IDToken string `json:"idToken"`
}

// HandleGoogle verifies a Google ID token, creates or fetches the
// matching account, and issues a session token.
func (h *AuthHandler) HandleGoogle(c *fiber.Ctx) error {
	var req GoogleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.IDToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": apperrors.ErrMissingIDToken.Error()})
	}

	user, token, err := h.authService.SignInWithGoogle(c.Context(), req.IDToken)
	if err != nil {
		log.Printf("Error on Google sign-in: %v", err)
		status, msg := apperrors.Classify(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(fiber.Map{"token": token, "user": user})
}

// HandleMe returns the authenticated account's profile. The password
// hash never serializes.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		status, msg := apperrors.Classify(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	return c.JSON(user)
}
