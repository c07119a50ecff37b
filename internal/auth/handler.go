package auth

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shifa-care/shifa_api/internal/apperr"
	"github.com/shifa-care/shifa_api/internal/identity"
)

// Handler exposes auth endpoints for register/login/refresh/change-password.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type registerRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Phone     string    `json:"phone"`
	FullName  string    `json:"full_name,omitempty"`
	Email     string    `json:"email,omitempty"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	IsDoctor  bool      `json:"is_doctor"`
	CreatedAt time.Time `json:"created_at"`
}

type tokenResponse struct {
	TokenPair
	User userResponse `json:"user"`
}

func toUserResponse(user identity.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Phone:     user.Phone,
		FullName:  user.FullName,
		Email:     user.Email,
		IsActive:  user.IsActive,
		IsAdmin:   user.IsAdmin,
		IsDoctor:  user.IsDoctor,
		CreatedAt: user.CreatedAt,
	}
}

// Register creates a new identity and returns a token pair.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body").WithCause(err)
	}

	user, pair, err := h.svc.Register(c.UserContext(), RegisterInput{
		Phone:    req.Phone,
		Password: req.Password,
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(tokenResponse{TokenPair: pair, User: toUserResponse(user)})
}

// Login validates credentials and returns a token pair.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body").WithCause(err)
	}

	user, pair, err := h.svc.Login(c.UserContext(), req.Phone, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(tokenResponse{TokenPair: pair, User: toUserResponse(user)})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh issues a new access token using a valid refresh token.
func (h *Handler) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body").WithCause(err)
	}

	token, expiresIn, err := h.svc.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   expiresIn,
	})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(identity.User)
	if !ok {
		return apperr.Authentication("not authenticated")
	}
	return c.Status(http.StatusOK).JSON(toUserResponse(user))
}

type changePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ChangePassword replaces the caller's credential after re-verification.
func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(identity.User)
	if !ok {
		return apperr.Authentication("not authenticated")
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body").WithCause(err)
	}

	if err := h.svc.ChangePassword(c.UserContext(), user.ID, req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "password changed successfully"})
}

// Logout acknowledges the request. Tokens are stateless, so the client simply
// discards them.
func (h *Handler) Logout(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "logout successful"})
}
