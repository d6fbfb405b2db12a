package auth

import (
	"vfx-dashboard/internal/common/api"
	"vfx-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	AuthService AuthService
}

func NewAuthController(authService AuthService) *AuthController {
	return &AuthController{
		AuthService: authService,
	}
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates the account and its organization if the organization is new
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterRequest true "Register Input"
// @Success      201  {object} AuthResponse
// @Failure      400  {object} map[string]interface{}
// @Failure      409  {object} map[string]interface{} "Email already registered"
// @Failure      429  {object} map[string]interface{}
// @Router       /api/auth/register [post]
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := api.Bind(c, &req); err != nil {
		return err
	}

	res, err := ctrl.AuthService.Register(c.UserContext(), &req)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusCreated, res)
}

// Login godoc
// @Summary      Login
// @Description  Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginRequest true "Login Input"
// @Success      200  {object} AuthResponse
// @Failure      400  {object} map[string]interface{}
// @Failure      401  {object} map[string]interface{} "Invalid credentials"
// @Failure      429  {object} map[string]interface{}
// @Router       /api/auth/login [post]
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := api.Bind(c, &req); err != nil {
		return err
	}

	res, err := ctrl.AuthService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, res)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object} map[string]interface{}
// @Failure      401  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/auth/me [get]
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	u, err := ctrl.AuthService.Me(c.UserContext(), middleware.GetClaims(c))
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, u)
}

// ChangePassword godoc
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body ChangePasswordRequest true "Passwords"
// @Success      200  {object} map[string]interface{}
// @Failure      401  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/auth/password [put]
func (ctrl *AuthController) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := api.Bind(c, &req); err != nil {
		return err
	}

	if err := ctrl.AuthService.ChangePassword(c.UserContext(), middleware.GetClaims(c), req.CurrentPassword, req.NewPassword); err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, fiber.Map{"message": "Password updated"})
}
