package user

import (
	"vfx-dashboard/internal/common/api"
	"vfx-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	UserService UserService
}

func NewUserController(userService UserService) *UserController {
	return &UserController{
		UserService: userService,
	}
}

// GetProfile godoc
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Success      200  {object} map[string]interface{}
// @Failure      401  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/users/profile [get]
func (ctrl *UserController) GetProfile(c *fiber.Ctx) error {
	user, err := ctrl.UserService.GetProfile(c.UserContext(), middleware.GetClaims(c))
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, user)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Description  Replaces the editable profile fields of the caller
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input body ProfileRequest true "Profile"
// @Success      200  {object} map[string]interface{}
// @Failure      400  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/users/profile [put]
func (ctrl *UserController) UpdateProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := api.Bind(c, &req); err != nil {
		return err
	}

	user, err := ctrl.UserService.UpdateProfile(c.UserContext(), middleware.GetClaims(c), &req)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, user)
}

// CompleteOnboarding godoc
// @Summary      Complete onboarding
// @Description  Saves the profile and marks onboarding as completed
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input body ProfileRequest true "Profile"
// @Success      200  {object} map[string]interface{}
// @Failure      400  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/users/onboarding [post]
func (ctrl *UserController) CompleteOnboarding(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := api.Bind(c, &req); err != nil {
		return err
	}

	user, err := ctrl.UserService.CompleteOnboarding(c.UserContext(), middleware.GetClaims(c), &req)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, user)
}

// ListUsers godoc
// @Summary      List users
// @Description  Paginated members of the caller's organization
// @Tags         users
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(20)
// @Param        role query string false "Filter by role"
// @Success      200  {object} map[string]interface{}
// @Failure      403  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/users [get]
func (ctrl *UserController) ListUsers(c *fiber.Ctx) error {
	page, limit := api.Pagination(c)

	users, total, err := ctrl.UserService.ListUsers(c.UserContext(), middleware.GetClaims(c), c.Query("role"), page, limit)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, api.Page{Items: users, Total: total, Page: page, Limit: limit})
}

// GetUser godoc
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object} map[string]interface{}
// @Failure      404  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/users/{id} [get]
func (ctrl *UserController) GetUser(c *fiber.Ctx) error {
	user, err := ctrl.UserService.GetUser(c.UserContext(), middleware.GetClaims(c), c.Params("id"))
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, user)
}

// SetAdmin godoc
// @Summary      Grant or revoke admin rights
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        input body SetAdminRequest true "Admin flag"
// @Success      200  {object} map[string]interface{}
// @Failure      403  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/users/{id}/admin [put]
func (ctrl *UserController) SetAdmin(c *fiber.Ctx) error {
	var req SetAdminRequest
	if err := api.Bind(c, &req); err != nil {
		return err
	}

	if err := ctrl.UserService.SetAdmin(c.UserContext(), middleware.GetClaims(c), c.Params("id"), *req.IsAdmin); err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, fiber.Map{"isAdmin": *req.IsAdmin})
}

// DeleteUser godoc
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object} map[string]interface{}
// @Failure      404  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	if err := ctrl.UserService.DeleteUser(c.UserContext(), middleware.GetClaims(c), c.Params("id")); err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, fiber.Map{"message": "User deleted"})
}
