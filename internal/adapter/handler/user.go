package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	userDTO "github.com/johnquangdev/sales-review/internal/adapter/dto/user"
	"github.com/johnquangdev/sales-review/internal/adapter/presenter"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	userUsecase "github.com/johnquangdev/sales-review/internal/usecase/user"
)

// User handles account management requests. Every route except
// ChangePassword is mounted behind users:manage.
type User struct {
	userService *userUsecase.Service
	logger      *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *userUsecase.Service, logger *zap.Logger) *User {
	return &User{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers handles GET /users
// @Summary      List users
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query    int  false  "Page size (1-100)"  default(20)
// @Param        offset  query    int  false  "Offset"  default(0)
// @Success      200     {array}  entities.PublicUser
// @Failure      403     {object}  map[string]interface{}  "Missing permission"
// @Router       /users [get]
func (h *User) ListUsers(c echo.Context) error {
	limit, offset, err := pageParams(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	users, err := h.userService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToUserResponses(users))
}

// CreateUser handles POST /users
// @Summary      Create a password account
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      userDTO.CreateUserRequest  true  "Account"
// @Success      201      {object}  entities.PublicUser
// @Failure      400      {object}  map[string]interface{}  "Validation failed"
// @Failure      409      {object}  map[string]interface{}  "Username taken"
// @Router       /users [post]
func (h *User) CreateUser(c echo.Context) error {
	var req userDTO.CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	u, err := h.userService.Create(c.Request().Context(), userUsecase.CreateInput{
		Username:   req.Username,
		Name:       req.Name,
		Password:   req.Password,
		Role:       entities.UserRole(req.Role),
		Department: req.Department,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToUserResponse(u))
}

// UpdateRole handles PATCH /users/:id/role
// @Summary      Change a user's role
// @Description  Admins cannot change their own role.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "User ID (UUID)"
// @Param        request  body      userDTO.UpdateRoleRequest  true  "Role"
// @Success      200      {object}  entities.PublicUser
// @Failure      404      {object}  map[string]interface{}  "User not found"
// @Failure      409      {object}  map[string]interface{}  "Own role"
// @Router       /users/{id}/role [patch]
func (h *User) UpdateRole(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req userDTO.UpdateRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	u, err := h.userService.UpdateRole(c.Request().Context(), actor.ID, id, entities.UserRole(req.Role))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToUserResponse(u))
}

// DeleteUser handles DELETE /users/:id
// @Summary      Delete a password account
// @Description  Admins cannot delete themselves.
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}  "User not found"
// @Failure      409  {object}  map[string]interface{}  "Own account"
// @Router       /users/{id} [delete]
func (h *User) DeleteUser(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.userService.Delete(c.Request().Context(), actor.ID, id); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}

// ResetPassword handles POST /users/:id/password
// @Summary      Reset a user's password
// @Description  Every session of the user is revoked.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "User ID (UUID)"
// @Param        request  body      userDTO.ResetPasswordRequest  true  "New password"
// @Success      200      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]interface{}  "User not found"
// @Router       /users/{id}/password [post]
func (h *User) ResetPassword(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req userDTO.ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.userService.ResetPassword(c.Request().Context(), id, req.NewPassword); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"message": "Password reset"})
}

// ChangePassword handles POST /users/me/password
// @Summary      Change own password
// @Description  Every session of the caller is revoked; sign in again afterwards.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      userDTO.ChangePasswordRequest  true  "Passwords"
// @Success      200      {object}  map[string]interface{}
// @Failure      401      {object}  map[string]interface{}  "Wrong current password"
// @Router       /users/me/password [post]
func (h *User) ChangePassword(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req userDTO.ChangePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.userService.ChangePassword(c.Request().Context(), actor.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"message": "Password changed"})
}
