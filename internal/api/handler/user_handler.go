package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/q815101630/flaska/internal/core/ports"
)

// UserHandler handles profile reads and edits, the follow graph and the
// administrative account endpoints.
type UserHandler struct {
	users   ports.UserService
	follows ports.FollowService
}

func NewUserHandler(users ports.UserService, follows ports.FollowService) *UserHandler {
	return &UserHandler{users: users, follows: follows}
}

// Me returns the logged-in account, email included.
//
// @Summary      Get the current account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOwnUser(user))
}

// Profile returns a user's public profile.
//
// @Summary      Get a profile by name
// @Tags         users
// @Produce      json
// @Param        name  path      string  true  "User name"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{name} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	user, err := h.users.GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPublicUser(user))
}

// UpdateProfile applies the self-service profile fields.
//
// @Summary      Edit the current profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.users.UpdateProfile(c.Request().Context(), user, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOwnUser(updated))
}

// AdminUpdateProfile edits any account, role and confirmation included.
//
// @Summary      Edit an account as administrator
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                        true  "User id"
// @Param        body  body      adminUpdateProfileRequest  true  "Profile fields"
// @Success      200   {object}  userResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/users/{id} [put]
func (h *UserHandler) AdminUpdateProfile(c echo.Context) error {
	targetID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req adminUpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.users.AdminUpdateProfile(c.Request().Context(), targetID, ports.AdminProfileInput{
		ProfileInput: req.toInput(),
		RoleID:       req.RoleID,
		Confirmed:    req.Confirmed,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOwnUser(updated))
}

// AdminDelete removes an account and everything it authored.
//
// @Summary      Delete an account as administrator
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [delete]
func (h *UserHandler) AdminDelete(c echo.Context) error {
	targetID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Request().Context(), targetID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Follow adds a follow edge from the current user to the named user.
//
// @Summary      Follow a user
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "User name"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /users/{name}/follow [post]
func (h *UserHandler) Follow(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.follows.Follow(c.Request().Context(), user, c.Param("name")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "following " + c.Param("name")})
}

// Unfollow removes the follow edge if present.
//
// @Summary      Unfollow a user
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "User name"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{name}/follow [delete]
func (h *UserHandler) Unfollow(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.follows.Unfollow(c.Request().Context(), user, c.Param("name")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "unfollowed " + c.Param("name")})
}

// FollowStatus reports the edge directions between the current user and the
// named user.
//
// @Summary      Follow status relative to the current user
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "User name"
// @Success      200   {object}  followStatusResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{name}/follow [get]
func (h *UserHandler) FollowStatus(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	other, err := h.users.GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}

	following, err := h.follows.IsFollowing(c.Request().Context(), user.ID, other.ID)
	if err != nil {
		return err
	}
	followedBy, err := h.follows.IsFollowedBy(c.Request().Context(), user.ID, other.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, followStatusResponse{Following: following, FollowedBy: followedBy})
}

// Followers lists the users following the named user, newest edge first.
//
// @Summary      List a user's followers
// @Tags         follows
// @Produce      json
// @Param        name  path      string  true   "User name"
// @Param        page  query     int     false  "Page number (1-based)"
// @Success      200   {object}  followListResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{name}/followers [get]
func (h *UserHandler) Followers(c echo.Context) error {
	page, err := h.follows.Followers(c.Request().Context(), c.Param("name"), queryPage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFollowList(page))
}

// Following lists the users the named user follows, newest edge first.
//
// @Summary      List who a user follows
// @Tags         follows
// @Produce      json
// @Param        name  path      string  true   "User name"
// @Param        page  query     int     false  "Page number (1-based)"
// @Success      200   {object}  followListResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{name}/following [get]
func (h *UserHandler) Following(c echo.Context) error {
	page, err := h.follows.Following(c.Request().Context(), c.Param("name"), queryPage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFollowList(page))
}
