package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/q815101630/flaska/internal/core/ports"
)

// BlogHandler handles blog authoring, listings and comments.
type BlogHandler struct {
	blogs    ports.BlogService
	comments ports.CommentService
}

func NewBlogHandler(blogs ports.BlogService, comments ports.CommentService) *BlogHandler {
	return &BlogHandler{blogs: blogs, comments: comments}
}

// Create publishes a new blog from a Markdown body.
//
// @Summary      Publish a blog
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBlogRequest  true  "Markdown body"
// @Success      201   {object}  blogResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /blogs [post]
func (h *BlogHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	blog, err := h.blogs.Create(c.Request().Context(), user, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toBlog(blog))
}

// Get returns a single blog with its rendered HTML.
//
// @Summary      Get a blog
// @Tags         blogs
// @Produce      json
// @Param        id  path      int  true  "Blog id"
// @Success      200  {object}  blogResponse
// @Failure      404  {object}  errorResponse
// @Router       /blogs/{id} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	blog, err := h.blogs.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBlog(blog))
}

// Update replaces a blog's body; only the author or an administrator may.
//
// @Summary      Edit a blog
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Blog id"
// @Param        body  body      createBlogRequest  true  "Markdown body"
// @Success      200   {object}  blogResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /blogs/{id} [put]
func (h *BlogHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req createBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	blog, err := h.blogs.Update(c.Request().Context(), user, id, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBlog(blog))
}

// List returns all blogs, newest first.
//
// @Summary      List blogs
// @Tags         blogs
// @Produce      json
// @Param        page  query     int  false  "Page number (1-based)"
// @Success      200   {object}  blogListResponse
// @Router       /blogs [get]
func (h *BlogHandler) List(c echo.Context) error {
	page, err := h.blogs.List(c.Request().Context(), queryPage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBlogList(page))
}

// ByAuthor returns the named user's blogs, newest first.
//
// @Summary      List a user's blogs
// @Tags         blogs
// @Produce      json
// @Param        name  path      string  true   "User name"
// @Param        page  query     int     false  "Page number (1-based)"
// @Success      200   {object}  blogListResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{name}/blogs [get]
func (h *BlogHandler) ByAuthor(c echo.Context) error {
	page, err := h.blogs.ByAuthor(c.Request().Context(), c.Param("name"), queryPage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBlogList(page))
}

// Feed returns blogs authored by users the current user follows.
//
// @Summary      List the followed-authors feed
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number (1-based)"
// @Success      200   {object}  blogListResponse
// @Failure      401   {object}  errorResponse
// @Router       /feed [get]
func (h *BlogHandler) Feed(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	page, err := h.blogs.Feed(c.Request().Context(), user, queryPage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBlogList(page))
}

// CreateComment posts a comment under a blog.
//
// @Summary      Comment on a blog
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Blog id"
// @Param        body  body      createCommentRequest  true  "Comment body"
// @Success      201   {object}  commentResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /blogs/{id}/comments [post]
func (h *BlogHandler) CreateComment(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	blogID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	comment, err := h.comments.Create(c.Request().Context(), user, blogID, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toComment(comment))
}

// ListComments returns a blog's comments, newest first, disabled ones
// included with their flag set.
//
// @Summary      List a blog's comments
// @Tags         comments
// @Produce      json
// @Param        id    path      int  true   "Blog id"
// @Param        page  query     int  false  "Page number (1-based)"
// @Success      200   {object}  commentListResponse
// @Failure      404   {object}  errorResponse
// @Router       /blogs/{id}/comments [get]
func (h *BlogHandler) ListComments(c echo.Context) error {
	blogID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	page, err := h.comments.ListByBlog(c.Request().Context(), blogID, queryPage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCommentList(page))
}

// DisableComment hides a comment from readers.
//
// @Summary      Disable a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Comment id"
// @Success      200  {object}  commentResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /comments/{id}/disable [patch]
func (h *BlogHandler) DisableComment(c echo.Context) error {
	return h.moderateComment(c, true)
}

// EnableComment restores a disabled comment.
//
// @Summary      Enable a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Comment id"
// @Success      200  {object}  commentResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /comments/{id}/enable [patch]
func (h *BlogHandler) EnableComment(c echo.Context) error {
	return h.moderateComment(c, false)
}

func (h *BlogHandler) moderateComment(c echo.Context, disabled bool) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.comments.SetDisabled(c.Request().Context(), user, id, disabled)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toComment(comment))
}
