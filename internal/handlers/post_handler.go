package handlers

import (
	"net/http"

	"github.com/gobook-app/backend/internal/models"
	"github.com/gobook-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	posts *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetAllPosts)
	g.GET("/posts/user/:userId", h.GetUserPosts)
	g.GET("/posts/:postId", h.GetPostByID)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:postId/like", h.LikePost)
	g.POST("/posts/share", h.SharePost)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.posts.Create(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetAllPosts retrieves all posts visible to the viewer
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	posts, err := h.posts.List(c.Request().Context(), c.QueryParam("userId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetUserPosts retrieves one user's posts visible to the viewer
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	posts, err := h.posts.ListByUser(c.Request().Context(), c.Param("userId"), c.QueryParam("viewerId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPostByID retrieves a single post
func (h *PostHandler) GetPostByID(c echo.Context) error {
	post, err := h.posts.Get(c.Request().Context(), c.Param("postId"), c.QueryParam("viewerId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// UpdatePost updates a post's content and privacy
func (h *PostHandler) UpdatePost(c echo.Context) error {
	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.posts.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post and its comment forest
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId query parameter is required")
	}

	if err := h.posts.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusOK)
}

// LikePost toggles a like on a post
func (h *PostHandler) LikePost(c echo.Context) error {
	var req models.LikePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.posts.Like(c.Request().Context(), c.Param("postId"), req.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// SharePost creates a new post referencing an existing one
func (h *PostHandler) SharePost(c echo.Context) error {
	var req models.SharePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.posts.Share(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, post)
}
