package handlers

import (
	"net/http"

	"github.com/gobook-app/backend/internal/models"
	"github.com/gobook-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:postId/comments", h.AddComment)
	g.DELETE("/posts/:postId/comments/:commentId", h.DeleteComment)
	g.GET("/comments/:commentId", h.GetCommentByID)
	g.POST("/comments/:commentId/like", h.LikeComment)
}

// AddComment adds a comment or reply to a post and returns the updated aggregate
func (h *CommentHandler) AddComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.comments.AddComment(c.Request().Context(), c.Param("postId"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeleteComment removes a single comment node and returns the updated aggregate
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId query parameter is required")
	}

	post, err := h.comments.DeleteComment(c.Request().Context(), c.Param("postId"), c.Param("commentId"), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetCommentByID looks a comment up by id across all posts
func (h *CommentHandler) GetCommentByID(c echo.Context) error {
	comment, postID, err := h.comments.GetComment(c.Request().Context(), c.Param("commentId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"id":        comment.ID,
		"content":   comment.Content,
		"userId":    comment.UserID,
		"createdAt": comment.CreatedAt,
		"parentId":  comment.ParentID,
		"postId":    postID,
	})
}

// LikeComment toggles a like on a comment
func (h *CommentHandler) LikeComment(c echo.Context) error {
	var req models.LikeCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	liked, likes, err := h.comments.LikeComment(c.Request().Context(), c.Param("commentId"), req.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"liked":   liked,
		"likes":   likes,
	})
}
