package handlers

import (
	"net/http"

	"github.com/gobook-app/backend/internal/models"
	"github.com/gobook-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler handles HTTP requests related to friendships
type FriendshipHandler struct {
	relationships *services.RelationshipService
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(relationships *services.RelationshipService) *FriendshipHandler {
	return &FriendshipHandler{relationships: relationships}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/friends/request", h.SendFriendRequest)
	g.POST("/friends/respond", h.RespondToFriendRequest)
	g.DELETE("/friends/:userId/:friendId", h.Unfriend)
	g.GET("/friends/list/:userId", h.GetFriendsList)
	g.GET("/friends/requests/:userId", h.GetPendingRequests)
	g.GET("/friends/suggestions/:userId", h.GetFriendSuggestions)
}

// SendFriendRequest handles sending a friend request
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	var req models.SendFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rel, err := h.relationships.SendRequest(c.Request().Context(), req.UserID, req.FriendID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, rel)
}

// RespondToFriendRequest accepts or rejects a pending friend request
func (h *FriendshipHandler) RespondToFriendRequest(c echo.Context) error {
	var req models.RespondFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rel, err := h.relationships.Respond(c.Request().Context(), req.RequestID, req.Response)
	if err != nil {
		return httpError(err)
	}
	if rel == nil {
		return c.JSON(http.StatusOK, map[string]string{"message": "Friend request rejected"})
	}
	return c.JSON(http.StatusOK, rel)
}

// Unfriend removes a friendship in both directions
func (h *FriendshipHandler) Unfriend(c echo.Context) error {
	userID := c.Param("userId")
	friendID := c.Param("friendId")

	if err := h.relationships.Unfriend(c.Request().Context(), userID, friendID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Unfriended successfully"})
}

// GetFriendsList retrieves the list of accepted friends for a user
func (h *FriendshipHandler) GetFriendsList(c echo.Context) error {
	friends, err := h.relationships.ListFriends(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, friends)
}

// GetPendingRequests retrieves pending friend requests targeting a user
func (h *FriendshipHandler) GetPendingRequests(c echo.Context) error {
	requests, err := h.relationships.ListPendingRequests(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, requests)
}

// GetFriendSuggestions retrieves up to 10 friend suggestions for a user
func (h *FriendshipHandler) GetFriendSuggestions(c echo.Context) error {
	suggestions, err := h.relationships.Suggest(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, suggestions)
}
