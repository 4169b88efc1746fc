package handlers

import (
	"errors"
	"net/http"

	"github.com/gobook-app/backend/internal/models"
	"github.com/gobook-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles HTTP requests related to notifications
type NotificationHandler struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications repositories.NotificationRepository, users repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		users:         users,
	}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications/unread-count/:userId", h.GetUnreadCount)
	g.GET("/notifications/:userId", h.GetNotifications)
	g.PUT("/notifications/mark-read/:notificationId", h.MarkAsRead)
	g.PUT("/notifications/mark-all-read/:userId", h.MarkAllAsRead)
	g.DELETE("/notifications/all/:userId", h.DeleteAllNotifications)
	g.DELETE("/notifications/:notificationId", h.DeleteNotification)
}

// GetNotifications retrieves a user's notifications, newest first, each joined
// with the sender's profile when the directory still has one
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	notifications, err := h.notifications.ListByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return httpError(err)
	}

	result := []models.NotificationWithSender{}
	for _, notification := range notifications {
		entry := models.NotificationWithSender{Notification: notification}
		if sender, err := h.users.GetUserByID(notification.SenderID); err == nil {
			entry.Sender = sender
		}
		result = append(result, entry)
	}
	return c.JSON(http.StatusOK, result)
}

// GetUnreadCount retrieves the number of unread notifications for a user
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notifications.CountUnread(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// MarkAsRead marks a single notification as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	id := c.Param("notificationId")
	if err := h.notifications.MarkRead(c.Request().Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return httpError(err)
	}

	notification, err := h.notifications.GetByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, notification)
}

// MarkAllAsRead marks every notification of a user as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	if err := h.notifications.MarkAllRead(c.Request().Context(), c.Param("userId")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "All notifications marked as read"})
}

// DeleteNotification deletes a single notification
func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	if err := h.notifications.Delete(c.Request().Context(), c.Param("notificationId")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Notification deleted"})
}

// DeleteAllNotifications deletes every notification of a user
func (h *NotificationHandler) DeleteAllNotifications(c echo.Context) error {
	if err := h.notifications.DeleteAllForUser(c.Request().Context(), c.Param("userId")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "All notifications deleted"})
}
