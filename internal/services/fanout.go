package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gobook-app/backend/internal/models"
	"github.com/gobook-app/backend/internal/realtime"
	"github.com/gobook-app/backend/internal/repositories"
	"go.uber.org/zap"
)

// Fanout turns committed mutations into persisted notifications and live pushes.
// It holds no state of its own. Every method is fire-and-forget: failures are
// logged and swallowed so that a fan-out problem can never fail the mutation
// that triggered it.
type Fanout struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	hub           *realtime.Hub
	log           *zap.Logger
}

// NewFanout creates a new Fanout
func NewFanout(notifications repositories.NotificationRepository, users repositories.UserRepository, hub *realtime.Hub, log *zap.Logger) *Fanout {
	return &Fanout{
		notifications: notifications,
		users:         users,
		hub:           hub,
		log:           log,
	}
}

// Notify persists a notification and publishes it, with the sender's profile
// when the directory has one, to notifications/{recipientID}. Self-directed
// notifications are suppressed here so callers do not have to check.
func (f *Fanout) Notify(ctx context.Context, recipientID, senderID, notificationType, content, entityID string) *models.Notification {
	if recipientID == "" || recipientID == senderID {
		return nil
	}

	notification := &models.Notification{
		UserID:    recipientID,
		SenderID:  senderID,
		Type:      notificationType,
		Content:   content,
		EntityID:  entityID,
		Read:      false,
		CreatedAt: time.Now(),
	}
	if err := f.notifications.Create(ctx, notification); err != nil {
		f.log.Warn("failed to persist notification",
			zap.String("type", notificationType),
			zap.String("recipient", recipientID),
			zap.Error(err))
		return nil
	}

	payload := models.NotificationWithSender{Notification: notification}
	sender, err := f.users.GetUserByID(senderID)
	if err != nil {
		f.log.Debug("notification sender not in directory", zap.String("sender", senderID), zap.Error(err))
	} else {
		payload.Sender = sender
	}

	f.hub.Publish(realtime.NotificationTopic(recipientID), payload)
	return notification
}

// senderName returns the sender's display name, or "" when the directory has no
// such user. Notification wording falls back to an anonymous phrasing then.
func (f *Fanout) senderName(senderID string) string {
	user, err := f.users.GetUserByID(senderID)
	if err != nil {
		return ""
	}
	return user.FullName()
}

// FriendRequest notifies the receiver of a new friend request.
func (f *Fanout) FriendRequest(ctx context.Context, recipientID, senderID, requestID string) {
	content := "You have a new friend request"
	if name := f.senderName(senderID); name != "" {
		content = fmt.Sprintf("%s sent you a friend request", name)
	}
	f.Notify(ctx, recipientID, senderID, models.NotificationFriendRequest, content, requestID)
}

// FriendAccepted notifies the original requester that the request was accepted.
func (f *Fanout) FriendAccepted(ctx context.Context, recipientID, senderID, requestID string) {
	content := "Your friend request was accepted"
	if name := f.senderName(senderID); name != "" {
		content = fmt.Sprintf("%s accepted your friend request", name)
	}
	f.Notify(ctx, recipientID, senderID, models.NotificationFriendAccept, content, requestID)
}

// FriendAdded notifies the accepter about the new friendship. Worded differently
// from FriendAccepted because the accepter took the action.
func (f *Fanout) FriendAdded(ctx context.Context, recipientID, senderID, requestID string) {
	content := "You have a new friend"
	if name := f.senderName(senderID); name != "" {
		content = fmt.Sprintf("You are now friends with %s", name)
	}
	f.Notify(ctx, recipientID, senderID, models.NotificationFriendAdded, content, requestID)
}

// RequestRejected notifies the original requester that the request was declined.
func (f *Fanout) RequestRejected(ctx context.Context, recipientID, senderID, requestID string) {
	content := "Your friend request was declined"
	if name := f.senderName(senderID); name != "" {
		content = fmt.Sprintf("%s declined your friend request", name)
	}
	f.Notify(ctx, recipientID, senderID, models.NotificationRequestRejected, content, requestID)
}

// Unfriended notifies one side of a removed friendship.
func (f *Fanout) Unfriended(ctx context.Context, recipientID, senderID string) {
	content := "A friendship of yours was removed"
	if name := f.senderName(senderID); name != "" {
		content = fmt.Sprintf("You are no longer friends with %s", name)
	}
	f.Notify(ctx, recipientID, senderID, models.NotificationUnfriended, content, senderID)
}

// Comment notifies the post owner about a new root comment.
func (f *Fanout) Comment(ctx context.Context, recipientID, senderID, commentID string) {
	content := "Someone commented on your post"
	if name := f.senderName(senderID); name != "" {
		content = fmt.Sprintf("%s commented on your post", name)
	}
	f.Notify(ctx, recipientID, senderID, models.NotificationComment, content, commentID)
}

// Reply notifies a comment author about a reply to their comment.
func (f *Fanout) Reply(ctx context.Context, recipientID, senderID, replyID string) {
	content := "Someone replied to your comment"
	if name := f.senderName(senderID); name != "" {
		content = fmt.Sprintf("%s replied to your comment", name)
	}
	f.Notify(ctx, recipientID, senderID, models.NotificationReply, content, replyID)
}

// CommentLike notifies a comment author about a like on their comment.
func (f *Fanout) CommentLike(ctx context.Context, recipientID, senderID, commentID string) {
	content := "Someone liked your comment"
	if name := f.senderName(senderID); name != "" {
		content = fmt.Sprintf("%s liked your comment", name)
	}
	f.Notify(ctx, recipientID, senderID, models.NotificationCommentLike, content, commentID)
}

// PostLike notifies a post owner about a like on their post.
func (f *Fanout) PostLike(ctx context.Context, recipientID, senderID, postID string) {
	content := "Someone liked your post"
	if name := f.senderName(senderID); name != "" {
		content = fmt.Sprintf("%s liked your post", name)
	}
	f.Notify(ctx, recipientID, senderID, models.NotificationLike, content, postID)
}
