package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types
const (
	NotificationFriendRequest   = "FRIEND_REQUEST"
	NotificationFriendAccept    = "FRIEND_ACCEPT"
	NotificationFriendAdded     = "FRIEND_ADDED"
	NotificationRequestRejected = "REQUEST_REJECTED"
	NotificationUnfriended      = "UNFRIENDED"
	NotificationComment         = "COMMENT"
	NotificationReply           = "REPLY"
	NotificationCommentLike     = "COMMENT_LIKE"
	NotificationLike            = "LIKE"
)

// Notification is one persisted notification row. UserID is the recipient.
// Rows are never deduplicated; repeating an action produces a new row.
type Notification struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    string             `json:"userId" bson:"user_id"`
	SenderID  string             `json:"senderId" bson:"sender_id"`
	Type      string             `json:"type" bson:"type"`
	Content   string             `json:"content" bson:"content"`
	EntityID  string             `json:"entityId" bson:"entity_id"`
	Read      bool               `json:"read" bson:"read"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// NotificationWithSender pairs a notification with the sender's public profile.
// Sender is best-effort; it is omitted when the directory has no such user.
type NotificationWithSender struct {
	Notification *Notification `json:"notification"`
	Sender       *User         `json:"sender,omitempty"`
}
