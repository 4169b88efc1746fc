package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Relationship statuses. REJECTED is a respond decision only; rejected requests
// are deleted, never stored with that status.
const (
	RelationshipPending  = "PENDING"
	RelationshipAccepted = "ACCEPTED"
	RelationshipRejected = "REJECTED"
)

// Relationship is one directed friendship row. A PENDING row means UserID sent a
// request to FriendID. An accepted friendship is stored as two ACCEPTED rows, one
// per direction.
type Relationship struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    string             `json:"userId" bson:"user_id"`
	FriendID  string             `json:"friendId" bson:"friend_id"`
	Status    string             `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

// SendFriendRequest defines the request body for sending a friend request
type SendFriendRequest struct {
	UserID   string `json:"userId" validate:"required"`
	FriendID string `json:"friendId" validate:"required"`
}

// RespondFriendRequest defines the request body for accepting/rejecting a friend request
type RespondFriendRequest struct {
	RequestID string `json:"requestId" validate:"required"`
	Response  string `json:"response" validate:"required,oneof=ACCEPTED REJECTED"`
}

// PendingRequest joins a pending friend request with the requester's profile
type PendingRequest struct {
	RequestID string `json:"requestId"`
	User      *User  `json:"user"`
}
