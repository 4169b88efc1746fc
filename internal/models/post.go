package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post privacy values
const (
	PrivacyPublic  = "PUBLIC"
	PrivacyPrivate = "PRIVATE"
)

// Post is the whole aggregate stored in MongoDB: the post itself, its like set
// and its comment forest. Comments is the flat persisted node list; CommentTree
// is the assembled reply forest returned to clients. Media URLs are opaque
// strings produced by the external file-storage service.
type Post struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID         string             `json:"userId" bson:"user_id"`
	Content        string             `json:"content" bson:"content"`
	Privacy        string             `json:"privacy" bson:"privacy"`
	Images         []string           `json:"images" bson:"images"`
	Videos         []string           `json:"videos" bson:"videos"`
	Likes          []string           `json:"likes" bson:"likes"`
	Comments       []*Comment         `json:"-" bson:"comments"`
	CommentTree    []*Comment         `json:"comments" bson:"-"`
	Shared         bool               `json:"isShared" bson:"is_shared"`
	OriginalPostID string             `json:"originalPostId,omitempty" bson:"original_post_id,omitempty"`
	OriginalPost   *Post              `json:"originalPost,omitempty" bson:"-"`
	CreatedAt      time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updated_at"`
	User           *User              `json:"user,omitempty" bson:"-"`
}

// HasLike reports whether userID is in the post's like set.
func (p *Post) HasLike(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	UserID  string   `json:"userId" validate:"required"`
	Content string   `json:"content" validate:"required,min=1,max=5000"`
	Privacy string   `json:"privacy,omitempty" validate:"omitempty,oneof=PUBLIC PRIVATE"`
	Images  []string `json:"images,omitempty"`
	Videos  []string `json:"videos,omitempty"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	UserID  string `json:"userId" validate:"required"`
	Content string `json:"content"`
	Privacy string `json:"privacy,omitempty" validate:"omitempty,oneof=PUBLIC PRIVATE"`
}

// SharePostRequest defines the request body for sharing an existing post
type SharePostRequest struct {
	UserID         string `json:"userId" validate:"required"`
	OriginalPostID string `json:"originalPostId" validate:"required"`
	Content        string `json:"content"`
}

// LikePostRequest defines the request body for toggling a post like
type LikePostRequest struct {
	UserID string `json:"userId" validate:"required"`
}
