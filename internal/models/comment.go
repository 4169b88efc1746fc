package models

import "time"

// MaxCommentDepth is the deepest comment a reply may be attached to. A reply to a
// comment at this depth is rejected, so the deepest stored comment sits at depth 3
// (four visible tiers counting the root).
const MaxCommentDepth = 3

// Comment is one node of a post's comment forest. Nodes are stored flat inside
// the post document and linked by ParentID; Replies is assembled in memory for
// responses. Deleting a comment removes only its own node, so replies of a
// deleted comment stay stored but drop out of the assembled tree.
type Comment struct {
	ID        string     `json:"id" bson:"id"`
	UserID    string     `json:"userId" bson:"user_id"`
	Content   string     `json:"content" bson:"content"`
	CreatedAt time.Time  `json:"createdAt" bson:"created_at"`
	ParentID  string     `json:"parentId,omitempty" bson:"parent_id,omitempty"`
	Depth     int        `json:"depth" bson:"depth"`
	Likes     []string   `json:"likes" bson:"likes"`
	Replies   []*Comment `json:"replies" bson:"-"`
	User      *User      `json:"user,omitempty" bson:"-"`
}

// HasLike reports whether userID is in the comment's like set.
func (c *Comment) HasLike(userID string) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// BuildCommentTree links flat comment nodes into the reply forest and returns the
// root comments. Nodes whose parent is missing (deleted) are left out of the
// tree; they remain reachable by direct id lookup only.
func BuildCommentTree(nodes []*Comment) []*Comment {
	byID := make(map[string]*Comment, len(nodes))
	for _, c := range nodes {
		c.Replies = nil
		byID[c.ID] = c
	}

	roots := make([]*Comment, 0, len(nodes))
	for _, c := range nodes {
		if c.ParentID == "" {
			roots = append(roots, c)
			continue
		}
		if parent, ok := byID[c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
	}
	return roots
}

// CreateCommentRequest defines the request body for adding a comment to a post
type CreateCommentRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Content  string `json:"content" validate:"required,min=1,max=2000"`
	ParentID string `json:"parentId,omitempty"`
}

// LikeCommentRequest defines the request body for toggling a comment like
type LikeCommentRequest struct {
	UserID string `json:"userId" validate:"required"`
}
