package services

import (
	"context"
	"errors"
	"time"

	"github.com/gobook-app/backend/internal/models"
	"github.com/gobook-app/backend/internal/realtime"
	"github.com/gobook-app/backend/internal/repositories"
	"github.com/google/uuid"
)

// CommentService owns the depth-bounded comment forest embedded in each post
// aggregate: adding comments and replies, toggling per-comment likes, and
// deleting single nodes without cascading to their replies.
type CommentService struct {
	posts  repositories.PostRepository
	users  repositories.UserRepository
	fanout *Fanout
	hub    *realtime.Hub
}

// NewCommentService creates a new CommentService
func NewCommentService(posts repositories.PostRepository, users repositories.UserRepository, fanout *Fanout, hub *realtime.Hub) *CommentService {
	return &CommentService{
		posts:  posts,
		users:  users,
		fanout: fanout,
		hub:    hub,
	}
}

// commentIndex is an id-indexed view of a post's comment nodes, built once per
// loaded aggregate. Lookup is O(1) and ancestry walks are O(depth) instead of
// repeated scans over the forest.
type commentIndex map[string]*models.Comment

func indexComments(post *models.Post) commentIndex {
	idx := make(commentIndex, len(post.Comments))
	for _, comment := range post.Comments {
		idx[comment.ID] = comment
	}
	return idx
}

// depth counts hops from the node to its nearest reachable root. The walk stops
// at a missing parent, so orphans of a deleted ancestor restart at depth 0 from
// their detachment point, same as a root-traversal would see them.
func (idx commentIndex) depth(id string) int {
	depth := 0
	comment := idx[id]
	for comment != nil && comment.ParentID != "" {
		depth++
		comment = idx[comment.ParentID]
	}
	return depth
}

// AddComment appends a comment node to the post aggregate. With a parent id the
// node becomes a reply; creation is rejected once the parent already sits at
// the maximum depth. On success the post owner (root comment) or the parent
// comment's author (reply) is notified, and the full aggregate is published to
// the post's topic.
func (s *CommentService) AddComment(ctx context.Context, postID string, req models.CreateCommentRequest) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var parent *models.Comment
	depth := 0
	if req.ParentID != "" {
		idx := indexComments(post)
		parent = idx[req.ParentID]
		if parent == nil {
			return nil, ErrParentNotFound
		}
		parentDepth := idx.depth(req.ParentID)
		if parentDepth >= models.MaxCommentDepth {
			return nil, ErrDepthExceeded
		}
		depth = parentDepth + 1
	}

	comment := &models.Comment{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Content:   req.Content,
		CreatedAt: time.Now(),
		ParentID:  req.ParentID,
		Depth:     depth,
		Likes:     []string{},
	}
	post.Comments = append(post.Comments, comment)

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}

	populatePost(ctx, s.posts, s.users, post)
	s.hub.Publish(realtime.PostTopic(postID), post)

	if parent == nil {
		s.fanout.Comment(ctx, post.UserID, req.UserID, comment.ID)
	} else {
		s.fanout.Reply(ctx, parent.UserID, req.UserID, comment.ID)
	}

	return post, nil
}

// LikeComment toggles userID's membership in the comment's like set and returns
// the new state and count. A notification goes out only on the add transition,
// and never for liking one's own comment.
func (s *CommentService) LikeComment(ctx context.Context, commentID, userID string) (liked bool, likes int, err error) {
	post, comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return false, 0, err
	}

	if comment.HasLike(userID) {
		kept := comment.Likes[:0]
		for _, id := range comment.Likes {
			if id != userID {
				kept = append(kept, id)
			}
		}
		comment.Likes = kept
		liked = false
	} else {
		comment.Likes = append(comment.Likes, userID)
		liked = true
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return false, 0, err
	}

	populatePost(ctx, s.posts, s.users, post)
	s.hub.Publish(realtime.PostTopic(post.ID.Hex()), post)

	if liked {
		s.fanout.CommentLike(ctx, comment.UserID, userID, commentID)
	}

	return liked, len(comment.Likes), nil
}

// DeleteComment removes a single comment node from the post aggregate. Only the
// author may delete. Replies of the deleted node are not cascade-deleted: they
// stay stored with their parent id pointing at the removed node, reachable by
// direct id but no longer part of the assembled tree.
func (s *CommentService) DeleteComment(ctx context.Context, postID, commentID, userID string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	idx := indexComments(post)
	comment := idx[commentID]
	if comment == nil {
		return nil, ErrNotFound
	}
	if comment.UserID != userID {
		return nil, ErrForbidden
	}

	kept := post.Comments[:0]
	for _, c := range post.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	post.Comments = kept

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}

	populatePost(ctx, s.posts, s.users, post)
	s.hub.Publish(realtime.PostTopic(postID), post)

	return post, nil
}

// GetComment locates a comment by id across all posts and returns it together
// with the owning post's id. Orphaned replies of deleted comments are still
// found here.
func (s *CommentService) GetComment(ctx context.Context, commentID string) (*models.Comment, string, error) {
	post, comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, "", err
	}
	return comment, post.ID.Hex(), nil
}

// findComment scans every post for the comment. Linear in the number of posts;
// acceptable only because the like endpoint carries no post id on the wire.
func (s *CommentService) findComment(ctx context.Context, commentID string) (*models.Post, *models.Comment, error) {
	posts, err := s.posts.GetAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, post := range posts {
		if comment := indexComments(post)[commentID]; comment != nil {
			return post, comment, nil
		}
	}
	return nil, nil, ErrNotFound
}
