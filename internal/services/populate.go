package services

import (
	"context"

	"github.com/gobook-app/backend/internal/models"
	"github.com/gobook-app/backend/internal/repositories"
)

// populatePost decorates a post aggregate for responses: author profiles on the
// post and its comments, the assembled comment tree, and the original post for
// shares. Directory lookups are best-effort; a missing profile is simply left
// out.
func populatePost(ctx context.Context, posts repositories.PostRepository, users repositories.UserRepository, post *models.Post) {
	if user, err := users.GetUserByID(post.UserID); err == nil {
		post.User = user
	}
	for _, comment := range post.Comments {
		if user, err := users.GetUserByID(comment.UserID); err == nil {
			comment.User = user
		}
	}
	post.CommentTree = models.BuildCommentTree(post.Comments)

	if post.OriginalPostID != "" && post.OriginalPost == nil {
		if original, err := posts.GetByID(ctx, post.OriginalPostID); err == nil {
			populatePost(ctx, posts, users, original)
			post.OriginalPost = original
		}
	}
}
