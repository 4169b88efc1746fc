package services

import (
	"context"
	"errors"

	"github.com/gobook-app/backend/internal/models"
	"github.com/gobook-app/backend/internal/realtime"
	"github.com/gobook-app/backend/internal/repositories"
)

// PostService owns the post aggregate outside its comment forest: creation,
// privacy-filtered reads, owner-checked updates and deletes, the post like set,
// and shares.
type PostService struct {
	posts  repositories.PostRepository
	users  repositories.UserRepository
	fanout *Fanout
	hub    *realtime.Hub
}

// NewPostService creates a new PostService
func NewPostService(posts repositories.PostRepository, users repositories.UserRepository, fanout *Fanout, hub *realtime.Hub) *PostService {
	return &PostService{
		posts:  posts,
		users:  users,
		fanout: fanout,
		hub:    hub,
	}
}

// Create stores a new post. Media URLs arrive as opaque strings from the
// external upload service.
func (s *PostService) Create(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	privacy := req.Privacy
	if privacy == "" {
		privacy = models.PrivacyPublic
	}

	post := &models.Post{
		UserID:   req.UserID,
		Content:  req.Content,
		Privacy:  privacy,
		Images:   req.Images,
		Videos:   req.Videos,
		Likes:    []string{},
		Comments: []*models.Comment{},
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	populatePost(ctx, s.posts, s.users, post)
	return post, nil
}

// List returns all posts the viewer may see: their own plus everyone's PUBLIC
// posts. Without a viewer only PUBLIC posts are returned.
func (s *PostService) List(ctx context.Context, viewerID string) ([]*models.Post, error) {
	posts, err := s.posts.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.visible(ctx, posts, viewerID), nil
}

// ListByUser returns one user's posts, restricted to PUBLIC unless the viewer
// is the owner.
func (s *PostService) ListByUser(ctx context.Context, userID, viewerID string) ([]*models.Post, error) {
	posts, err := s.posts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.visible(ctx, posts, viewerID), nil
}

func (s *PostService) visible(ctx context.Context, posts []*models.Post, viewerID string) []*models.Post {
	result := []*models.Post{}
	for _, post := range posts {
		if post.Privacy == models.PrivacyPrivate && post.UserID != viewerID {
			continue
		}
		populatePost(ctx, s.posts, s.users, post)
		result = append(result, post)
	}
	return result
}

// Get returns a single post. PRIVATE posts are readable only by their owner.
func (s *PostService) Get(ctx context.Context, postID, viewerID string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.Privacy == models.PrivacyPrivate && post.UserID != viewerID {
		return nil, ErrForbidden
	}

	populatePost(ctx, s.posts, s.users, post)
	return post, nil
}

// Update changes a post's content and privacy. Owner only. The updated
// aggregate is published to the post's topic.
func (s *PostService) Update(ctx context.Context, postID string, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.UserID != req.UserID {
		return nil, ErrForbidden
	}

	post.Content = req.Content
	if req.Privacy != "" {
		post.Privacy = req.Privacy
	}
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}

	populatePost(ctx, s.posts, s.users, post)
	s.hub.Publish(realtime.PostTopic(postID), post)
	return post, nil
}

// Delete removes a post aggregate and with it the whole comment forest. Owner
// only.
func (s *PostService) Delete(ctx context.Context, postID, userID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if post.UserID != userID {
		return ErrForbidden
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Like toggles userID's membership in the post's like set and returns the
// updated aggregate. The owner is notified only on the add transition.
func (s *PostService) Like(ctx context.Context, postID, userID string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	liked := false
	if post.HasLike(userID) {
		kept := post.Likes[:0]
		for _, id := range post.Likes {
			if id != userID {
				kept = append(kept, id)
			}
		}
		post.Likes = kept
	} else {
		post.Likes = append(post.Likes, userID)
		liked = true
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}

	populatePost(ctx, s.posts, s.users, post)
	s.hub.Publish(realtime.PostTopic(postID), post)

	if liked {
		s.fanout.PostLike(ctx, post.UserID, userID, postID)
	}

	return post, nil
}

// Share creates a new post referencing an existing one.
func (s *PostService) Share(ctx context.Context, req models.SharePostRequest) (*models.Post, error) {
	if _, err := s.posts.GetByID(ctx, req.OriginalPostID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	post := &models.Post{
		UserID:         req.UserID,
		Content:        req.Content,
		Privacy:        models.PrivacyPublic,
		Likes:          []string{},
		Comments:       []*models.Comment{},
		Shared:         true,
		OriginalPostID: req.OriginalPostID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	populatePost(ctx, s.posts, s.users, post)
	return post, nil
}
