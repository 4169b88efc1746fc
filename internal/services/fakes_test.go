package services

import (
	"context"

	"github.com/gobook-app/backend/internal/models"
	"github.com/gobook-app/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They mirror the Mongo/Postgres implementations
// closely enough for service-level tests: same sentinel errors, same ordered
// pair semantics, no real I/O.

type fakeUserRepo struct {
	users []models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	return &fakeUserRepo{users: users}
}

func (r *fakeUserRepo) GetUserByID(id string) (*models.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetUsersByIDs(ids []string) ([]models.User, error) {
	wanted := map[string]struct{}{}
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	result := []models.User{}
	for _, u := range r.users {
		if _, ok := wanted[u.ID]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) ListUsers() ([]models.User, error) {
	return append([]models.User{}, r.users...), nil
}

type fakeRelationshipRepo struct {
	rels []*models.Relationship
}

func (r *fakeRelationshipRepo) Create(_ context.Context, rel *models.Relationship) error {
	if rel.ID.IsZero() {
		rel.ID = primitive.NewObjectID()
	}
	clone := *rel
	r.rels = append(r.rels, &clone)
	return nil
}

func (r *fakeRelationshipRepo) GetByID(_ context.Context, id string) (*models.Relationship, error) {
	for _, rel := range r.rels {
		if rel.ID.Hex() == id {
			clone := *rel
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeRelationshipRepo) Find(_ context.Context, userID, friendID, status string) (*models.Relationship, error) {
	for _, rel := range r.rels {
		if rel.UserID == userID && rel.FriendID == friendID && rel.Status == status {
			clone := *rel
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeRelationshipRepo) HasAccepted(_ context.Context, userID, friendID string) (bool, error) {
	for _, rel := range r.rels {
		if rel.Status != models.RelationshipAccepted {
			continue
		}
		if (rel.UserID == userID && rel.FriendID == friendID) ||
			(rel.UserID == friendID && rel.FriendID == userID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRelationshipRepo) ListByUser(_ context.Context, userID, status string) ([]models.Relationship, error) {
	result := []models.Relationship{}
	for _, rel := range r.rels {
		if rel.UserID == userID && rel.Status == status {
			result = append(result, *rel)
		}
	}
	return result, nil
}

func (r *fakeRelationshipRepo) ListByFriend(_ context.Context, friendID, status string) ([]models.Relationship, error) {
	result := []models.Relationship{}
	for _, rel := range r.rels {
		if rel.FriendID == friendID && rel.Status == status {
			result = append(result, *rel)
		}
	}
	return result, nil
}

func (r *fakeRelationshipRepo) Update(_ context.Context, rel *models.Relationship) error {
	for i, existing := range r.rels {
		if existing.ID == rel.ID {
			clone := *rel
			r.rels[i] = &clone
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeRelationshipRepo) Delete(_ context.Context, id string) error {
	kept := r.rels[:0]
	for _, rel := range r.rels {
		if rel.ID.Hex() != id {
			kept = append(kept, rel)
		}
	}
	r.rels = kept
	return nil
}

func (r *fakeRelationshipRepo) DeleteBetween(_ context.Context, userID, friendID string) error {
	kept := r.rels[:0]
	for _, rel := range r.rels {
		between := (rel.UserID == userID && rel.FriendID == friendID) ||
			(rel.UserID == friendID && rel.FriendID == userID)
		if !between {
			kept = append(kept, rel)
		}
	}
	r.rels = kept
	return nil
}

type fakePostRepo struct {
	posts []*models.Post
}

func (r *fakePostRepo) Create(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	r.posts = append(r.posts, post)
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id string) (*models.Post, error) {
	for _, post := range r.posts {
		if post.ID.Hex() == id {
			return post, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakePostRepo) GetByUserID(_ context.Context, userID string) ([]*models.Post, error) {
	result := []*models.Post{}
	for _, post := range r.posts {
		if post.UserID == userID {
			result = append(result, post)
		}
	}
	return result, nil
}

func (r *fakePostRepo) GetAll(_ context.Context) ([]*models.Post, error) {
	return append([]*models.Post{}, r.posts...), nil
}

func (r *fakePostRepo) Save(_ context.Context, post *models.Post) error {
	for i, existing := range r.posts {
		if existing.ID == post.ID {
			r.posts[i] = post
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakePostRepo) Delete(_ context.Context, id string) error {
	kept := r.posts[:0]
	found := false
	for _, post := range r.posts {
		if post.ID.Hex() == id {
			found = true
			continue
		}
		kept = append(kept, post)
	}
	r.posts = kept
	if !found {
		return repositories.ErrNotFound
	}
	return nil
}

type fakeNotificationRepo struct {
	notifications []*models.Notification
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id string) (*models.Notification, error) {
	for _, n := range r.notifications {
		if n.ID.Hex() == id {
			return n, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID string) ([]*models.Notification, error) {
	result := []*models.Notification{}
	for _, n := range r.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id string) error {
	for _, n := range r.notifications {
		if n.ID.Hex() == id {
			n.Read = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id string) error {
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if n.ID.Hex() != id {
			kept = append(kept, n)
		}
	}
	r.notifications = kept
	return nil
}

func (r *fakeNotificationRepo) DeleteAllForUser(_ context.Context, userID string) error {
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if n.UserID != userID {
			kept = append(kept, n)
		}
	}
	r.notifications = kept
	return nil
}

func (r *fakeNotificationRepo) byType(notificationType string) []*models.Notification {
	result := []*models.Notification{}
	for _, n := range r.notifications {
		if n.Type == notificationType {
			result = append(result, n)
		}
	}
	return result
}
