package services

import (
	"context"
	"testing"

	"github.com/gobook-app/backend/internal/models"
	"github.com/gobook-app/backend/internal/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func postEnv(users ...models.User) (*PostService, *fakePostRepo, *fakeNotificationRepo) {
	userRepo := newFakeUserRepo(users...)
	postRepo := &fakePostRepo{}
	notifRepo := &fakeNotificationRepo{}
	hub := realtime.NewHub(zap.NewNop())
	fanout := NewFanout(notifRepo, userRepo, hub, zap.NewNop())
	return NewPostService(postRepo, userRepo, fanout, hub), postRepo, notifRepo
}

func TestCreatePostDefaultsToPublic(t *testing.T) {
	svc, _, _ := postEnv(alice())

	post, err := svc.Create(context.Background(), models.CreatePostRequest{
		UserID:  "alice",
		Content: "hello world",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PrivacyPublic, post.Privacy)
	require.NotNil(t, post.User)
	assert.Equal(t, "alice", post.User.ID)
}

func TestPrivatePostHiddenFromOthers(t *testing.T) {
	svc, _, _ := postEnv(alice(), bob())

	private, err := svc.Create(context.Background(), models.CreatePostRequest{
		UserID:  "alice",
		Content: "secret",
		Privacy: models.PrivacyPrivate,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), models.CreatePostRequest{
		UserID:  "alice",
		Content: "open",
	})
	require.NoError(t, err)

	// The owner sees both, everyone else only the public one.
	own, err := svc.List(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, own, 2)

	others, err := svc.List(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, "open", others[0].Content)

	_, err = svc.Get(context.Background(), private.ID.Hex(), "bob")
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Get(context.Background(), private.ID.Hex(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Content)
}

func TestUpdatePostOwnerOnly(t *testing.T) {
	svc, _, _ := postEnv(alice(), bob())

	post, err := svc.Create(context.Background(), models.CreatePostRequest{
		UserID:  "alice",
		Content: "draft",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), post.ID.Hex(), models.UpdatePostRequest{
		UserID:  "bob",
		Content: "vandalized",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(context.Background(), post.ID.Hex(), models.UpdatePostRequest{
		UserID:  "alice",
		Content: "final",
		Privacy: models.PrivacyPrivate,
	})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)
	assert.Equal(t, models.PrivacyPrivate, updated.Privacy)
}

func TestDeletePostOwnerOnly(t *testing.T) {
	svc, postRepo, _ := postEnv(alice(), bob())

	post, err := svc.Create(context.Background(), models.CreatePostRequest{
		UserID:  "alice",
		Content: "ephemeral",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), post.ID.Hex(), "bob")
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), post.ID.Hex(), "alice"))
	assert.Empty(t, postRepo.posts)
}

func TestLikePostToggleNotifiesOnAddOnly(t *testing.T) {
	svc, _, notifRepo := postEnv(alice(), bob())

	post, err := svc.Create(context.Background(), models.CreatePostRequest{
		UserID:  "alice",
		Content: "likeable",
	})
	require.NoError(t, err)

	liked, err := svc.Like(context.Background(), post.ID.Hex(), "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, liked.Likes)

	unliked, err := svc.Like(context.Background(), post.ID.Hex(), "bob")
	require.NoError(t, err)
	assert.Empty(t, unliked.Likes)

	likes := notifRepo.byType(models.NotificationLike)
	require.Len(t, likes, 1)
	assert.Equal(t, "alice", likes[0].UserID)
}

func TestSharePostReferencesOriginal(t *testing.T) {
	svc, _, _ := postEnv(alice(), bob())

	original, err := svc.Create(context.Background(), models.CreatePostRequest{
		UserID:  "alice",
		Content: "worth sharing",
	})
	require.NoError(t, err)

	shared, err := svc.Share(context.Background(), models.SharePostRequest{
		UserID:         "bob",
		Content:        "look at this",
		OriginalPostID: original.ID.Hex(),
	})
	require.NoError(t, err)
	assert.True(t, shared.Shared)
	require.NotNil(t, shared.OriginalPost)
	assert.Equal(t, "worth sharing", shared.OriginalPost.Content)
}

func TestShareUnknownPost(t *testing.T) {
	svc, _, _ := postEnv(bob())

	_, err := svc.Share(context.Background(), models.SharePostRequest{
		UserID:         "bob",
		Content:        "nothing here",
		OriginalPostID: "68c4a10f9d3b2a0001f00000",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
