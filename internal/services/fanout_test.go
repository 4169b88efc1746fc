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

func fanoutEnv(users ...models.User) (*Fanout, *fakeNotificationRepo, *realtime.Hub) {
	notifRepo := &fakeNotificationRepo{}
	hub := realtime.NewHub(zap.NewNop())
	return NewFanout(notifRepo, newFakeUserRepo(users...), hub, zap.NewNop()), notifRepo, hub
}

func TestNotifyPersistsAndPublishes(t *testing.T) {
	fanout, notifRepo, hub := fanoutEnv(alice(), bob())

	sub := hub.Subscribe(realtime.NotificationTopic("bob"))
	defer hub.Unsubscribe(sub)

	notification := fanout.Notify(context.Background(), "bob", "alice", models.NotificationLike, "Alice Adams liked your post", "post-1")
	require.NotNil(t, notification)
	assert.False(t, notification.Read)
	require.Len(t, notifRepo.notifications, 1)

	select {
	case msg := <-sub.C():
		payload, ok := msg.(models.NotificationWithSender)
		require.True(t, ok)
		assert.Equal(t, models.NotificationLike, payload.Notification.Type)
		require.NotNil(t, payload.Sender)
		assert.Equal(t, "alice", payload.Sender.ID)
	default:
		t.Fatal("expected payload on the recipient's notification topic")
	}
}

func TestNotifySuppressesSelf(t *testing.T) {
	fanout, notifRepo, _ := fanoutEnv(alice())

	notification := fanout.Notify(context.Background(), "alice", "alice", models.NotificationComment, "x", "c1")
	assert.Nil(t, notification)
	assert.Empty(t, notifRepo.notifications)
}

func TestNotifyMissingSenderIsBestEffort(t *testing.T) {
	fanout, notifRepo, hub := fanoutEnv(bob())

	sub := hub.Subscribe(realtime.NotificationTopic("bob"))
	defer hub.Unsubscribe(sub)

	notification := fanout.Notify(context.Background(), "bob", "gone", models.NotificationComment, "Someone commented on your post", "c1")
	require.NotNil(t, notification)
	require.Len(t, notifRepo.notifications, 1)

	select {
	case msg := <-sub.C():
		payload, ok := msg.(models.NotificationWithSender)
		require.True(t, ok)
		assert.Nil(t, payload.Sender)
	default:
		t.Fatal("expected payload despite the missing sender")
	}
}

func TestWordingFallsBackWhenSenderUnknown(t *testing.T) {
	fanout, notifRepo, _ := fanoutEnv(bob())

	fanout.FriendRequest(context.Background(), "bob", "gone", "req-1")

	require.Len(t, notifRepo.notifications, 1)
	assert.Equal(t, "You have a new friend request", notifRepo.notifications[0].Content)
}
