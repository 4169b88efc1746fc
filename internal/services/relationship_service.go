package services

import (
	"context"
	"errors"
	"time"

	"github.com/gobook-app/backend/internal/models"
	"github.com/gobook-app/backend/internal/realtime"
	"github.com/gobook-app/backend/internal/repositories"
)

const maxSuggestions = 10

// RelationshipService owns the friend-request state machine and friendship
// queries. A PENDING row is directed; acceptance flips it and writes the reverse
// ACCEPTED row, so the symmetric closure is stored explicitly.
type RelationshipService struct {
	relationships repositories.RelationshipRepository
	users         repositories.UserRepository
	fanout        *Fanout
	hub           *realtime.Hub
}

// NewRelationshipService creates a new RelationshipService
func NewRelationshipService(relationships repositories.RelationshipRepository, users repositories.UserRepository, fanout *Fanout, hub *realtime.Hub) *RelationshipService {
	return &RelationshipService{
		relationships: relationships,
		users:         users,
		fanout:        fanout,
		hub:           hub,
	}
}

// SendRequest creates a PENDING row from userID to friendID and notifies the
// receiver. Fails on an existing pending request for the same ordered pair, or
// when the two are already friends in either direction.
func (s *RelationshipService) SendRequest(ctx context.Context, userID, friendID string) (*models.Relationship, error) {
	if userID == friendID {
		return nil, ErrSelfRequest
	}
	if _, err := s.users.GetUserByID(friendID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	_, err := s.relationships.Find(ctx, userID, friendID, models.RelationshipPending)
	if err == nil {
		return nil, ErrDuplicateRequest
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	accepted, err := s.relationships.HasAccepted(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	if accepted {
		return nil, ErrAlreadyFriends
	}

	now := time.Now()
	rel := &models.Relationship{
		UserID:    userID,
		FriendID:  friendID,
		Status:    models.RelationshipPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.relationships.Create(ctx, rel); err != nil {
		return nil, err
	}

	requester, _ := s.users.GetUserByID(userID)
	s.hub.Publish(realtime.FriendTopic(friendID), map[string]any{
		"type":      "NEW_REQUEST",
		"requestId": rel.ID.Hex(),
		"user":      requester,
	})
	s.fanout.FriendRequest(ctx, friendID, userID, rel.ID.Hex())

	return rel, nil
}

// Respond accepts or rejects a pending friend request. Rejection deletes the row
// outright, so the requester may send a new request immediately. Acceptance
// flips the row and writes the reverse ACCEPTED row, then notifies both sides
// with role-specific wording. The returned relationship is nil on rejection.
func (s *RelationshipService) Respond(ctx context.Context, requestID, decision string) (*models.Relationship, error) {
	rel, err := s.relationships.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if decision == models.RelationshipRejected {
		s.hub.Publish(realtime.FriendTopic(rel.UserID), map[string]any{
			"type":      "REQUEST_REJECTED",
			"requestId": requestID,
		})
		if err := s.relationships.Delete(ctx, requestID); err != nil {
			return nil, err
		}
		s.fanout.RequestRejected(ctx, rel.UserID, rel.FriendID, requestID)
		return nil, nil
	}

	rel.Status = models.RelationshipAccepted
	rel.UpdatedAt = time.Now()
	if err := s.relationships.Update(ctx, rel); err != nil {
		return nil, err
	}

	reverse := &models.Relationship{
		UserID:    rel.FriendID,
		FriendID:  rel.UserID,
		Status:    models.RelationshipAccepted,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.relationships.Create(ctx, reverse); err != nil {
		return nil, err
	}

	requester, _ := s.users.GetUserByID(rel.UserID)
	accepter, _ := s.users.GetUserByID(rel.FriendID)
	s.hub.Publish(realtime.FriendTopic(rel.UserID), map[string]any{
		"type":   "REQUEST_ACCEPTED",
		"friend": accepter,
	})
	s.hub.Publish(realtime.FriendTopic(rel.FriendID), map[string]any{
		"type":   "FRIEND_ADDED",
		"friend": requester,
	})
	s.fanout.FriendAccepted(ctx, rel.UserID, rel.FriendID, requestID)
	s.fanout.FriendAdded(ctx, rel.FriendID, rel.UserID, requestID)

	return rel, nil
}

// Unfriend deletes every row between the two users in both directions and
// notifies both sides.
func (s *RelationshipService) Unfriend(ctx context.Context, userID, friendID string) error {
	if err := s.relationships.DeleteBetween(ctx, userID, friendID); err != nil {
		return err
	}

	envelope := map[string]any{
		"type":     "UNFRIENDED",
		"userId":   userID,
		"friendId": friendID,
	}
	s.hub.Publish(realtime.FriendTopic(userID), envelope)
	s.hub.Publish(realtime.FriendTopic(friendID), envelope)
	s.fanout.Unfriended(ctx, userID, friendID)
	s.fanout.Unfriended(ctx, friendID, userID)

	return nil
}

// ListFriends returns the profiles referenced by the user's outgoing ACCEPTED
// rows. Only outgoing rows are read; the symmetric closure guarantees each
// friendship has one.
func (s *RelationshipService) ListFriends(ctx context.Context, userID string) ([]models.User, error) {
	rels, err := s.relationships.ListByUser(ctx, userID, models.RelationshipAccepted)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rels))
	for _, rel := range rels {
		ids = append(ids, rel.FriendID)
	}
	return s.users.GetUsersByIDs(ids)
}

// ListPendingRequests returns the pending requests targeting the user, joined
// with the requester's profile. Requests whose sender is gone from the
// directory are skipped.
func (s *RelationshipService) ListPendingRequests(ctx context.Context, userID string) ([]models.PendingRequest, error) {
	rels, err := s.relationships.ListByFriend(ctx, userID, models.RelationshipPending)
	if err != nil {
		return nil, err
	}

	requests := []models.PendingRequest{}
	for _, rel := range rels {
		requester, err := s.users.GetUserByID(rel.UserID)
		if err != nil {
			continue
		}
		requests = append(requests, models.PendingRequest{
			RequestID: rel.ID.Hex(),
			User:      requester,
		})
	}
	return requests, nil
}

// Suggest returns up to 10 directory users who are neither the user, nor an
// accepted friend, nor the target of an outgoing pending request. Order is
// whatever the directory yields; no ranking is applied.
func (s *RelationshipService) Suggest(ctx context.Context, userID string) ([]models.User, error) {
	excluded := map[string]struct{}{userID: {}}

	outgoing, err := s.relationships.ListByUser(ctx, userID, models.RelationshipAccepted)
	if err != nil {
		return nil, err
	}
	for _, rel := range outgoing {
		excluded[rel.FriendID] = struct{}{}
	}

	incoming, err := s.relationships.ListByFriend(ctx, userID, models.RelationshipAccepted)
	if err != nil {
		return nil, err
	}
	for _, rel := range incoming {
		excluded[rel.UserID] = struct{}{}
	}

	pending, err := s.relationships.ListByUser(ctx, userID, models.RelationshipPending)
	if err != nil {
		return nil, err
	}
	for _, rel := range pending {
		excluded[rel.FriendID] = struct{}{}
	}

	all, err := s.users.ListUsers()
	if err != nil {
		return nil, err
	}

	suggestions := []models.User{}
	for _, user := range all {
		if _, ok := excluded[user.ID]; ok {
			continue
		}
		suggestions = append(suggestions, user)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions, nil
}
