package services

import "errors"

// Domain errors returned by the services. Handlers translate these to HTTP
// status codes; anything else is an internal error and surfaces as a generic
// message at the boundary.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrDuplicateRequest = errors.New("a pending friend request already exists")
	ErrAlreadyFriends   = errors.New("users are already friends")
	ErrSelfRequest      = errors.New("cannot send a friend request to yourself")
	ErrParentNotFound   = errors.New("parent comment not found")
	ErrDepthExceeded    = errors.New("maximum reply depth reached")
)
