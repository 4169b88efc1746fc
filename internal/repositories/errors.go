package repositories

import "errors"

// ErrNotFound is returned by every repository when the requested record does not
// exist, regardless of the backing store.
var ErrNotFound = errors.New("record not found")
