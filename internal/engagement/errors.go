package engagement

import "errors"

// ErrNotFound is returned when the toggle or mark-read subject does
// not exist, or when a mark-read request names a notification the
// requester does not own.
var ErrNotFound = errors.New("subject not found")
