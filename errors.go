package deque

import "github.com/cockroachdb/errors"

// ErrIndexOutOfRange is returned from checked element access when the index does not refer to
// a constructed element
var ErrIndexOutOfRange = errors.New("deque index out of range")

// ErrDestroyed is returned from checked operations on a Deque after Destroy has been called
var ErrDestroyed = errors.New("deque has been destroyed")

// ErrNegativeCount is returned from sized constructors when asked for fewer than zero elements
var ErrNegativeCount = errors.New("element count must not be negative")
