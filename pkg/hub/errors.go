package hub

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by Publish and Recv once the Hub has been shut down.
	ErrClosed = errors.New("hub closed")
	// ErrLagged matches any *LaggedError via errors.Is.
	ErrLagged = errors.New("subscriber lagged")
)

// LaggedError reports that a subscription fell more than the Hub capacity
// behind and Missed messages were dropped for it. It is not fatal: the next
// Recv continues from the oldest retained message.
type LaggedError struct {
	Missed uint64
}

func (e *LaggedError) Error() string {
	return fmt.Sprintf("subscriber lagged: %d messages dropped", e.Missed)
}

func (e *LaggedError) Is(target error) bool {
	return target == ErrLagged
}
