package ranking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks a session id that could not be resolved.
	ErrNotFound = errors.New("session not found")
	// ErrInvalidState marks a decision or undo requested when the pool size or
	// history makes the operation impossible.
	ErrInvalidState = errors.New("invalid session state")
	// ErrStaleReference marks a decision referencing an id no longer in the
	// pool. The decision is dropped without mutating the ranking.
	ErrStaleReference = errors.New("stale item reference")
	// ErrPersistence marks a failed durable write. In-memory state stays
	// authoritative; the write is retried on the next mutation.
	ErrPersistence = errors.New("persistence failure")
)

// Wrap builds an error message that includes operation context while tagging
// it with the provided sentinel for later classification.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrInvalidState
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "ranking failure"
	}
	return strings.Join(parts, ": ")
}
