package util

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrNotFound is returned both for truly absent entities and for
	// cross-tenant lookups, so a caller cannot probe another company's
	// data by id.
	ErrNotFound = errors.New("resource not found")

	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict marks the loser of a concurrent submission race; the
	// caller may retry against the new assignment state.
	ErrConflict = errors.New("conflicting concurrent update")
)

// Invalid wraps ErrInvalidInput with field-level detail.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// TopicShortfall names one topic that cannot satisfy an exam
// composition request.
type TopicShortfall struct {
	TopicID   uint   `json:"topicId"`
	Name      string `json:"name"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

// InsufficientQuestionsError aborts exam composition atomically and
// names every short topic.
type InsufficientQuestionsError struct {
	Topics []TopicShortfall
}

func (e *InsufficientQuestionsError) Error() string {
	parts := make([]string, len(e.Topics))
	for i, t := range e.Topics {
		parts[i] = fmt.Sprintf("topic %q has %d active questions, %d requested", t.Name, t.Available, t.Requested)
	}
	return "insufficient questions: " + strings.Join(parts, "; ")
}
