package domain

import "errors"

var (
	// ErrNotFound is returned when the requested content does not exist upstream.
	ErrNotFound = errors.New("content not found")
	// ErrSessionNotFound is returned when a quiz session id is unknown.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrNoQuestions is returned when a quiz is started without any questions.
	ErrNoQuestions = errors.New("quiz has no questions")
	// ErrNoResultRanges indicates a quiz with no configured result ranges; this
	// is a content configuration error, not a fallback case.
	ErrNoResultRanges = errors.New("quiz has no result ranges")
	// ErrNotStarted is returned when a session action arrives before start.
	ErrNotStarted = errors.New("quiz session not started")
	// ErrAlreadyScored is returned for answer actions after scoring.
	ErrAlreadyScored = errors.New("quiz session already scored")
	// ErrUnanswered is returned when advancing past an unanswered question.
	ErrUnanswered = errors.New("current question not answered")
	// ErrInvalidOption is returned for out-of-range option indices.
	ErrInvalidOption = errors.New("option index out of range")
	// ErrInvalidAction is returned for actions that do not apply to the current
	// question kind.
	ErrInvalidAction = errors.New("action not valid for this question")
	// ErrQueryTooShort is returned for search queries under the minimum length.
	ErrQueryTooShort = errors.New("search query too short")
)
