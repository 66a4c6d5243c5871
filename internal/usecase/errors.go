package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("conflict")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Condition sentinels wrap a category so errors.Is matches both the
// specific condition and its class.
var (
	ErrDuplicateEntry      = fmt.Errorf("%w: duplicate entry", ErrConflict)
	ErrIncompleteSelection = fmt.Errorf("%w: incomplete selection", ErrInvalidInput)
	ErrMatchLimitReached   = fmt.Errorf("%w: match limit reached", ErrInvalidInput)
	ErrLeagueAlreadyAdded  = fmt.Errorf("%w: league already added", ErrConflict)
	ErrMinimumLeagues      = fmt.Errorf("%w: at least one league is required", ErrConflict)
	ErrSubmissionsClosed   = fmt.Errorf("%w: pool deadline has passed", ErrConflict)
	ErrDraftNotPublishable = fmt.Errorf("%w: draft is not publishable", ErrInvalidInput)
)
