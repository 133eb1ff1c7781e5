package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a game session has not been opened.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrNoActivePrompt is returned when a guess arrives before a round was started.
	ErrNoActivePrompt = errors.New("no active prompt")
	// ErrElementNotFound indicates a symbol, name or number that is not in the table.
	ErrElementNotFound = errors.New("element not found")
	// ErrQuestionsUnavailable indicates the question bank could not be loaded or is empty.
	ErrQuestionsUnavailable = errors.New("questions unavailable")

	ErrDuplicateAccount    = errors.New("an account with this email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrIdentityNotFound    = errors.New("identity not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrUnsupportedProvider = errors.New("unsupported oauth provider")
	ErrInvalidInput        = errors.New("invalid input")
)
