package domain

import "time"

// Identity is a credential record owned by the identity provider.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile is the public side of an identity.
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Principal is the only identity fact the game core consumes.
type Principal struct {
	UserID        string `json:"userId,omitempty"`
	Username      string `json:"username,omitempty"`
	Authenticated bool   `json:"isAuthenticated"`
}

// Guest is the unauthenticated principal.
var Guest = Principal{}

// SessionEventType distinguishes session-change notifications.
type SessionEventType string

const (
	SessionSignedIn  SessionEventType = "signed_in"
	SessionSignedOut SessionEventType = "signed_out"
)

// SessionEvent is published on the identity provider's session stream.
type SessionEvent struct {
	Type   SessionEventType `json:"type"`
	UserID string           `json:"userId"`
	At     time.Time        `json:"at"`
}
