package uid

import "github.com/google/uuid"

// NewSessionID returns a random (v4) identifier for a game session
func NewSessionID() string {
	return uuid.NewString()
}

// IsSessionID reports whether s looks like an id produced by NewSessionID
func IsSessionID(s string) bool {
	id, err := uuid.Parse(s)
	return err == nil && id.Version() == 4
}
