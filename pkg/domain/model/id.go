package model

import "github.com/google/uuid"

// ActionID is a UUID-based identifier for Action
type ActionID string

// NewActionID generates a new UUID v4 ActionID
func NewActionID() ActionID {
	return ActionID(uuid.New().String())
}

func (id ActionID) String() string {
	return string(id)
}

// UserID identifies a participant. IDs issued by this service are UUID v4, but
// lookups accept any opaque string so records created elsewhere still resolve.
type UserID string

// NewUserID generates a new UUID v4 UserID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

func (id UserID) String() string {
	return string(id)
}
