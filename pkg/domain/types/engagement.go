package types

import "fmt"

// Engagement identifies which membership set of an action a user toggles
type Engagement string

const (
	EngagementLike Engagement = "like"
	EngagementDone Engagement = "done"
)

// AllEngagements returns all valid engagement kinds
func AllEngagements() []Engagement {
	return []Engagement{
		EngagementLike,
		EngagementDone,
	}
}

// IsValid checks if the engagement kind is valid
func (e Engagement) IsValid() bool {
	switch e {
	case EngagementLike, EngagementDone:
		return true
	default:
		return false
	}
}

// String returns the string representation of the engagement kind
func (e Engagement) String() string {
	return string(e)
}

// ParseEngagement parses a string into an Engagement
func ParseEngagement(s string) (Engagement, error) {
	e := Engagement(s)
	if !e.IsValid() {
		return "", fmt.Errorf("invalid engagement: %s", s)
	}
	return e, nil
}
