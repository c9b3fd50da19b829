package model

import (
	"time"

	"github.com/cherish-app/cherish/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Action represents a suggested act of kindness
type Action struct {
	ID          ActionID
	Action      string
	For         []string // target audience tags
	Likes       IDSet
	Done        IDSet
	SuggestedBy UserID
	Approved    bool    // false until an admin approves; never reverts
	Description *string // nil when not supplied
	ImageLink   *string // nil when not supplied
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields required on every stored action
func (a *Action) Validate() error {
	if a.Action == "" {
		return goerr.New("action text is required")
	}
	if a.For == nil {
		return goerr.New("for is required")
	}
	if a.SuggestedBy == "" {
		return goerr.New("suggester is required")
	}
	return nil
}

// Toggle flips actor's membership in the set selected by kind and reports
// whether the actor was removed.
func (a *Action) Toggle(kind types.Engagement, actor UserID) (bool, error) {
	var removed bool
	switch kind {
	case types.EngagementLike:
		a.Likes, removed = a.Likes.Toggle(actor)
	case types.EngagementDone:
		a.Done, removed = a.Done.Toggle(actor)
	default:
		return false, goerr.New("unknown engagement", goerr.V("kind", kind))
	}
	return removed, nil
}

// Approve marks the action approved
func (a *Action) Approve() {
	a.Approved = true
}

// Copy returns a deep copy of the action
func (a *Action) Copy() *Action {
	c := *a
	c.For = append(make([]string, 0, len(a.For)), a.For...)
	c.Likes = NewIDSet(a.Likes...)
	c.Done = NewIDSet(a.Done...)
	if a.Description != nil {
		d := *a.Description
		c.Description = &d
	}
	if a.ImageLink != nil {
		l := *a.ImageLink
		c.ImageLink = &l
	}
	return &c
}
