package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// User represents a participant who can suggest, like and complete actions
type User struct {
	ID        UserID
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the fields required on every stored user
func (u *User) Validate() error {
	if u.Email == "" {
		return goerr.New("email is required")
	}
	return nil
}
