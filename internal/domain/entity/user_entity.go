package entity

import (
	"time"
)

// User is the identity aggregate.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	AvatarURL string    `json:"avatar" bson:"avatar"`
	CreatedAt time.Time `json:"date" bson:"date"`
}

// UserSummary is the owner view embedded into profile responses.
type UserSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar"`
	Email     string `json:"email,omitempty"`
}

func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL, Email: u.Email}
}
