package models

import "time"

// User is a row in the external user directory. The core only reads it; account
// creation, authentication and profile edits happen outside this service.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FullName returns the display name used in notification messages.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
