package models

import "time"

// User represents an account record. The password hash is never
// serialized. The first account ever created is implicitly an admin.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Name      string    `json:"name"`
	Hash      string    `json:"-" gorm:"type:varchar(255)"`
	IsAdmin   bool      `json:"isAdmin"`
	Provider  string    `json:"provider,omitempty" gorm:"type:varchar(32)"`
	CreatedAt time.Time `json:"createdAt"`
}
