package models

import "time"

// User is an operator account able to sign in to the inventory UI.
// Accounts are managed with the usermgmt tool, never through the web API.
// Deleting a user removes its sessions through the sessions foreign key.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         *string   `gorm:"size:128" json:"name"`
	Email        *string   `gorm:"size:255;uniqueIndex" json:"email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
