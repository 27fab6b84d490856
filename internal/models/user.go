// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account. Users own places and are never
// deleted; the Places association is keyed by Place.CreatorID.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Places    []Place   `gorm:"foreignKey:CreatorID" json:"places,omitempty"`
}
