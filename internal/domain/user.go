package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                  // Primary key
	Name      string    `gorm:"size:120;not null" json:"name"`         // Display name
	Email     string    `gorm:"size:255;unique;not null" json:"email"` // Unique, lowercased email
	Password  string    `gorm:"not null" json:"-"`                     // Hashed password
	Currency  string    `gorm:"size:8;default:USD" json:"currency"`    // Preferred currency code
	CreatedAt time.Time `json:"createdAt"`                             // Registration time
	UpdatedAt time.Time `json:"updatedAt"`                             // Last update time
}
