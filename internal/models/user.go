package models

import "time"

// User représente un compte utilisateur dans la base de données.
// Earnings is only ever increased by the redirect accounting path.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Earnings     float64   `gorm:"not null;default:0" json:"earnings"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
