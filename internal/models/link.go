package models

import "time"

// Link représente un lien raccourci dans la base de données.
// ShortCode is immutable once assigned; the unique index is the single
// enforcement point for code uniqueness across concurrent creations.
// Clicks and Earnings are only increased, via atomic SQL deltas.
type Link struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ShortCode string    `gorm:"uniqueIndex;size:32;not null" json:"shortCode"`
	LongURL   string    `gorm:"not null" json:"longUrl"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Clicks    int64     `gorm:"not null;default:0" json:"clicks"`
	Earnings  float64   `gorm:"not null;default:0" json:"earnings"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
