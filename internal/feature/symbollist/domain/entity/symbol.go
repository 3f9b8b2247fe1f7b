// Package entity defines the domain models for the symbollist feature.
package entity

import "time"

// Symbol represents one entry of the locally persisted ticker catalog.
// The catalog is seeded from the market provider's reference listing and
// serves as the fallback source when the upstream listing is unreachable.
type Symbol struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:20;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Market    string    `gorm:"size:100;not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
