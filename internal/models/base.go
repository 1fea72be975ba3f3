package models

import (
	"time"

	"fintrack/internal/uuid"

	"gorm.io/gorm"
)

// Base contains the identity and timestamp columns shared by stored records.
type Base struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Stamp assigns an ID when missing, sets CreatedAt on first write and
// refreshes UpdatedAt. Stores that are not driven by GORM call it directly.
func (b *Base) Stamp(now time.Time) {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	b.Stamp(time.Now().UTC())
	return nil
}
