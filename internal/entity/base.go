package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is embedded by every persisted record. Active=false is the terminal
// state of a record; rows are never hard-deleted by the services.
// Active has no column default; callers set it before insert.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_date"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_date"`
	Active    bool      `gorm:"not null;index" json:"active"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID, err = uuid.NewV7()
	}
	return
}

// NewBase returns an active base with no id yet.
func NewBase() Base {
	return Base{Active: true}
}

// Day truncates t to midnight UTC, the granularity of date columns.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Meta exposes the embedded base of any entity.
func (b *Base) Meta() *Base { return b }
