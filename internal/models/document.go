package models

import (
	"time"

	"gorm.io/datatypes"
)

// DocumentRow backs the postgres document store: one row per document path.
type DocumentRow struct {
	Path       string         `gorm:"primaryKey;size:512"`
	Collection string         `gorm:"size:512;not null;index"`
	DocID      string         `gorm:"size:128;not null"`
	Data       datatypes.JSON `gorm:"type:jsonb;not null"`
	Version    int64          `gorm:"not null;default:1"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DocumentRow) TableName() string {
	return "documents"
}
