package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MediaEntityOrder       = "order"
	MediaEntityReservation = "reservation"
	MediaEntityClient      = "client"
)

const (
	MediaCategoryID     = "identificacion"
	MediaCategoryBefore = "antes"
	MediaCategoryAfter  = "despues"
)

// MediaFile links an uploaded object (identification scan, before/after
// photo) polymorphically to an entity type + id.
type MediaFile struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey"`
	EntityType string    `gorm:"type:varchar(20);index:idx_media_entity;not null"`
	EntityID   uuid.UUID `gorm:"type:char(36);index:idx_media_entity;not null"`
	Category   string    `gorm:"type:varchar(20);not null"`

	FileName    string `gorm:"not null"`
	Bucket      string `gorm:"not null"`
	ObjectKey   string `gorm:"not null"`
	URL         string `gorm:"not null"`
	ThumbKey    string
	ThumbURL    string
	ContentType string
	Size        int64

	UploadedByUserID uuid.UUID `gorm:"type:char(36)"`

	gorm.Model
}

func (f *MediaFile) BeforeCreate(tx *gorm.DB) (err error) {
	f.ID = uuid.New()
	return
}
