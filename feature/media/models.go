package media

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Media types stored on a record.
const (
	TypeImage = "image"
	TypeVideo = "video"
)

// MediaRecord binds an uploaded asset to its derived poster.
// PosterPath is set only for videos whose poster was generated and stored.
type MediaRecord struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	FilePath   string    `gorm:"size:512;not null;uniqueIndex" json:"file_path"`
	PosterPath *string   `gorm:"size:512;index" json:"poster_path"`
	Folder     string    `gorm:"size:128;not null" json:"folder"`
	Type       string    `gorm:"size:16;not null" json:"type"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName pins the table name.
func (MediaRecord) TableName() string {
	return "media_records"
}

// BeforeCreate assigns an ID when none is set.
func (m *MediaRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
