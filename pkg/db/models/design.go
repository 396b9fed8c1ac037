package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Design is a single asset under a project. GeneratedImages is ordered and
// append-only; CurrentVersion must always equal len(GeneratedImages).
type Design struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ProjectID       uuid.UUID      `gorm:"column:project_id;type:uuid;not null;index"`
	UserID          uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index"`
	ReferenceImage  *string        `gorm:"column:reference_image"`
	Title           *string        `gorm:"column:title"`
	Copy            *string        `gorm:"column:copy"`
	Description     *string        `gorm:"column:description"`
	CallToAction    *string        `gorm:"column:call_to_action"`
	Footer          *string        `gorm:"column:footer"`
	GeneratedImages pq.StringArray `gorm:"column:generated_images;type:text[]"`
	CurrentVersion  int            `gorm:"column:current_version;not null;default:0"`
	IsActive        bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (d *Design) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
