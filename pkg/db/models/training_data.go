package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/mateoquintana/brandforge-backend/pkg/enums"
)

// TrainingData is an admin-uploaded reference image used to tune prompts.
type TrainingData struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	ImagePath   string           `gorm:"column:image_path;not null"`
	DesignType  enums.DesignType `gorm:"column:design_type;type:text;not null"`
	Tags        pq.StringArray   `gorm:"column:tags;type:text[]"`
	Description string           `gorm:"column:description"`
	Processed   bool             `gorm:"column:processed;not null;default:false"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName avoids gorm pluralizing to "training_datas".
func (TrainingData) TableName() string {
	return "training_data"
}

func (t *TrainingData) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
