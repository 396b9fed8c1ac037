package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/mateoquintana/brandforge-backend/pkg/enums"
)

// Project groups designs under one brand brief.
type Project struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	Name        string           `gorm:"column:name;not null"`
	Description *string          `gorm:"column:description"`
	Colors      pq.StringArray   `gorm:"column:colors;type:text[]"`
	Fonts       pq.StringArray   `gorm:"column:fonts;type:text[]"`
	LogoURL     *string          `gorm:"column:logo_url"`
	Guidelines  *string          `gorm:"column:guidelines"`
	DesignType  enums.DesignType `gorm:"column:design_type;type:text;not null"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Project) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
