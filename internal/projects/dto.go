package projects

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mateoquintana/brandforge-backend/pkg/db/models"
	"github.com/mateoquintana/brandforge-backend/pkg/enums"
)

// ProjectDTO is the transport shape for a project.
type ProjectDTO struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Colors      []string         `json:"colors"`
	Fonts       []string         `json:"fonts"`
	LogoURL     *string          `json:"logo_url,omitempty"`
	Guidelines  *string          `json:"guidelines,omitempty"`
	DesignType  enums.DesignType `json:"design_type"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// CreateProjectInput holds validated fields for a new project.
type CreateProjectInput struct {
	Name        string
	Description *string
	Colors      []string
	Fonts       []string
	LogoURL     *string
	Guidelines  *string
	DesignType  enums.DesignType
}

// ProjectPage is one page of projects ordered newest first.
type ProjectPage struct {
	Items      []ProjectDTO `json:"items"`
	NextCursor *string      `json:"next_cursor,omitempty"`
}

func FromModel(p *models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Colors:      stringSlice(p.Colors),
		Fonts:       stringSlice(p.Fonts),
		LogoURL:     p.LogoURL,
		Guidelines:  p.Guidelines,
		DesignType:  p.DesignType,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func stringSlice(arr pq.StringArray) []string {
	if arr == nil {
		return []string{}
	}
	return append([]string(nil), arr...)
}
