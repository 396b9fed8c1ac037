package designs

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mateoquintana/brandforge-backend/pkg/db/models"
)

// DesignDTO is the transport shape for a design.
type DesignDTO struct {
	ID              uuid.UUID `json:"id"`
	ProjectID       uuid.UUID `json:"project_id"`
	UserID          uuid.UUID `json:"user_id"`
	ReferenceImage  *string   `json:"reference_image,omitempty"`
	Title           *string   `json:"title,omitempty"`
	Copy            *string   `json:"copy,omitempty"`
	Description     *string   `json:"description,omitempty"`
	CallToAction    *string   `json:"call_to_action,omitempty"`
	Footer          *string   `json:"footer,omitempty"`
	GeneratedImages []string  `json:"generated_images"`
	CurrentVersion  int       `json:"current_version"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateDesignInput holds validated content fields for a new design.
type CreateDesignInput struct {
	ReferenceImage *string
	Title          *string
	Copy           *string
	Description    *string
	CallToAction   *string
	Footer         *string
}

// DesignPage is one page of designs ordered newest first.
type DesignPage struct {
	Items      []DesignDTO `json:"items"`
	NextCursor *string     `json:"next_cursor,omitempty"`
}

// GenerateResult reports the outcome of one generate-versions call.
type GenerateResult struct {
	DesignID      uuid.UUID `json:"design_id"`
	Provider      string    `json:"provider"`
	NewVersions   []string  `json:"new_versions"`
	TotalVersions int       `json:"total_versions"`
}

func FromModel(d *models.Design) DesignDTO {
	return DesignDTO{
		ID:              d.ID,
		ProjectID:       d.ProjectID,
		UserID:          d.UserID,
		ReferenceImage:  d.ReferenceImage,
		Title:           d.Title,
		Copy:            d.Copy,
		Description:     d.Description,
		CallToAction:    d.CallToAction,
		Footer:          d.Footer,
		GeneratedImages: imageSlice(d.GeneratedImages),
		CurrentVersion:  d.CurrentVersion,
		IsActive:        d.IsActive,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func imageSlice(arr pq.StringArray) []string {
	if arr == nil {
		return []string{}
	}
	return append([]string(nil), arr...)
}
