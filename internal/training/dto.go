package training

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mateoquintana/brandforge-backend/pkg/db/models"
	"github.com/mateoquintana/brandforge-backend/pkg/enums"
)

// TrainingDataDTO is the transport shape for a training-data record.
type TrainingDataDTO struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	ImagePath   string           `json:"image_path"`
	DesignType  enums.DesignType `json:"design_type"`
	Tags        []string         `json:"tags"`
	Description string           `json:"description"`
	Processed   bool             `json:"processed"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// UploadInput holds the validated fields accompanying an uploaded image.
type UploadInput struct {
	Filename    string
	Image       []byte
	DesignType  enums.DesignType
	Tags        []string
	Description string
}

// TrainingDataPage is one page of records ordered newest first.
type TrainingDataPage struct {
	Items      []TrainingDataDTO `json:"items"`
	NextCursor *string           `json:"next_cursor,omitempty"`
}

func FromModel(td *models.TrainingData) TrainingDataDTO {
	return TrainingDataDTO{
		ID:          td.ID,
		UserID:      td.UserID,
		ImagePath:   td.ImagePath,
		DesignType:  td.DesignType,
		Tags:        tagSlice(td.Tags),
		Description: td.Description,
		Processed:   td.Processed,
		CreatedAt:   td.CreatedAt,
		UpdatedAt:   td.UpdatedAt,
	}
}

func tagSlice(arr pq.StringArray) []string {
	if arr == nil {
		return []string{}
	}
	return append([]string(nil), arr...)
}
