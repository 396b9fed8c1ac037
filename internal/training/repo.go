package training

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/mateoquintana/brandforge-backend/pkg/db/models"
	"github.com/mateoquintana/brandforge-backend/pkg/enums"
	"github.com/mateoquintana/brandforge-backend/pkg/pagination"
)

// Repository exposes training-data persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a training-data repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new training-data record for the uploading admin.
func (r *Repository) Create(ctx context.Context, userID uuid.UUID, imagePath string, designType enums.DesignType, tags []string, description string) (*models.TrainingData, error) {
	record := &models.TrainingData{
		UserID:      userID,
		ImagePath:   imagePath,
		DesignType:  designType,
		Tags:        pq.StringArray(tags),
		Description: description,
		Processed:   false,
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// List returns training-data records newest first, one page at a time.
func (r *Repository) List(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.TrainingData, error) {
	query := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit)

	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.TrainingData
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
