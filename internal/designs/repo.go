package designs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/mateoquintana/brandforge-backend/pkg/db/models"
	"github.com/mateoquintana/brandforge-backend/pkg/pagination"
)

// Repository exposes design persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a designs repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new design with no generated images and version zero.
func (r *Repository) Create(ctx context.Context, projectID, userID uuid.UUID, input CreateDesignInput) (*models.Design, error) {
	design := &models.Design{
		ProjectID:       projectID,
		UserID:          userID,
		ReferenceImage:  input.ReferenceImage,
		Title:           input.Title,
		Copy:            input.Copy,
		Description:     input.Description,
		CallToAction:    input.CallToAction,
		Footer:          input.Footer,
		GeneratedImages: pq.StringArray{},
		CurrentVersion:  0,
		IsActive:        true,
	}
	if err := r.db.WithContext(ctx).Create(design).Error; err != nil {
		return nil, err
	}
	return design, nil
}

// FindByID loads a design by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Design, error) {
	var design models.Design
	if err := r.db.WithContext(ctx).First(&design, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &design, nil
}

// ListByProjectAndUser returns designs scoped to both the project and the
// owner, newest first. Both filters apply together so a non-owner sees
// nothing rather than someone else's rows.
func (r *Repository) ListByProjectAndUser(ctx context.Context, projectID, userID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Design, error) {
	query := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit)

	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Design
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// AppendGeneratedImages replaces the image list and advances the version,
// guarded on the version the caller read. Returns false without error when
// another writer advanced the version first, so the caller can reload and
// retry.
func (r *Repository) AppendGeneratedImages(ctx context.Context, designID uuid.UUID, expectedVersion int, images []string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Design{}).
		Where("id = ? AND current_version = ?", designID, expectedVersion).
		Updates(map[string]any{
			"generated_images": pq.StringArray(images),
			"current_version":  len(images),
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
