package projects

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/mateoquintana/brandforge-backend/pkg/db/models"
	"github.com/mateoquintana/brandforge-backend/pkg/pagination"
)

// Repository exposes project persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a projects repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new project owned by the given user.
func (r *Repository) Create(ctx context.Context, userID uuid.UUID, input CreateProjectInput) (*models.Project, error) {
	project := &models.Project{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Colors:      pq.StringArray(input.Colors),
		Fonts:       pq.StringArray(input.Fonts),
		LogoURL:     input.LogoURL,
		Guidelines:  input.Guidelines,
		DesignType:  input.DesignType,
	}
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// FindByID loads a project by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByUser returns the user's projects newest first, one page at a time.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Project, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit)

	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Project
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
