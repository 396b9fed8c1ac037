package projects

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mateoquintana/brandforge-backend/pkg/db/models"
	pkgerrors "github.com/mateoquintana/brandforge-backend/pkg/errors"
	"github.com/mateoquintana/brandforge-backend/pkg/pagination"
)

// Service defines the behavior needed by the projects controllers.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateProjectInput) (*ProjectDTO, error)
	List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ProjectPage, error)
	GetOwned(ctx context.Context, userID, projectID uuid.UUID) (*models.Project, error)
}

type projectRepository interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateProjectInput) (*models.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Project, error)
}

type service struct {
	repo projectRepository
}

// NewService constructs a projects service bound to the given repository.
func NewService(repo projectRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("project repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateProjectInput) (*ProjectDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity")
	}
	if !input.DesignType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid design type")
	}

	project, err := s.repo.Create(ctx, userID, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create project")
	}

	dto := FromModel(project)
	return &dto, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ProjectPage, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity")
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.ListByUser(ctx, userID, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list projects")
	}

	page := &ProjectPage{Items: make([]ProjectDTO, 0, len(rows))}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &next
	}
	for i := range rows {
		page.Items = append(page.Items, FromModel(&rows[i]))
	}
	return page, nil
}

// GetOwned loads a project and verifies the caller owns it. A project owned
// by someone else reports forbidden, not found stays not found.
func (s *service) GetOwned(ctx context.Context, userID, projectID uuid.UUID) (*models.Project, error) {
	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup project")
	}
	if project.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "project belongs to another user")
	}
	return project, nil
}
