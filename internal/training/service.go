package training

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mateoquintana/brandforge-backend/internal/media"
	"github.com/mateoquintana/brandforge-backend/pkg/db/models"
	"github.com/mateoquintana/brandforge-backend/pkg/enums"
	pkgerrors "github.com/mateoquintana/brandforge-backend/pkg/errors"
	"github.com/mateoquintana/brandforge-backend/pkg/pagination"
)

// Service defines the behavior needed by the training-data controllers.
// Role gating happens in middleware; the service assumes an admin caller.
type Service interface {
	Upload(ctx context.Context, userID uuid.UUID, input UploadInput) (*TrainingDataDTO, error)
	List(ctx context.Context, params pagination.Params) (*TrainingDataPage, error)
}

type trainingRepository interface {
	Create(ctx context.Context, userID uuid.UUID, imagePath string, designType enums.DesignType, tags []string, description string) (*models.TrainingData, error)
	List(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.TrainingData, error)
}

type imageStore interface {
	ProcessAndStore(raw []byte, filename, folder string) (string, error)
}

type service struct {
	repo  trainingRepository
	store imageStore
}

// ServiceParams bundles the dependencies required to build a training service.
type ServiceParams struct {
	Repo  trainingRepository
	Store imageStore
}

// NewService constructs a training-data service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("training repository is required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("image store is required")
	}
	return &service{repo: params.Repo, store: params.Store}, nil
}

func (s *service) Upload(ctx context.Context, userID uuid.UUID, input UploadInput) (*TrainingDataDTO, error) {
	if len(input.Image) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image file is required")
	}
	if !input.DesignType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid design type")
	}

	path, err := s.store.ProcessAndStore(input.Image, input.Filename, media.FolderTraining)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.Create(ctx, userID, path, input.DesignType, input.Tags, input.Description)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create training data")
	}

	dto := FromModel(record)
	return &dto, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*TrainingDataPage, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.List(ctx, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list training data")
	}

	page := &TrainingDataPage{Items: make([]TrainingDataDTO, 0, len(rows))}
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
