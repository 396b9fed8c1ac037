package designs

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mateoquintana/brandforge-backend/pkg/db/models"
	"github.com/mateoquintana/brandforge-backend/pkg/enums"
	pkgerrors "github.com/mateoquintana/brandforge-backend/pkg/errors"
	"github.com/mateoquintana/brandforge-backend/pkg/logger"
	"github.com/mateoquintana/brandforge-backend/pkg/pagination"
)

const (
	// MaxGenerateCount bounds the fan-out of a single generate call.
	MaxGenerateCount = 10

	// appendRetries bounds the optimistic retry loop when concurrent
	// generate calls race on the same design.
	appendRetries = 5
)

// GenerateRequest is the payload accepted by the generate endpoint.
type GenerateRequest struct {
	Provider string `json:"provider" validate:"omitempty,max=32"`
	Count    int    `json:"count" validate:"omitempty,min=1,max=10"`
}

// Service defines the behavior needed by the designs controllers.
type Service interface {
	Create(ctx context.Context, userID, projectID uuid.UUID, input CreateDesignInput) (*DesignDTO, error)
	List(ctx context.Context, userID, projectID uuid.UUID, params pagination.Params) (*DesignPage, error)
	GenerateVersions(ctx context.Context, userID, designID uuid.UUID, req GenerateRequest) (*GenerateResult, error)
}

type designRepository interface {
	Create(ctx context.Context, projectID, userID uuid.UUID, input CreateDesignInput) (*models.Design, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Design, error)
	ListByProjectAndUser(ctx context.Context, projectID, userID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Design, error)
	AppendGeneratedImages(ctx context.Context, designID uuid.UUID, expectedVersion int, images []string) (bool, error)
}

type projectResolver interface {
	GetOwned(ctx context.Context, userID, projectID uuid.UUID) (*models.Project, error)
}

type imageGenerator interface {
	DefaultProvider() enums.Provider
	GenerateBatch(ctx context.Context, provider enums.Provider, project *models.Project, design *models.Design, count int) []string
}

type service struct {
	repo      designRepository
	projects  projectResolver
	generator imageGenerator
	log       *logger.Logger
}

// ServiceParams bundles the dependencies required to build a designs service.
type ServiceParams struct {
	Repo      designRepository
	Projects  projectResolver
	Generator imageGenerator
	Logger    *logger.Logger
}

// NewService constructs a designs service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("design repository is required")
	}
	if params.Projects == nil {
		return nil, fmt.Errorf("project resolver is required")
	}
	if params.Generator == nil {
		return nil, fmt.Errorf("image generator is required")
	}
	return &service{
		repo:      params.Repo,
		projects:  params.Projects,
		generator: params.Generator,
		log:       params.Logger,
	}, nil
}

func (s *service) Create(ctx context.Context, userID, projectID uuid.UUID, input CreateDesignInput) (*DesignDTO, error) {
	if _, err := s.projects.GetOwned(ctx, userID, projectID); err != nil {
		return nil, err
	}

	design, err := s.repo.Create(ctx, projectID, userID, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create design")
	}

	dto := FromModel(design)
	return &dto, nil
}

func (s *service) List(ctx context.Context, userID, projectID uuid.UUID, params pagination.Params) (*DesignPage, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.ListByProjectAndUser(ctx, projectID, userID, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list designs")
	}

	page := &DesignPage{Items: make([]DesignDTO, 0, len(rows))}
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

// GenerateVersions fans out count generation calls for the design, appends
// the resulting URLs and advances the version counter by count. The append is
// guarded on the version that was read, so two racing calls both land their
// images instead of one silently overwriting the other.
func (s *service) GenerateVersions(ctx context.Context, userID, designID uuid.UUID, req GenerateRequest) (*GenerateResult, error) {
	count := req.Count
	if count == 0 {
		count = 1
	}
	if count < 1 || count > MaxGenerateCount {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("count must be between 1 and %d", MaxGenerateCount))
	}

	design, err := s.loadOwnedDesign(ctx, userID, designID)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.GetOwned(ctx, userID, design.ProjectID)
	if err != nil {
		return nil, err
	}

	provider := s.resolveProvider(req.Provider)
	urls := s.generator.GenerateBatch(ctx, provider, project, design, count)

	total, err := s.appendWithRetry(ctx, design, urls)
	if err != nil {
		return nil, err
	}

	return &GenerateResult{
		DesignID:      design.ID,
		Provider:      string(provider),
		NewVersions:   urls,
		TotalVersions: total,
	}, nil
}

func (s *service) loadOwnedDesign(ctx context.Context, userID, designID uuid.UUID) (*models.Design, error) {
	design, err := s.repo.FindByID(ctx, designID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "design not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup design")
	}
	if design.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "design belongs to another user")
	}
	return design, nil
}

func (s *service) resolveProvider(raw string) enums.Provider {
	if raw == "" {
		return s.generator.DefaultProvider()
	}
	// Unrecognized providers pass through untouched; the generator resolves
	// them to placeholders rather than rejecting the request.
	if provider, err := enums.ParseProvider(raw); err == nil {
		return provider
	}
	return enums.Provider(raw)
}

func (s *service) appendWithRetry(ctx context.Context, design *models.Design, urls []string) (int, error) {
	current := design
	for attempt := 0; attempt < appendRetries; attempt++ {
		merged := make([]string, 0, len(current.GeneratedImages)+len(urls))
		merged = append(merged, current.GeneratedImages...)
		merged = append(merged, urls...)

		ok, err := s.repo.AppendGeneratedImages(ctx, current.ID, current.CurrentVersion, merged)
		if err != nil {
			return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append generated images")
		}
		if ok {
			return len(merged), nil
		}

		// Version moved underneath us; reload and merge again.
		reloaded, err := s.repo.FindByID(ctx, current.ID)
		if err != nil {
			return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload design")
		}
		current = reloaded
	}
	return 0, pkgerrors.New(pkgerrors.CodeConflict, "design is being updated concurrently, retry")
}
