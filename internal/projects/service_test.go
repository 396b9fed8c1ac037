package projects

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mateoquintana/brandforge-backend/pkg/db/models"
	"github.com/mateoquintana/brandforge-backend/pkg/enums"
	pkgerrors "github.com/mateoquintana/brandforge-backend/pkg/errors"
	"github.com/mateoquintana/brandforge-backend/pkg/pagination"
)

type stubProjectRepo struct {
	byID      map[uuid.UUID]*models.Project
	listRows  []models.Project
	listErr   error
	createErr error
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{byID: map[uuid.UUID]*models.Project{}}
}

func (r *stubProjectRepo) Create(_ context.Context, userID uuid.UUID, input CreateProjectInput) (*models.Project, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	project := &models.Project{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       input.Name,
		DesignType: input.DesignType,
		CreatedAt:  time.Now().UTC(),
	}
	r.byID[project.ID] = project
	return project, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	if project, ok := r.byID[id]; ok {
		return project, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProjectRepo) ListByUser(_ context.Context, _ uuid.UUID, _ *pagination.Cursor, limit int) ([]models.Project, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	if len(r.listRows) > limit {
		return r.listRows[:limit], nil
	}
	return r.listRows, nil
}

func TestCreateRequiresUser(t *testing.T) {
	svc, err := NewService(newStubProjectRepo())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Create(context.Background(), uuid.Nil, CreateProjectInput{DesignType: enums.DesignTypeLogo})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestCreateRejectsInvalidDesignType(t *testing.T) {
	svc, _ := NewService(newStubProjectRepo())

	_, err := svc.Create(context.Background(), uuid.New(), CreateProjectInput{
		Name:       "Fall campaign",
		DesignType: enums.DesignType("banner"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateReturnsDTO(t *testing.T) {
	svc, _ := NewService(newStubProjectRepo())
	userID := uuid.New()

	dto, err := svc.Create(context.Background(), userID, CreateProjectInput{
		Name:       "Fall campaign",
		Colors:     []string{"#112233"},
		DesignType: enums.DesignTypeSocialMedia,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.UserID != userID || dto.Name != "Fall campaign" {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestListPaginates(t *testing.T) {
	repo := newStubProjectRepo()
	userID := uuid.New()
	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		repo.listRows = append(repo.listRows, models.Project{
			ID:        uuid.New(),
			UserID:    userID,
			Name:      "p",
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		})
	}
	svc, _ := NewService(repo)

	page, err := svc.List(context.Background(), userID, pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.NextCursor == nil {
		t.Fatal("expected next cursor")
	}
	cursor, err := pagination.ParseCursor(*page.NextCursor)
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if cursor.ID != repo.listRows[1].ID {
		t.Fatalf("cursor should point at last returned row")
	}
}

func TestListLastPageHasNoCursor(t *testing.T) {
	repo := newStubProjectRepo()
	userID := uuid.New()
	repo.listRows = []models.Project{{ID: uuid.New(), UserID: userID, CreatedAt: time.Now().UTC()}}
	svc, _ := NewService(repo)

	page, err := svc.List(context.Background(), userID, pagination.Params{Limit: 5})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.NextCursor != nil {
		t.Fatal("expected no next cursor on final page")
	}
}

func TestListRejectsBadCursor(t *testing.T) {
	svc, _ := NewService(newStubProjectRepo())

	_, err := svc.List(context.Background(), uuid.New(), pagination.Params{Cursor: "not-base64!!"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetOwnedEnforcesOwnership(t *testing.T) {
	repo := newStubProjectRepo()
	owner := uuid.New()
	project := &models.Project{ID: uuid.New(), UserID: owner}
	repo.byID[project.ID] = project
	svc, _ := NewService(repo)

	if _, err := svc.GetOwned(context.Background(), owner, project.ID); err != nil {
		t.Fatalf("owner lookup: %v", err)
	}

	_, err := svc.GetOwned(context.Background(), uuid.New(), project.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestGetOwnedNotFound(t *testing.T) {
	svc, _ := NewService(newStubProjectRepo())

	_, err := svc.GetOwned(context.Background(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListDependencyError(t *testing.T) {
	repo := newStubProjectRepo()
	repo.listErr = errors.New("boom")
	svc, _ := NewService(repo)

	_, err := svc.List(context.Background(), uuid.New(), pagination.Params{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
