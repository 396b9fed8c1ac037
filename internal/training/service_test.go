package training

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mateoquintana/brandforge-backend/pkg/db/models"
	"github.com/mateoquintana/brandforge-backend/pkg/enums"
	pkgerrors "github.com/mateoquintana/brandforge-backend/pkg/errors"
	"github.com/mateoquintana/brandforge-backend/pkg/pagination"
)

type stubTrainingRepo struct {
	created  *models.TrainingData
	listRows []models.TrainingData
	err      error
}

func (r *stubTrainingRepo) Create(_ context.Context, userID uuid.UUID, imagePath string, designType enums.DesignType, tags []string, description string) (*models.TrainingData, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.created = &models.TrainingData{
		ID:          uuid.New(),
		UserID:      userID,
		ImagePath:   imagePath,
		DesignType:  designType,
		Tags:        tags,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	return r.created, nil
}

func (r *stubTrainingRepo) List(_ context.Context, _ *pagination.Cursor, limit int) ([]models.TrainingData, error) {
	if r.err != nil {
		return nil, r.err
	}
	if len(r.listRows) > limit {
		return r.listRows[:limit], nil
	}
	return r.listRows, nil
}

type stubStore struct {
	path string
	err  error
}

func (s *stubStore) ProcessAndStore(_ []byte, _, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.path, nil
}

func TestUploadStoresImageAndRecord(t *testing.T) {
	repo := &stubTrainingRepo{}
	store := &stubStore{path: "training/banner-1.jpg"}
	svc, err := NewService(ServiceParams{Repo: repo, Store: store})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	userID := uuid.New()
	dto, err := svc.Upload(context.Background(), userID, UploadInput{
		Filename:    "banner.png",
		Image:       []byte{0x89, 0x50},
		DesignType:  enums.DesignTypePrint,
		Tags:        []string{"seasonal"},
		Description: "fall banner",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if dto.ImagePath != "training/banner-1.jpg" {
		t.Fatalf("unexpected path %s", dto.ImagePath)
	}
	if dto.UserID != userID || dto.Processed {
		t.Fatalf("unexpected dto %+v", dto)
	}
	if repo.created == nil {
		t.Fatal("record was not persisted")
	}
}

func TestUploadRequiresImage(t *testing.T) {
	svc, _ := NewService(ServiceParams{Repo: &stubTrainingRepo{}, Store: &stubStore{}})

	_, err := svc.Upload(context.Background(), uuid.New(), UploadInput{
		DesignType: enums.DesignTypePrint,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUploadRejectsInvalidDesignType(t *testing.T) {
	svc, _ := NewService(ServiceParams{Repo: &stubTrainingRepo{}, Store: &stubStore{}})

	_, err := svc.Upload(context.Background(), uuid.New(), UploadInput{
		Image:      []byte{1},
		DesignType: enums.DesignType("poster"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUploadPropagatesProcessingError(t *testing.T) {
	store := &stubStore{err: pkgerrors.New(pkgerrors.CodeProcessing, "decode failed")}
	svc, _ := NewService(ServiceParams{Repo: &stubTrainingRepo{}, Store: store})

	_, err := svc.Upload(context.Background(), uuid.New(), UploadInput{
		Image:      []byte{1},
		DesignType: enums.DesignTypeThumbnail,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeProcessing {
		t.Fatalf("expected processing error, got %v", err)
	}
}

func TestListPaginates(t *testing.T) {
	repo := &stubTrainingRepo{}
	for i := 0; i < 3; i++ {
		repo.listRows = append(repo.listRows, models.TrainingData{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC().Add(-time.Duration(i) * time.Minute),
		})
	}
	svc, _ := NewService(ServiceParams{Repo: repo, Store: &stubStore{}})

	page, err := svc.List(context.Background(), pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 2 || page.NextCursor == nil {
		t.Fatalf("expected 2 items with cursor, got %d items", len(page.Items))
	}
}

func TestListDependencyError(t *testing.T) {
	repo := &stubTrainingRepo{err: errors.New("boom")}
	svc, _ := NewService(ServiceParams{Repo: repo, Store: &stubStore{}})

	_, err := svc.List(context.Background(), pagination.Params{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
