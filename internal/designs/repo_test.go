package designs

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mateoquintana/brandforge-backend/pkg/config"
	"github.com/mateoquintana/brandforge-backend/pkg/db"
	"github.com/mateoquintana/brandforge-backend/pkg/pagination"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	client, err := db.New(context.Background(), config.DBConfig{
		Driver:       "sqlite",
		SQLitePath:   "file::memory:",
		MaxOpenConns: 1,
	}, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client.DB()
}

func TestRepoCreateAndFind(t *testing.T) {
	repo := NewRepository(testDB(t))
	projectID, userID := uuid.New(), uuid.New()
	title := "50% Off"

	created, err := repo.Create(context.Background(), projectID, userID, CreateDesignInput{Title: &title})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("id not assigned")
	}
	if created.CurrentVersion != 0 || !created.IsActive {
		t.Fatalf("unexpected new design %+v", created)
	}

	found, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Title == nil || *found.Title != title {
		t.Fatalf("title lost: %+v", found.Title)
	}
}

func TestRepoAppendGuardedByVersion(t *testing.T) {
	repo := NewRepository(testDB(t))
	design, err := repo.Create(context.Background(), uuid.New(), uuid.New(), CreateDesignInput{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := repo.AppendGeneratedImages(context.Background(), design.ID, 0, []string{"a", "b"})
	if err != nil || !ok {
		t.Fatalf("first append: ok=%v err=%v", ok, err)
	}

	// Stale version must not overwrite.
	ok, err = repo.AppendGeneratedImages(context.Background(), design.ID, 0, []string{"x"})
	if err != nil {
		t.Fatalf("stale append: %v", err)
	}
	if ok {
		t.Fatal("stale version should not win")
	}

	stored, err := repo.FindByID(context.Background(), design.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.CurrentVersion != 2 || len(stored.GeneratedImages) != 2 {
		t.Fatalf("unexpected state: version=%d images=%v", stored.CurrentVersion, stored.GeneratedImages)
	}
	if stored.GeneratedImages[0] != "a" || stored.GeneratedImages[1] != "b" {
		t.Fatalf("order lost: %v", stored.GeneratedImages)
	}

	ok, err = repo.AppendGeneratedImages(context.Background(), design.ID, 2, []string{"a", "b", "c"})
	if err != nil || !ok {
		t.Fatalf("second append: ok=%v err=%v", ok, err)
	}
	stored, _ = repo.FindByID(context.Background(), design.ID)
	if stored.CurrentVersion != 3 {
		t.Fatalf("expected version 3, got %d", stored.CurrentVersion)
	}
}

func TestRepoListScopesBothFilters(t *testing.T) {
	repo := NewRepository(testDB(t))
	projectID, owner, other := uuid.New(), uuid.New(), uuid.New()

	if _, err := repo.Create(context.Background(), projectID, owner, CreateDesignInput{}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(context.Background(), projectID, other, CreateDesignInput{}); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := repo.ListByProjectAndUser(context.Background(), projectID, owner, nil, pagination.DefaultLimit)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].UserID != owner {
		t.Fatalf("scope leak: %+v", rows)
	}

	rows, err = repo.ListByProjectAndUser(context.Background(), projectID, uuid.New(), nil, pagination.DefaultLimit)
	if err != nil {
		t.Fatalf("list as stranger: %v", err)
	}
	if len(rows) != 0 {
		t.Fatal("stranger must see nothing")
	}
}
