package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"highpass/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var permitDBSeq atomic.Int64

func setupPermitTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Named shared-cache DB so the pool's connections see the same data;
	// a fresh name per test keeps tests isolated.
	dsn := fmt.Sprintf("file:permit_test_%d?mode=memory&cache=shared&_busy_timeout=5000", permitDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// SQLite allows one writer at a time; a single pooled connection keeps
	// concurrent transactions from tripping over table locks.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.PermitApplication{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func seedPendingPermit(t *testing.T, db *gorm.DB) (*models.User, *models.User, *models.PermitApplication) {
	t.Helper()

	tourist := models.User{Name: "Stanzin Dorje", Email: "stanzin@example.com", Role: models.RoleTourist}
	official := models.User{Name: "Rigzin Namgyal", Email: "rigzin@gov.example.com", Role: models.RoleOfficial}
	if err := db.Create(&tourist).Error; err != nil {
		t.Fatalf("create tourist: %v", err)
	}
	if err := db.Create(&official).Error; err != nil {
		t.Fatalf("create official: %v", err)
	}

	permit := models.PermitApplication{
		TouristID:   tourist.ID,
		Destination: "Pangong Tso",
		StartDate:   time.Now().AddDate(0, 0, 7),
		EndDate:     time.Now().AddDate(0, 0, 10),
		Reason:      "Lake photography trip",
		DocumentURL: "https://docs.example.com/passport.pdf",
		Status:      models.PermitStatusPending,
	}
	if err := db.Create(&permit).Error; err != nil {
		t.Fatalf("create permit: %v", err)
	}

	return &tourist, &official, &permit
}

func TestPermitRepository_Review_Approve(t *testing.T) {
	db := setupPermitTestDB(t)
	_, official, permit := seedPendingPermit(t, db)
	repo := NewPermitRepository(db)

	reviewed, err := repo.Review(context.Background(), permit.ID, models.PermitStatusApproved, official.ID, "Documents verified")
	if err != nil {
		t.Fatalf("review: %v", err)
	}

	if reviewed.Status != models.PermitStatusApproved {
		t.Fatalf("expected Approved, got %s", reviewed.Status)
	}
	if reviewed.ReviewedByID == nil || *reviewed.ReviewedByID != official.ID {
		t.Fatalf("reviewer not stamped: %+v", reviewed.ReviewedByID)
	}
	if reviewed.ReviewedAt == nil {
		t.Fatal("reviewed_at not stamped")
	}
	if reviewed.Version != permit.Version+1 {
		t.Fatalf("expected version bump to %d, got %d", permit.Version+1, reviewed.Version)
	}

	var stored models.PermitApplication
	if err := db.First(&stored, permit.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != models.PermitStatusApproved || stored.ReviewerNotes != "Documents verified" {
		t.Fatalf("decision not persisted: %+v", stored)
	}
}

func TestPermitRepository_Review_AlreadyDecided(t *testing.T) {
	db := setupPermitTestDB(t)
	_, official, permit := seedPendingPermit(t, db)
	repo := NewPermitRepository(db)

	if _, err := repo.Review(context.Background(), permit.ID, models.PermitStatusRejected, official.ID, "Incomplete documents"); err != nil {
		t.Fatalf("first review: %v", err)
	}

	_, err := repo.Review(context.Background(), permit.ID, models.PermitStatusApproved, official.ID, "")
	if err == nil {
		t.Fatal("expected error reviewing a decided permit")
	}
	appErr, ok := err.(*models.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != "ALREADY_DECIDED" {
		t.Fatalf("expected ALREADY_DECIDED, got %s", appErr.Code)
	}
}

func TestPermitRepository_Review_NotFound(t *testing.T) {
	db := setupPermitTestDB(t)
	_, official, _ := seedPendingPermit(t, db)
	repo := NewPermitRepository(db)

	_, err := repo.Review(context.Background(), 9999, models.PermitStatusApproved, official.ID, "")
	if err == nil {
		t.Fatal("expected error for unknown permit")
	}
	appErr, ok := err.(*models.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", appErr.Code)
	}
}

func TestPermitRepository_Review_SingleWinner(t *testing.T) {
	db := setupPermitTestDB(t)
	_, official, permit := seedPendingPermit(t, db)
	repo := NewPermitRepository(db)

	const reviewers = 5
	var wg sync.WaitGroup
	errs := make([]error, reviewers)

	for i := 0; i < reviewers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			decision := models.PermitStatusApproved
			if i%2 == 1 {
				decision = models.PermitStatusRejected
			}
			_, errs[i] = repo.Review(context.Background(), permit.ID, decision, official.ID, "")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one winning review, got %d", successes)
	}

	var stored models.PermitApplication
	if err := db.First(&stored, permit.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !models.IsTerminal(stored.Status) {
		t.Fatalf("permit should be decided, got %s", stored.Status)
	}
	if stored.Version != 1 {
		t.Fatalf("expected exactly one version bump, got %d", stored.Version)
	}
}

func TestPermitRepository_ListByTourist_NewestFirst(t *testing.T) {
	db := setupPermitTestDB(t)
	tourist, _, first := seedPendingPermit(t, db)
	repo := NewPermitRepository(db)

	second := models.PermitApplication{
		TouristID:   tourist.ID,
		Destination: "Nubra Valley",
		StartDate:   time.Now().AddDate(0, 1, 0),
		EndDate:     time.Now().AddDate(0, 1, 3),
		Reason:      "Camel safari",
		DocumentURL: "https://docs.example.com/passport.pdf",
		Status:      models.PermitStatusPending,
		CreatedAt:   first.CreatedAt.Add(time.Hour),
	}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("create second permit: %v", err)
	}

	permits, err := repo.ListByTourist(context.Background(), tourist.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(permits) != 2 {
		t.Fatalf("expected 2 permits, got %d", len(permits))
	}
	if permits[0].ID != second.ID {
		t.Fatalf("expected newest first, got %d", permits[0].ID)
	}
}
