package repository

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"book-talk-api/internal/domain"
)

func setupUserTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	err = db.AutoMigrate(
		&domain.User{},
		&domain.RefreshToken{},
		&domain.UserExp{},
		&domain.Genre{},
		&domain.UserGenre{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{Email: "reader@example.com", Password: "hashed", Nickname: "독서가"}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	exists, err := repo.ExistsByEmail(ctx, "reader@example.com")
	if err != nil {
		t.Fatalf("ExistsByEmail failed: %v", err)
	}
	if !exists {
		t.Error("expected existing email to be found")
	}

	exists, err = repo.ExistsByEmail(ctx, "other@example.com")
	if err != nil {
		t.Fatalf("ExistsByEmail failed: %v", err)
	}
	if exists {
		t.Error("expected unknown email to be absent")
	}
}

func TestUserRepository_SaveExp_Upsert(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "leveler")

	if err := repo.SaveExp(ctx, &domain.UserExp{UserID: user.ID, Exp: 50, Level: 1}); err != nil {
		t.Fatalf("first SaveExp failed: %v", err)
	}
	if err := repo.SaveExp(ctx, &domain.UserExp{UserID: user.ID, Exp: 120, Level: 2}); err != nil {
		t.Fatalf("second SaveExp failed: %v", err)
	}

	exp, err := repo.FindExp(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindExp failed: %v", err)
	}
	if exp.Exp != 120 || exp.Level != 2 {
		t.Errorf("expected exp 120 level 2 after upsert, got %d/%d", exp.Exp, exp.Level)
	}

	var count int64
	db.Model(&domain.UserExp{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected a single exp row, got %d", count)
	}
}

func TestUserRepository_DeleteExpiredRefreshTokens(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "tokenuser")
	now := time.Now()

	tokens := []*domain.RefreshToken{
		{UserID: user.ID, Token: "expired-1", ExpiresAt: now.Add(-time.Hour)},
		{UserID: user.ID, Token: "expired-2", ExpiresAt: now.Add(-time.Minute)},
		{UserID: user.ID, Token: "valid", ExpiresAt: now.Add(time.Hour)},
	}
	for _, token := range tokens {
		if err := repo.SaveRefreshToken(ctx, token); err != nil {
			t.Fatalf("failed to save token: %v", err)
		}
	}

	deleted, err := repo.DeleteExpiredRefreshTokens(ctx, now)
	if err != nil {
		t.Fatalf("DeleteExpiredRefreshTokens failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted tokens, got %d", deleted)
	}

	if _, err := repo.FindRefreshToken(ctx, "valid"); err != nil {
		t.Errorf("valid token should survive cleanup: %v", err)
	}
	if _, err := repo.FindRefreshToken(ctx, "expired-1"); err == nil {
		t.Error("expired token should be gone")
	}
}

func TestUserRepository_ReplaceGenres(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "genrefan")

	genres := []*domain.Genre{{Name: "소설"}, {Name: "에세이"}, {Name: "인문"}}
	for _, genre := range genres {
		if err := db.Create(genre).Error; err != nil {
			t.Fatalf("failed to create genre: %v", err)
		}
	}

	if err := repo.ReplaceGenres(ctx, user.ID, []uint{genres[0].ID, genres[1].ID}); err != nil {
		t.Fatalf("first ReplaceGenres failed: %v", err)
	}
	if err := repo.ReplaceGenres(ctx, user.ID, []uint{genres[2].ID}); err != nil {
		t.Fatalf("second ReplaceGenres failed: %v", err)
	}

	selected, err := repo.ListGenres(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListGenres failed: %v", err)
	}
	if len(selected) != 1 {
		t.Fatalf("expected 1 genre after replacement, got %d", len(selected))
	}
	if selected[0].Name != "인문" {
		t.Errorf("expected 인문, got %s", selected[0].Name)
	}
}
