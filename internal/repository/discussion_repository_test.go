package repository

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"book-talk-api/internal/domain"
)

func setupDiscussionTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Book{},
		&domain.Discussion{},
		&domain.DiscussionComment{},
		&domain.DiscussionVote{},
		&domain.DiscussionLike{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, nickname string) *domain.User {
	user := &domain.User{
		Email:    nickname + "@example.com",
		Password: "hashed",
		Nickname: nickname,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createTestBook(t *testing.T, db *gorm.DB, itemID string) *domain.Book {
	book := &domain.Book{
		AladinItemID: itemID,
		Title:        "테스트 도서",
	}
	if err := db.Create(book).Error; err != nil {
		t.Fatalf("failed to create book: %v", err)
	}
	return book
}

func strPtr(s string) *string { return &s }

func TestDiscussionRepository_CreateVote_DuplicateRejected(t *testing.T) {
	db := setupDiscussionTestDB(t)
	repo := NewDiscussionRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "voter")
	book := createTestBook(t, db, "item-1")

	endDate := time.Now().Add(24 * time.Hour)
	discussion := &domain.Discussion{
		BookID:  book.ID,
		UserID:  user.ID,
		Type:    domain.DiscussionTypeVS,
		Title:   "VS 토론",
		Content: "내용",
		Option1: strPtr("찬성"),
		Option2: strPtr("반대"),
		EndDate: &endDate,
	}
	if err := repo.Create(ctx, discussion); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err := repo.CreateVote(ctx, &domain.DiscussionVote{
		DiscussionID: discussion.ID,
		UserID:       user.ID,
		Choice:       1,
	})
	if err != nil {
		t.Fatalf("CreateVote() error = %v", err)
	}

	// The unique index must reject a second vote from the same user
	err = repo.CreateVote(ctx, &domain.DiscussionVote{
		DiscussionID: discussion.ID,
		UserID:       user.ID,
		Choice:       2,
	})
	if err == nil {
		t.Error("CreateVote() expected error for duplicate vote, got nil")
	}
}

func TestDiscussionRepository_CountVotes(t *testing.T) {
	db := setupDiscussionTestDB(t)
	repo := NewDiscussionRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	book := createTestBook(t, db, "item-2")

	endDate := time.Now().Add(24 * time.Hour)
	discussion := &domain.Discussion{
		BookID:  book.ID,
		UserID:  author.ID,
		Type:    domain.DiscussionTypeVS,
		Title:   "VS 토론",
		Content: "내용",
		Option1: strPtr("A"),
		Option2: strPtr("B"),
		EndDate: &endDate,
	}
	if err := repo.Create(ctx, discussion); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for i, choice := range []int{1, 1, 1, 2} {
		voter := createTestUser(t, db, "voter"+string(rune('a'+i)))
		if err := repo.CreateVote(ctx, &domain.DiscussionVote{
			DiscussionID: discussion.ID,
			UserID:       voter.ID,
			Choice:       choice,
		}); err != nil {
			t.Fatalf("CreateVote() error = %v", err)
		}
	}

	counts, err := repo.CountVotes(ctx, discussion.ID)
	if err != nil {
		t.Fatalf("CountVotes() error = %v", err)
	}
	if counts.Option1 != 3 {
		t.Errorf("CountVotes() Option1 = %d, want 3", counts.Option1)
	}
	if counts.Option2 != 1 {
		t.Errorf("CountVotes() Option2 = %d, want 1", counts.Option2)
	}
	if counts.Total() != 4 {
		t.Errorf("Total() = %d, want 4", counts.Total())
	}
}

func TestDiscussionRepository_CountVotes_Empty(t *testing.T) {
	db := setupDiscussionTestDB(t)
	repo := NewDiscussionRepository(db)
	ctx := context.Background()

	counts, err := repo.CountVotes(ctx, 999)
	if err != nil {
		t.Fatalf("CountVotes() error = %v", err)
	}
	if counts.Total() != 0 {
		t.Errorf("Total() = %d, want 0", counts.Total())
	}
}

func TestDiscussionRepository_AddLike_Idempotent(t *testing.T) {
	db := setupDiscussionTestDB(t)
	repo := NewDiscussionRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "liker")
	book := createTestBook(t, db, "item-3")

	discussion := &domain.Discussion{
		BookID:  book.ID,
		UserID:  user.ID,
		Type:    domain.DiscussionTypeFree,
		Title:   "자유 토론",
		Content: "내용",
	}
	if err := repo.Create(ctx, discussion); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	inserted, err := repo.AddLike(ctx, discussion.ID, user.ID)
	if err != nil {
		t.Fatalf("AddLike() error = %v", err)
	}
	if !inserted {
		t.Error("AddLike() first call should insert")
	}

	// Second like from the same user must be a no-op
	inserted, err = repo.AddLike(ctx, discussion.ID, user.ID)
	if err != nil {
		t.Fatalf("AddLike() second call error = %v", err)
	}
	if inserted {
		t.Error("AddLike() second call should not insert")
	}

	var updated domain.Discussion
	db.First(&updated, discussion.ID)
	if updated.LikeCount != 1 {
		t.Errorf("like_count = %d, want 1", updated.LikeCount)
	}
}

func TestDiscussionRepository_RemoveLike_FloorAtZero(t *testing.T) {
	db := setupDiscussionTestDB(t)
	repo := NewDiscussionRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "liker")
	book := createTestBook(t, db, "item-4")

	discussion := &domain.Discussion{
		BookID:  book.ID,
		UserID:  user.ID,
		Type:    domain.DiscussionTypeFree,
		Title:   "자유 토론",
		Content: "내용",
	}
	if err := repo.Create(ctx, discussion); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Removing a like that was never added must not touch the counter
	removed, err := repo.RemoveLike(ctx, discussion.ID, user.ID)
	if err != nil {
		t.Fatalf("RemoveLike() error = %v", err)
	}
	if removed {
		t.Error("RemoveLike() should report false when no like exists")
	}

	var updated domain.Discussion
	db.First(&updated, discussion.ID)
	if updated.LikeCount != 0 {
		t.Errorf("like_count = %d, want 0", updated.LikeCount)
	}

	if _, err := repo.AddLike(ctx, discussion.ID, user.ID); err != nil {
		t.Fatalf("AddLike() error = %v", err)
	}
	removed, err = repo.RemoveLike(ctx, discussion.ID, user.ID)
	if err != nil {
		t.Fatalf("RemoveLike() error = %v", err)
	}
	if !removed {
		t.Error("RemoveLike() should report true after a like was added")
	}

	db.First(&updated, discussion.ID)
	if updated.LikeCount != 0 {
		t.Errorf("like_count after remove = %d, want 0", updated.LikeCount)
	}
}

func TestDiscussionRepository_HasUserCommented(t *testing.T) {
	db := setupDiscussionTestDB(t)
	repo := NewDiscussionRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "commenter")
	book := createTestBook(t, db, "item-5")

	discussion := &domain.Discussion{
		BookID:  book.ID,
		UserID:  user.ID,
		Type:    domain.DiscussionTypeFree,
		Title:   "자유 토론",
		Content: "내용",
	}
	if err := repo.Create(ctx, discussion); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	commented, err := repo.HasUserCommented(ctx, discussion.ID, user.ID)
	if err != nil {
		t.Fatalf("HasUserCommented() error = %v", err)
	}
	if commented {
		t.Error("HasUserCommented() = true before any comment")
	}

	if err := repo.CreateComment(ctx, &domain.DiscussionComment{
		DiscussionID: discussion.ID,
		UserID:       user.ID,
		Content:      "첫 번째 의견",
	}); err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}

	commented, err = repo.HasUserCommented(ctx, discussion.ID, user.ID)
	if err != nil {
		t.Fatalf("HasUserCommented() error = %v", err)
	}
	if !commented {
		t.Error("HasUserCommented() = false after a comment")
	}
}

func TestDiscussionRepository_ListCommentsForSummary_Order(t *testing.T) {
	db := setupDiscussionTestDB(t)
	repo := NewDiscussionRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	book := createTestBook(t, db, "item-6")

	endDate := time.Now().Add(-time.Hour)
	discussion := &domain.Discussion{
		BookID:  book.ID,
		UserID:  author.ID,
		Type:    domain.DiscussionTypeVS,
		Title:   "VS 토론",
		Content: "내용",
		Option1: strPtr("A"),
		Option2: strPtr("B"),
		EndDate: &endDate,
	}
	if err := repo.Create(ctx, discussion); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	choice1 := 1
	choice2 := 2
	base := time.Now().Add(-3 * time.Hour)
	comments := []*domain.DiscussionComment{
		{DiscussionID: discussion.ID, UserID: author.ID, Content: "반대 의견", Choice: &choice2},
		{DiscussionID: discussion.ID, UserID: author.ID, Content: "찬성 의견 1", Choice: &choice1},
		{DiscussionID: discussion.ID, UserID: author.ID, Content: "찬성 의견 2", Choice: &choice1},
	}
	for i, c := range comments {
		c.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("failed to create comment: %v", err)
		}
	}

	got, err := repo.ListCommentsForSummary(ctx, discussion.ID)
	if err != nil {
		t.Fatalf("ListCommentsForSummary() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(got))
	}
	if *got[0].Choice != 1 || *got[1].Choice != 1 || *got[2].Choice != 2 {
		t.Errorf("comments not grouped by choice: %v %v %v",
			*got[0].Choice, *got[1].Choice, *got[2].Choice)
	}
	if got[0].Content != "찬성 의견 1" {
		t.Errorf("within a choice comments should be oldest first, got %q", got[0].Content)
	}
}

func TestDiscussionRepository_ListByBook(t *testing.T) {
	db := setupDiscussionTestDB(t)
	repo := NewDiscussionRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "writer")
	book := createTestBook(t, db, "item-7")
	other := createTestBook(t, db, "item-8")

	for i, b := range []*domain.Book{book, book, other} {
		d := &domain.Discussion{
			BookID:  b.ID,
			UserID:  user.ID,
			Type:    domain.DiscussionTypeFree,
			Title:   "토론",
			Content: "내용",
		}
		d.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	rows, err := repo.ListByBook(ctx, book.ID)
	if err != nil {
		t.Fatalf("ListByBook() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 discussions, got %d", len(rows))
	}
	if rows[0].Nickname != "writer" {
		t.Errorf("nickname = %q, want %q", rows[0].Nickname, "writer")
	}
}

func TestDiscussionRepository_IncrementViewCount(t *testing.T) {
	db := setupDiscussionTestDB(t)
	repo := NewDiscussionRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "viewer")
	book := createTestBook(t, db, "item-9")

	discussion := &domain.Discussion{
		BookID:  book.ID,
		UserID:  user.ID,
		Type:    domain.DiscussionTypeFree,
		Title:   "토론",
		Content: "내용",
	}
	if err := repo.Create(ctx, discussion); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.IncrementViewCount(ctx, discussion.ID); err != nil {
		t.Fatalf("IncrementViewCount() error = %v", err)
	}
	if err := repo.IncrementViewCount(ctx, discussion.ID); err != nil {
		t.Fatalf("IncrementViewCount() error = %v", err)
	}

	var updated domain.Discussion
	db.First(&updated, discussion.ID)
	if updated.ViewCount != 2 {
		t.Errorf("view_count = %d, want 2", updated.ViewCount)
	}
}
