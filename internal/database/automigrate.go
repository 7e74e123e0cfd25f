package database

import (
	"fmt"

	"gorm.io/gorm"

	"book-talk-api/internal/domain"
)

// Models lists every domain model in migration order. Parents come before
// the tables that reference them.
func Models() []interface{} {
	return []interface{}{
		&domain.User{},
		&domain.RefreshToken{},
		&domain.UserExp{},
		&domain.Genre{},
		&domain.UserGenre{},
		&domain.Book{},
		&domain.BookGenre{},
		&domain.Bookmark{},
		&domain.Quote{},
		&domain.QuoteLike{},
		&domain.Discussion{},
		&domain.DiscussionComment{},
		&domain.DiscussionVote{},
		&domain.DiscussionLike{},
		&domain.ReadingGroup{},
		&domain.ReadingGroupMember{},
	}
}

// AutoMigrate runs GORM auto-migration for all domain models. Tables,
// indexes and foreign key constraints are derived from the struct tags.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}
