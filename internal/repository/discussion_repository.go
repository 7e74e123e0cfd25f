package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"book-talk-api/internal/domain"
)

// VoteCounts holds the per-choice vote tally for a VS discussion
type VoteCounts struct {
	Option1 int64
	Option2 int64
}

// Total returns the combined number of votes
func (v VoteCounts) Total() int64 {
	return v.Option1 + v.Option2
}

// DiscussionListRow is a discussion joined with its author nickname and
// comment count, used by listing queries
type DiscussionListRow struct {
	domain.Discussion
	Nickname     string
	CommentCount int64
}

// DiscussionRepository defines data access for discussions, comments,
// votes and likes
type DiscussionRepository interface {
	Create(ctx context.Context, discussion *domain.Discussion) error
	FindByID(ctx context.Context, id uint) (*domain.Discussion, error)
	ListByBook(ctx context.Context, bookID uint) ([]DiscussionListRow, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]DiscussionListRow, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	IncrementViewCount(ctx context.Context, id uint) error

	CreateComment(ctx context.Context, comment *domain.DiscussionComment) error
	HasUserCommented(ctx context.Context, discussionID, userID uint) (bool, error)
	ListComments(ctx context.Context, discussionID uint) ([]*domain.DiscussionComment, error)
	ListCommentsForSummary(ctx context.Context, discussionID uint) ([]*domain.DiscussionComment, error)
	CountComments(ctx context.Context, discussionID uint) (int64, error)

	CreateVote(ctx context.Context, vote *domain.DiscussionVote) error
	FindVote(ctx context.Context, discussionID, userID uint) (*domain.DiscussionVote, error)
	CountVotes(ctx context.Context, discussionID uint) (VoteCounts, error)

	AddLike(ctx context.Context, discussionID, userID uint) (bool, error)
	RemoveLike(ctx context.Context, discussionID, userID uint) (bool, error)
	ExistsLike(ctx context.Context, discussionID, userID uint) (bool, error)
}

// discussionRepositoryImpl is the GORM implementation of DiscussionRepository
type discussionRepositoryImpl struct {
	db *gorm.DB
}

// NewDiscussionRepository creates a new instance of DiscussionRepository
func NewDiscussionRepository(db *gorm.DB) DiscussionRepository {
	return &discussionRepositoryImpl{db: db}
}

// Create inserts a new discussion
func (r *discussionRepositoryImpl) Create(ctx context.Context, discussion *domain.Discussion) error {
	return r.db.WithContext(ctx).Create(discussion).Error
}

// FindByID finds a discussion by its id
func (r *discussionRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Discussion, error) {
	var discussion domain.Discussion
	if err := r.db.WithContext(ctx).First(&discussion, id).Error; err != nil {
		return nil, err
	}
	return &discussion, nil
}

// ListByBook returns all discussions for a book, newest first, with the
// author nickname and comment count joined in
func (r *discussionRepositoryImpl) ListByBook(ctx context.Context, bookID uint) ([]DiscussionListRow, error) {
	var rows []DiscussionListRow
	err := r.db.WithContext(ctx).
		Table("discussions d").
		Select("d.*, u.nickname AS nickname, "+
			"(SELECT COUNT(*) FROM discussion_comments dc WHERE dc.discussion_id = d.id) AS comment_count").
		Joins("INNER JOIN users u ON u.id = d.user_id").
		Where("d.book_id = ?", bookID).
		Order("d.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByUser returns one page of a user's discussions, newest first
func (r *discussionRepositoryImpl) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]DiscussionListRow, error) {
	var rows []DiscussionListRow
	err := r.db.WithContext(ctx).
		Table("discussions d").
		Select("d.*, u.nickname AS nickname, "+
			"(SELECT COUNT(*) FROM discussion_comments dc WHERE dc.discussion_id = d.id) AS comment_count").
		Joins("INNER JOIN users u ON u.id = d.user_id").
		Where("d.user_id = ?", userID).
		Order("d.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByUser counts a user's discussions
func (r *discussionRepositoryImpl) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Discussion{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// IncrementViewCount bumps the view counter in a single statement
func (r *discussionRepositoryImpl) IncrementViewCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&domain.Discussion{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// CreateComment inserts a new discussion comment
func (r *discussionRepositoryImpl) CreateComment(ctx context.Context, comment *domain.DiscussionComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// HasUserCommented reports whether the user already has a comment on the
// discussion. Drives the first-comment experience reward.
func (r *discussionRepositoryImpl) HasUserCommented(ctx context.Context, discussionID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.DiscussionComment{}).
		Where("discussion_id = ? AND user_id = ?", discussionID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListComments returns all comments for a discussion in posting order,
// with the author preloaded
func (r *discussionRepositoryImpl) ListComments(ctx context.Context, discussionID uint) ([]*domain.DiscussionComment, error) {
	var comments []*domain.DiscussionComment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("discussion_id = ?", discussionID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ListCommentsForSummary returns all comments grouped by choice then by
// recency, the order the summary prompt expects
func (r *discussionRepositoryImpl) ListCommentsForSummary(ctx context.Context, discussionID uint) ([]*domain.DiscussionComment, error) {
	var comments []*domain.DiscussionComment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("discussion_id = ?", discussionID).
		Order("choice ASC, created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CountComments counts all comments on a discussion
func (r *discussionRepositoryImpl) CountComments(ctx context.Context, discussionID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.DiscussionComment{}).
		Where("discussion_id = ?", discussionID).
		Count(&count).Error
	return count, err
}

// CreateVote inserts a vote row. The unique index on (discussion_id,
// user_id) makes a racing duplicate fail here rather than slip through.
func (r *discussionRepositoryImpl) CreateVote(ctx context.Context, vote *domain.DiscussionVote) error {
	return r.db.WithContext(ctx).Create(vote).Error
}

// FindVote returns the user's vote on a discussion, or ErrRecordNotFound
func (r *discussionRepositoryImpl) FindVote(ctx context.Context, discussionID, userID uint) (*domain.DiscussionVote, error) {
	var vote domain.DiscussionVote
	err := r.db.WithContext(ctx).
		Where("discussion_id = ? AND user_id = ?", discussionID, userID).
		First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// CountVotes tallies votes per choice for a discussion
func (r *discussionRepositoryImpl) CountVotes(ctx context.Context, discussionID uint) (VoteCounts, error) {
	var results []struct {
		Choice int
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.DiscussionVote{}).
		Select("choice, COUNT(*) AS count").
		Where("discussion_id = ?", discussionID).
		Group("choice").
		Scan(&results).Error
	if err != nil {
		return VoteCounts{}, err
	}

	var counts VoteCounts
	for _, row := range results {
		switch row.Choice {
		case 1:
			counts.Option1 = row.Count
		case 2:
			counts.Option2 = row.Count
		}
	}
	return counts, nil
}

// AddLike inserts a like row and bumps the counter in one transaction.
// Returns false without writing when the user already liked the discussion.
func (r *discussionRepositoryImpl) AddLike(ctx context.Context, discussionID, userID uint) (bool, error) {
	inserted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.DiscussionLike{}).
			Where("discussion_id = ? AND user_id = ?", discussionID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		if err := tx.Create(&domain.DiscussionLike{
			DiscussionID: discussionID,
			UserID:       userID,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.Discussion{}).
			Where("id = ?", discussionID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
			return err
		}

		inserted = true
		return nil
	})
	return inserted, err
}

// RemoveLike deletes the like row and decrements the counter, flooring at
// zero. Returns false when no like row existed.
func (r *discussionRepositoryImpl) RemoveLike(ctx context.Context, discussionID, userID uint) (bool, error) {
	removed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("discussion_id = ? AND user_id = ?", discussionID, userID).
			Delete(&domain.DiscussionLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&domain.Discussion{}).
			Where("id = ? AND like_count > 0", discussionID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error; err != nil {
			return err
		}

		removed = true
		return nil
	})
	return removed, err
}

// ExistsLike reports whether the user liked the discussion
func (r *discussionRepositoryImpl) ExistsLike(ctx context.Context, discussionID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.DiscussionLike{}).
		Where("discussion_id = ? AND user_id = ?", discussionID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsNotFound reports whether err is the GORM record-not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
