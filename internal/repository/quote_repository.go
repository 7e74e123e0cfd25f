package repository

import (
	"context"

	"gorm.io/gorm"

	"book-talk-api/internal/domain"
)

// QuoteListRow is a quote joined with its author nickname and book title
type QuoteListRow struct {
	domain.Quote
	Nickname  string
	BookTitle string
}

// QuoteRepository defines data access for quotes and quote likes
type QuoteRepository interface {
	Create(ctx context.Context, quote *domain.Quote) error
	FindByID(ctx context.Context, id uint) (*domain.Quote, error)
	Update(ctx context.Context, quote *domain.Quote) error
	Delete(ctx context.Context, id uint) error
	ListByBook(ctx context.Context, bookID uint, limit, offset int) ([]QuoteListRow, error)
	CountByBook(ctx context.Context, bookID uint) (int64, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]QuoteListRow, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	ListPopular(ctx context.Context, limit int) ([]QuoteListRow, error)
	HasUserQuotedBook(ctx context.Context, userID, bookID uint) (bool, error)

	AddLike(ctx context.Context, quoteID, userID uint) (bool, error)
	RemoveLike(ctx context.Context, quoteID, userID uint) (bool, error)
	ExistsLike(ctx context.Context, quoteID, userID uint) (bool, error)
}

type quoteRepositoryImpl struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new instance of QuoteRepository
func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepositoryImpl{db: db}
}

func (r *quoteRepositoryImpl) Create(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *quoteRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Quote, error) {
	var quote domain.Quote
	if err := r.db.WithContext(ctx).First(&quote, id).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *quoteRepositoryImpl) Update(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

// Delete removes the quote and its likes together
func (r *quoteRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", id).Delete(&domain.QuoteLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Quote{}, id).Error
	})
}

func (r *quoteRepositoryImpl) listQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("quotes q").
		Select("q.*, u.nickname AS nickname, b.title AS book_title").
		Joins("INNER JOIN users u ON u.id = q.user_id").
		Joins("INNER JOIN books b ON b.id = q.book_id")
}

func (r *quoteRepositoryImpl) ListByBook(ctx context.Context, bookID uint, limit, offset int) ([]QuoteListRow, error) {
	var rows []QuoteListRow
	err := r.listQuery(ctx).
		Where("q.book_id = ?", bookID).
		Order("q.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *quoteRepositoryImpl) CountByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("book_id = ?", bookID).
		Count(&count).Error
	return count, err
}

func (r *quoteRepositoryImpl) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]QuoteListRow, error) {
	var rows []QuoteListRow
	err := r.listQuery(ctx).
		Where("q.user_id = ?", userID).
		Order("q.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *quoteRepositoryImpl) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// ListPopular returns the most liked quotes, recency breaking ties
func (r *quoteRepositoryImpl) ListPopular(ctx context.Context, limit int) ([]QuoteListRow, error) {
	var rows []QuoteListRow
	err := r.listQuery(ctx).
		Order("q.like_count DESC, q.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *quoteRepositoryImpl) HasUserQuotedBook(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddLike inserts a like row and bumps the counter in one transaction.
// Returns false without writing when the user already liked the quote.
func (r *quoteRepositoryImpl) AddLike(ctx context.Context, quoteID, userID uint) (bool, error) {
	inserted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.QuoteLike{}).
			Where("quote_id = ? AND user_id = ?", quoteID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		if err := tx.Create(&domain.QuoteLike{
			QuoteID: quoteID,
			UserID:  userID,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.Quote{}).
			Where("id = ?", quoteID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
			return err
		}

		inserted = true
		return nil
	})
	return inserted, err
}

// RemoveLike deletes the like row and decrements the counter, flooring at zero
func (r *quoteRepositoryImpl) RemoveLike(ctx context.Context, quoteID, userID uint) (bool, error) {
	removed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("quote_id = ? AND user_id = ?", quoteID, userID).
			Delete(&domain.QuoteLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&domain.Quote{}).
			Where("id = ? AND like_count > 0", quoteID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error; err != nil {
			return err
		}

		removed = true
		return nil
	})
	return removed, err
}

func (r *quoteRepositoryImpl) ExistsLike(ctx context.Context, quoteID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.QuoteLike{}).
		Where("quote_id = ? AND user_id = ?", quoteID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
