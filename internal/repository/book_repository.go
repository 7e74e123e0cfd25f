package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"book-talk-api/internal/domain"
)

// BookRepository defines data access for books, genres and bookmarks
type BookRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Book, error)
	FindByAladinItemID(ctx context.Context, itemID string) (*domain.Book, error)
	Upsert(ctx context.Context, book *domain.Book) error

	FindOrCreateGenre(ctx context.Context, name string, parentID *uint) (*domain.Genre, error)
	ListGenres(ctx context.Context) ([]*domain.Genre, error)
	LinkGenre(ctx context.Context, bookID, genreID uint) error
	ListBookGenres(ctx context.Context, bookID uint) ([]*domain.Genre, error)

	AddBookmark(ctx context.Context, userID, bookID uint) (bool, error)
	RemoveBookmark(ctx context.Context, userID, bookID uint) (bool, error)
	ExistsBookmark(ctx context.Context, userID, bookID uint) (bool, error)
	ListBookmarks(ctx context.Context, userID uint, limit, offset int) ([]*domain.Book, error)
	CountBookmarks(ctx context.Context, userID uint) (int64, error)
}

type bookRepositoryImpl struct {
	db *gorm.DB
}

// NewBookRepository creates a new instance of BookRepository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepositoryImpl{db: db}
}

func (r *bookRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Book, error) {
	var book domain.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepositoryImpl) FindByAladinItemID(ctx context.Context, itemID string) (*domain.Book, error) {
	var book domain.Book
	if err := r.db.WithContext(ctx).Where("aladin_item_id = ?", itemID).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// Upsert inserts the book or refreshes its catalog fields when the
// external item id already exists
func (r *bookRepositoryImpl) Upsert(ctx context.Context, book *domain.Book) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "aladin_item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "author", "publisher", "published_date",
				"description", "thumbnail_url", "page_count", "updated_at",
			}),
		}).
		Create(book).Error
}

func (r *bookRepositoryImpl) FindOrCreateGenre(ctx context.Context, name string, parentID *uint) (*domain.Genre, error) {
	var genre domain.Genre
	err := r.db.WithContext(ctx).
		Where(domain.Genre{Name: name}).
		Attrs(domain.Genre{ParentID: parentID}).
		FirstOrCreate(&genre).Error
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *bookRepositoryImpl) ListGenres(ctx context.Context) ([]*domain.Genre, error) {
	var genres []*domain.Genre
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

// LinkGenre associates a genre with a book, ignoring a duplicate pair
func (r *bookRepositoryImpl) LinkGenre(ctx context.Context, bookID, genreID uint) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.BookGenre{BookID: bookID, GenreID: genreID}).Error
}

func (r *bookRepositoryImpl) ListBookGenres(ctx context.Context, bookID uint) ([]*domain.Genre, error) {
	var genres []*domain.Genre
	err := r.db.WithContext(ctx).
		Table("genres g").
		Joins("INNER JOIN book_genres bg ON bg.genre_id = g.id").
		Where("bg.book_id = ?", bookID).
		Order("g.id ASC").
		Find(&genres).Error
	if err != nil {
		return nil, err
	}
	return genres, nil
}

// AddBookmark creates a bookmark, returning false if it already exists
func (r *bookRepositoryImpl) AddBookmark(ctx context.Context, userID, bookID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.Bookmark{UserID: userID, BookID: bookID})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *bookRepositoryImpl) RemoveBookmark(ctx context.Context, userID, bookID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&domain.Bookmark{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *bookRepositoryImpl) ExistsBookmark(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Bookmark{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListBookmarks returns one page of the user's bookmarked books, most
// recently bookmarked first
func (r *bookRepositoryImpl) ListBookmarks(ctx context.Context, userID uint, limit, offset int) ([]*domain.Book, error) {
	var books []*domain.Book
	err := r.db.WithContext(ctx).
		Table("books b").
		Select("b.*").
		Joins("INNER JOIN bookmarks bm ON bm.book_id = b.id").
		Where("bm.user_id = ?", userID).
		Order("bm.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepositoryImpl) CountBookmarks(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Bookmark{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
