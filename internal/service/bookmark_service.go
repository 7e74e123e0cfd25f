package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"book-talk-api/internal/dto"
	"book-talk-api/internal/repository"
	"book-talk-api/internal/response"
	"book-talk-api/internal/util"
)

// BookmarkService defines the interface for bookmark logic
type BookmarkService interface {
	AddBookmark(ctx context.Context, userID, bookID uint) error
	RemoveBookmark(ctx context.Context, userID, bookID uint) error
	ListBookmarks(ctx context.Context, userID uint, page, limit int) (*dto.BookmarkListResponse, error)
}

// bookmarkServiceImpl is the implementation of BookmarkService
type bookmarkServiceImpl struct {
	bookRepo repository.BookRepository
}

// NewBookmarkService creates a new instance of BookmarkService
func NewBookmarkService(bookRepo repository.BookRepository) BookmarkService {
	return &bookmarkServiceImpl{bookRepo: bookRepo}
}

// AddBookmark bookmarks a book for the caller
func (s *bookmarkServiceImpl) AddBookmark(ctx context.Context, userID, bookID uint) error {
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "해당 도서를 찾을 수 없습니다.", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "북마크 처리에 실패했습니다.", err.Error())
	}

	added, err := s.bookRepo.AddBookmark(ctx, userID, bookID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "북마크 처리에 실패했습니다.", err.Error())
	}
	if !added {
		return response.NewAppError(response.ErrCodeAlreadyExists, "이미 북마크한 도서입니다.", "")
	}
	return nil
}

// RemoveBookmark removes the caller's bookmark
func (s *bookmarkServiceImpl) RemoveBookmark(ctx context.Context, userID, bookID uint) error {
	removed, err := s.bookRepo.RemoveBookmark(ctx, userID, bookID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "북마크 해제에 실패했습니다.", err.Error())
	}
	if !removed {
		return response.NewAppError(response.ErrCodeNotFound, "북마크를 찾을 수 없습니다.", "")
	}
	return nil
}

// ListBookmarks returns one page of the caller's bookmarked books
func (s *bookmarkServiceImpl) ListBookmarks(ctx context.Context, userID uint, page, limit int) (*dto.BookmarkListResponse, error) {
	total, err := s.bookRepo.CountBookmarks(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "북마크 목록 조회에 실패했습니다.", err.Error())
	}

	pagination := util.Paginate(page, limit, total)
	books, err := s.bookRepo.ListBookmarks(ctx, userID, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "북마크 목록 조회에 실패했습니다.", err.Error())
	}

	items := make([]dto.BookmarkItem, 0, len(books))
	for _, b := range books {
		items = append(items, dto.BookmarkItem{
			BookID:       b.ID,
			Title:        b.Title,
			Author:       b.Author,
			ThumbnailURL: b.ThumbnailURL,
		})
	}
	return &dto.BookmarkListResponse{
		Bookmarks:  items,
		Pagination: pagination,
	}, nil
}
