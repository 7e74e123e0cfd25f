package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"book-talk-api/internal/client"
	"book-talk-api/internal/domain"
	"book-talk-api/internal/dto"
	"book-talk-api/internal/repository"
	"book-talk-api/internal/response"
)

// BookService defines the interface for catalog search and book detail logic
type BookService interface {
	// Search passes a keyword search through to the catalog API
	Search(ctx context.Context, query string, page, limit int) (*dto.BookSearchResponse, error)
	// Bestsellers passes the bestseller list through to the catalog API
	Bestsellers(ctx context.Context, page, limit int) (*dto.BookSearchResponse, error)
	// GetDetail returns a locally stored book, importing it from the
	// catalog on first access
	GetDetail(ctx context.Context, aladinItemID string, userID uint) (*dto.BookDetailResponse, error)
	// ListGenres returns all known genres
	ListGenres(ctx context.Context) ([]dto.GenreResponse, error)
}

// bookServiceImpl is the implementation of BookService
type bookServiceImpl struct {
	bookRepo     repository.BookRepository
	aladinClient client.AladinClient
	logger       *zap.Logger
}

// NewBookService creates a new instance of BookService
func NewBookService(bookRepo repository.BookRepository, aladinClient client.AladinClient, logger *zap.Logger) BookService {
	return &bookServiceImpl{
		bookRepo:     bookRepo,
		aladinClient: aladinClient,
		logger:       logger,
	}
}

// Search passes a keyword search through to the catalog API
func (s *bookServiceImpl) Search(ctx context.Context, query string, page, limit int) (*dto.BookSearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "검색어를 입력해주세요.", "")
	}

	result, err := s.aladinClient.SearchBooks(ctx, query, page, limit)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeExternalAPI, "도서 검색에 실패했습니다.", err.Error())
	}
	return toBookSearchResponse(result, page, limit), nil
}

// Bestsellers passes the bestseller list through to the catalog API
func (s *bookServiceImpl) Bestsellers(ctx context.Context, page, limit int) (*dto.BookSearchResponse, error) {
	result, err := s.aladinClient.ListBestsellers(ctx, page, limit)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeExternalAPI, "베스트셀러 조회에 실패했습니다.", err.Error())
	}
	return toBookSearchResponse(result, page, limit), nil
}

// GetDetail returns a locally stored book, importing it from the catalog
// on first access. Imported category paths become linked genres.
func (s *bookServiceImpl) GetDetail(ctx context.Context, aladinItemID string, userID uint) (*dto.BookDetailResponse, error) {
	book, err := s.bookRepo.FindByAladinItemID(ctx, aladinItemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		book, err = s.importBook(ctx, aladinItemID)
	}
	if err != nil {
		return nil, err
	}

	genres, err := s.bookRepo.ListBookGenres(ctx, book.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "도서 조회에 실패했습니다.", err.Error())
	}

	bookmarked := false
	if userID != 0 {
		bookmarked, err = s.bookRepo.ExistsBookmark(ctx, userID, book.ID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "도서 조회에 실패했습니다.", err.Error())
		}
	}

	resp := &dto.BookDetailResponse{
		BookID:        book.ID,
		AladinItemID:  book.AladinItemID,
		Title:         book.Title,
		Author:        book.Author,
		Publisher:     book.Publisher,
		PublishedDate: book.PublishedDate,
		Description:   book.Description,
		ThumbnailURL:  book.ThumbnailURL,
		PageCount:     book.PageCount,
		Genres:        make([]dto.GenreResponse, 0, len(genres)),
		IsBookmarked:  bookmarked,
	}
	for _, g := range genres {
		resp.Genres = append(resp.Genres, dto.GenreResponse{GenreID: g.ID, Name: g.Name})
	}
	return resp, nil
}

// ListGenres returns all known genres
func (s *bookServiceImpl) ListGenres(ctx context.Context) ([]dto.GenreResponse, error) {
	genres, err := s.bookRepo.ListGenres(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "장르 목록 조회에 실패했습니다.", err.Error())
	}

	result := make([]dto.GenreResponse, 0, len(genres))
	for _, g := range genres {
		result = append(result, dto.GenreResponse{GenreID: g.ID, Name: g.Name})
	}
	return result, nil
}

func (s *bookServiceImpl) importBook(ctx context.Context, aladinItemID string) (*domain.Book, error) {
	item, err := s.aladinClient.LookupBook(ctx, aladinItemID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeExternalAPI, "해당 도서를 찾을 수 없습니다.", err.Error())
	}

	book := &domain.Book{
		AladinItemID: strconv.FormatInt(item.ItemID, 10),
		Title:        item.Title,
	}
	if item.Author != "" {
		book.Author = &item.Author
	}
	if item.Publisher != "" {
		book.Publisher = &item.Publisher
	}
	if item.PubDate != "" {
		book.PublishedDate = &item.PubDate
	}
	if item.Description != "" {
		book.Description = &item.Description
	}
	if item.Cover != "" {
		book.ThumbnailURL = &item.Cover
	}
	if item.SubInfo != nil && item.SubInfo.ItemPage > 0 {
		pages := item.SubInfo.ItemPage
		book.PageCount = &pages
	}

	if err := s.bookRepo.Upsert(ctx, book); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "도서 저장에 실패했습니다.", err.Error())
	}

	for _, name := range parseCategories(item.CategoryName) {
		genre, err := s.bookRepo.FindOrCreateGenre(ctx, name, nil)
		if err != nil {
			s.logger.Warn("failed to create genre", zap.String("name", name), zap.Error(err))
			continue
		}
		if err := s.bookRepo.LinkGenre(ctx, book.ID, genre.ID); err != nil {
			s.logger.Warn("failed to link genre", zap.String("name", name), zap.Error(err))
		}
	}

	s.logger.Info("book imported from catalog",
		zap.Uint("book_id", book.ID),
		zap.String("aladin_item_id", book.AladinItemID),
	)
	return book, nil
}

// parseCategories splits an aladin category path like
// "국내도서>소설/시/희곡>한국소설" into its segments, skipping the root
func parseCategories(categoryName string) []string {
	if categoryName == "" {
		return nil
	}
	parts := strings.Split(categoryName, ">")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func toBookSearchResponse(result *client.AladinSearchResult, page, limit int) *dto.BookSearchResponse {
	books := make([]dto.BookSearchItem, 0, len(result.Item))
	for _, item := range result.Item {
		entry := dto.BookSearchItem{
			AladinItemID: strconv.FormatInt(item.ItemID, 10),
			Title:        item.Title,
			Author:       item.Author,
			Publisher:    item.Publisher,
			PublishedAt:  item.PubDate,
			ThumbnailURL: item.Cover,
			Category:     item.CategoryName,
		}
		if item.Description != "" {
			desc := item.Description
			entry.Description = &desc
		}
		books = append(books, entry)
	}
	return &dto.BookSearchResponse{
		Books:   books,
		Total:   result.TotalResults,
		Page:    page,
		HasMore: page*limit < result.TotalResults,
	}
}
