package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"book-talk-api/internal/domain"
	"book-talk-api/internal/dto"
	"book-talk-api/internal/metrics"
	"book-talk-api/internal/repository"
	"book-talk-api/internal/response"
	"book-talk-api/internal/util"
)

// QuoteService defines the interface for quote business logic
type QuoteService interface {
	// CreateQuote posts a quote, granting exp on the poster's first
	// quote from that book
	CreateQuote(ctx context.Context, bookID, userID uint, req *dto.CreateQuoteRequest) (*dto.CreateQuoteResponse, error)
	GetQuote(ctx context.Context, quoteID, userID uint) (*dto.QuoteResponse, error)
	UpdateQuote(ctx context.Context, quoteID, userID uint, req *dto.UpdateQuoteRequest) error
	DeleteQuote(ctx context.Context, quoteID, userID uint) error
	ListByBook(ctx context.Context, bookID uint, page, limit int) (*dto.QuoteListResponse, error)
	ListPopular(ctx context.Context, limit int) ([]dto.QuoteResponse, error)
	LikeQuote(ctx context.Context, quoteID, userID uint) (*dto.LikeResponse, error)
	UnlikeQuote(ctx context.Context, quoteID, userID uint) (*dto.LikeResponse, error)
}

// quoteServiceImpl is the implementation of QuoteService
type quoteServiceImpl struct {
	quoteRepo  repository.QuoteRepository
	bookRepo   repository.BookRepository
	expService ExpService
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewQuoteService creates a new instance of QuoteService
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	bookRepo repository.BookRepository,
	expService ExpService,
	logger *zap.Logger,
	m *metrics.Metrics,
) QuoteService {
	return &quoteServiceImpl{
		quoteRepo:  quoteRepo,
		bookRepo:   bookRepo,
		expService: expService,
		logger:     logger,
		metrics:    m,
	}
}

// CreateQuote posts a quote. The poster's first quote from a book earns
// an experience reward.
func (s *quoteServiceImpl) CreateQuote(ctx context.Context, bookID, userID uint, req *dto.CreateQuoteRequest) (*dto.CreateQuoteResponse, error) {
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "해당 도서를 찾을 수 없습니다.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "도서 조회에 실패했습니다.", err.Error())
	}

	hasQuoted, err := s.quoteRepo.HasUserQuotedBook(ctx, userID, bookID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "글귀 등록에 실패했습니다.", err.Error())
	}

	quote := &domain.Quote{
		UserID:  userID,
		BookID:  bookID,
		Content: req.Content,
		Page:    req.Page,
	}
	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "글귀 등록에 실패했습니다.", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementQuoteCreated()
	}

	resp := &dto.CreateQuoteResponse{QuoteID: quote.ID}
	if !hasQuoted {
		result, err := s.expService.AddExp(ctx, userID, domain.ExpReward)
		if err != nil {
			s.logger.Error("failed to grant quote exp reward",
				zap.Uint("user_id", userID),
				zap.Uint("book_id", bookID),
				zap.Error(err),
			)
		} else {
			resp.ExpEarned = domain.ExpReward
			resp.LeveledUp = result.LeveledUp
			resp.Level = result.Level
		}
	}
	if resp.Level == 0 {
		if exp, err := s.expService.GetExp(ctx, userID); err == nil {
			resp.Level = exp.Level
		}
	}
	return resp, nil
}

// GetQuote returns one quote with the caller's like state
func (s *quoteServiceImpl) GetQuote(ctx context.Context, quoteID, userID uint) (*dto.QuoteResponse, error) {
	quote, err := s.findQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	liked := false
	if userID != 0 {
		liked, err = s.quoteRepo.ExistsLike(ctx, quoteID, userID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "글귀 조회에 실패했습니다.", err.Error())
		}
	}

	book, err := s.bookRepo.FindByID(ctx, quote.BookID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "글귀 조회에 실패했습니다.", err.Error())
	}

	return &dto.QuoteResponse{
		QuoteID:   quote.ID,
		BookID:    quote.BookID,
		BookTitle: book.Title,
		UserID:    quote.UserID,
		Content:   quote.Content,
		Page:      quote.Page,
		LikeCount: quote.LikeCount,
		IsLiked:   liked,
		CreatedAt: util.FormatDate(quote.CreatedAt),
	}, nil
}

// UpdateQuote edits a quote. Only the owner may edit.
func (s *quoteServiceImpl) UpdateQuote(ctx context.Context, quoteID, userID uint, req *dto.UpdateQuoteRequest) error {
	quote, err := s.findQuote(ctx, quoteID)
	if err != nil {
		return err
	}
	if quote.UserID != userID {
		return response.NewAppError(response.ErrCodeForbidden, "본인의 글귀만 수정할 수 있습니다.", "")
	}

	quote.Content = req.Content
	quote.Page = req.Page
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "글귀 수정에 실패했습니다.", err.Error())
	}
	return nil
}

// DeleteQuote removes a quote. Only the owner may delete.
func (s *quoteServiceImpl) DeleteQuote(ctx context.Context, quoteID, userID uint) error {
	quote, err := s.findQuote(ctx, quoteID)
	if err != nil {
		return err
	}
	if quote.UserID != userID {
		return response.NewAppError(response.ErrCodeForbidden, "본인의 글귀만 삭제할 수 있습니다.", "")
	}

	if err := s.quoteRepo.Delete(ctx, quoteID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "글귀 삭제에 실패했습니다.", err.Error())
	}
	return nil
}

// ListByBook returns one page of a book's quotes
func (s *quoteServiceImpl) ListByBook(ctx context.Context, bookID uint, page, limit int) (*dto.QuoteListResponse, error) {
	total, err := s.quoteRepo.CountByBook(ctx, bookID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "글귀 목록 조회에 실패했습니다.", err.Error())
	}

	pagination := util.Paginate(page, limit, total)
	rows, err := s.quoteRepo.ListByBook(ctx, bookID, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "글귀 목록 조회에 실패했습니다.", err.Error())
	}

	return &dto.QuoteListResponse{
		Quotes:     toQuoteResponses(rows),
		Pagination: pagination,
	}, nil
}

// ListPopular returns the most liked quotes
func (s *quoteServiceImpl) ListPopular(ctx context.Context, limit int) ([]dto.QuoteResponse, error) {
	if limit <= 0 {
		limit = util.DefaultPageLimit
	}
	rows, err := s.quoteRepo.ListPopular(ctx, limit)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "인기 글귀 조회에 실패했습니다.", err.Error())
	}
	return toQuoteResponses(rows), nil
}

// LikeQuote adds the caller's like, idempotently
func (s *quoteServiceImpl) LikeQuote(ctx context.Context, quoteID, userID uint) (*dto.LikeResponse, error) {
	if _, err := s.findQuote(ctx, quoteID); err != nil {
		return nil, err
	}
	if _, err := s.quoteRepo.AddLike(ctx, quoteID, userID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "좋아요 처리에 실패했습니다.", err.Error())
	}

	updated, err := s.findQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeResponse{Liked: true, LikeCount: updated.LikeCount}, nil
}

// UnlikeQuote removes the caller's like, idempotently
func (s *quoteServiceImpl) UnlikeQuote(ctx context.Context, quoteID, userID uint) (*dto.LikeResponse, error) {
	if _, err := s.findQuote(ctx, quoteID); err != nil {
		return nil, err
	}
	if _, err := s.quoteRepo.RemoveLike(ctx, quoteID, userID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "좋아요 취소에 실패했습니다.", err.Error())
	}

	updated, err := s.findQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeResponse{Liked: false, LikeCount: updated.LikeCount}, nil
}

func (s *quoteServiceImpl) findQuote(ctx context.Context, quoteID uint) (*domain.Quote, error) {
	quote, err := s.quoteRepo.FindByID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "해당 글귀를 찾을 수 없습니다.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "글귀 조회에 실패했습니다.", err.Error())
	}
	return quote, nil
}

func toQuoteResponses(rows []repository.QuoteListRow) []dto.QuoteResponse {
	result := make([]dto.QuoteResponse, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		result = append(result, dto.QuoteResponse{
			QuoteID:   r.ID,
			BookID:    r.BookID,
			BookTitle: r.BookTitle,
			UserID:    r.UserID,
			Nickname:  r.Nickname,
			Content:   r.Content,
			Page:      r.Page,
			LikeCount: r.LikeCount,
			CreatedAt: util.FormatDate(r.CreatedAt),
		})
	}
	return result
}
