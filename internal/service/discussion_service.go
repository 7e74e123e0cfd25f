package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"book-talk-api/internal/domain"
	"book-talk-api/internal/dto"
	"book-talk-api/internal/metrics"
	"book-talk-api/internal/repository"
	"book-talk-api/internal/response"
	"book-talk-api/internal/util"
)

// DiscussionService defines the interface for discussion business logic
type DiscussionService interface {
	CreateDiscussion(ctx context.Context, bookID, userID uint, req *dto.CreateDiscussionRequest) (*dto.DiscussionResponse, error)
	GetDiscussion(ctx context.Context, discussionID uint) (*dto.DiscussionResponse, error)
	ListByBook(ctx context.Context, bookID uint) ([]dto.DiscussionResponse, error)
	ListComments(ctx context.Context, discussionID uint) ([]dto.DiscussionCommentResponse, error)
	LikeDiscussion(ctx context.Context, discussionID, userID uint) (*dto.LikeResponse, error)
	UnlikeDiscussion(ctx context.Context, discussionID, userID uint) (*dto.LikeResponse, error)
}

// discussionServiceImpl is the implementation of DiscussionService
type discussionServiceImpl struct {
	discussionRepo repository.DiscussionRepository
	bookRepo       repository.BookRepository
	logger         *zap.Logger
	metrics        *metrics.Metrics
}

// NewDiscussionService creates a new instance of DiscussionService
func NewDiscussionService(
	discussionRepo repository.DiscussionRepository,
	bookRepo repository.BookRepository,
	logger *zap.Logger,
	m *metrics.Metrics,
) DiscussionService {
	return &discussionServiceImpl{
		discussionRepo: discussionRepo,
		bookRepo:       bookRepo,
		logger:         logger,
		metrics:        m,
	}
}

// CreateDiscussion opens a discussion on a book. VS discussions require
// both option labels and an end date; FREE discussions forbid them.
func (s *discussionServiceImpl) CreateDiscussion(ctx context.Context, bookID, userID uint, req *dto.CreateDiscussionRequest) (*dto.DiscussionResponse, error) {
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "해당 도서를 찾을 수 없습니다.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "도서 조회에 실패했습니다.", err.Error())
	}

	discussion := &domain.Discussion{
		BookID:  bookID,
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Type:    domain.DiscussionType(req.Type),
	}

	switch discussion.Type {
	case domain.DiscussionTypeVS:
		if req.Option1 == nil || req.Option2 == nil || *req.Option1 == "" || *req.Option2 == "" {
			return nil, response.NewAppError(response.ErrCodeValidation, "VS 토론에는 두 개의 선택지가 필요합니다.", "")
		}
		if req.EndDate == nil {
			return nil, response.NewAppError(response.ErrCodeValidation, "VS 토론에는 종료일이 필요합니다.", "")
		}
		endDate, err := time.Parse(time.RFC3339, *req.EndDate)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeValidation, "종료일 형식이 올바르지 않습니다.", err.Error())
		}
		if !endDate.After(time.Now()) {
			return nil, response.NewAppError(response.ErrCodeValidation, "종료일은 미래여야 합니다.", "")
		}
		discussion.Option1 = req.Option1
		discussion.Option2 = req.Option2
		discussion.EndDate = &endDate
	case domain.DiscussionTypeFree:
		if req.Option1 != nil || req.Option2 != nil || req.EndDate != nil {
			return nil, response.NewAppError(response.ErrCodeValidation, "자유 토론에는 선택지와 종료일을 설정할 수 없습니다.", "")
		}
	}

	if err := s.discussionRepo.Create(ctx, discussion); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "토론 생성에 실패했습니다.", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementDiscussionCreated()
	}
	s.logger.Info("discussion created",
		zap.Uint("discussion_id", discussion.ID),
		zap.Uint("book_id", bookID),
		zap.String("type", string(discussion.Type)),
	)

	resp := toDiscussionResponse(discussion, "", 0, time.Now())
	return &resp, nil
}

// GetDiscussion returns one discussion and counts the view
func (s *discussionServiceImpl) GetDiscussion(ctx context.Context, discussionID uint) (*dto.DiscussionResponse, error) {
	discussion, err := s.discussionRepo.FindByID(ctx, discussionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "해당 토론을 찾을 수 없습니다.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "토론 조회에 실패했습니다.", err.Error())
	}

	if err := s.discussionRepo.IncrementViewCount(ctx, discussionID); err != nil {
		// A lost view count does not block the read
		s.logger.Warn("failed to increment view count",
			zap.Uint("discussion_id", discussionID),
			zap.Error(err),
		)
	} else {
		discussion.ViewCount++
	}

	commentCount, err := s.discussionRepo.CountComments(ctx, discussionID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "토론 조회에 실패했습니다.", err.Error())
	}

	resp := toDiscussionResponse(discussion, "", commentCount, time.Now())
	return &resp, nil
}

// ListByBook returns all discussions on a book, newest first
func (s *discussionServiceImpl) ListByBook(ctx context.Context, bookID uint) ([]dto.DiscussionResponse, error) {
	rows, err := s.discussionRepo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "토론 목록 조회에 실패했습니다.", err.Error())
	}

	now := time.Now()
	result := make([]dto.DiscussionResponse, 0, len(rows))
	for i := range rows {
		result = append(result, toDiscussionResponse(&rows[i].Discussion, rows[i].Nickname, rows[i].CommentCount, now))
	}
	return result, nil
}

// ListComments returns all opinions on a discussion in posting order
func (s *discussionServiceImpl) ListComments(ctx context.Context, discussionID uint) ([]dto.DiscussionCommentResponse, error) {
	if _, err := s.discussionRepo.FindByID(ctx, discussionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "해당 토론을 찾을 수 없습니다.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "토론 조회에 실패했습니다.", err.Error())
	}

	comments, err := s.discussionRepo.ListComments(ctx, discussionID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "의견 목록 조회에 실패했습니다.", err.Error())
	}

	result := make([]dto.DiscussionCommentResponse, 0, len(comments))
	for _, c := range comments {
		result = append(result, dto.DiscussionCommentResponse{
			CommentID: c.ID,
			UserID:    c.UserID,
			Nickname:  c.User.Nickname,
			Content:   c.Content,
			Choice:    c.Choice,
			CreatedAt: util.FormatDate(c.CreatedAt),
		})
	}
	return result, nil
}

// LikeDiscussion adds the caller's like, idempotently
func (s *discussionServiceImpl) LikeDiscussion(ctx context.Context, discussionID, userID uint) (*dto.LikeResponse, error) {
	if _, err := s.discussionRepo.FindByID(ctx, discussionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "해당 토론을 찾을 수 없습니다.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "토론 조회에 실패했습니다.", err.Error())
	}

	if _, err := s.discussionRepo.AddLike(ctx, discussionID, userID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "좋아요 처리에 실패했습니다.", err.Error())
	}

	updated, err := s.discussionRepo.FindByID(ctx, discussionID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "토론 조회에 실패했습니다.", err.Error())
	}
	return &dto.LikeResponse{Liked: true, LikeCount: updated.LikeCount}, nil
}

// UnlikeDiscussion removes the caller's like, idempotently
func (s *discussionServiceImpl) UnlikeDiscussion(ctx context.Context, discussionID, userID uint) (*dto.LikeResponse, error) {
	if _, err := s.discussionRepo.FindByID(ctx, discussionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "해당 토론을 찾을 수 없습니다.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "토론 조회에 실패했습니다.", err.Error())
	}

	if _, err := s.discussionRepo.RemoveLike(ctx, discussionID, userID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "좋아요 취소에 실패했습니다.", err.Error())
	}

	updated, err := s.discussionRepo.FindByID(ctx, discussionID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "토론 조회에 실패했습니다.", err.Error())
	}
	return &dto.LikeResponse{Liked: false, LikeCount: updated.LikeCount}, nil
}

// toDiscussionResponse maps a discussion onto its response shape with the
// lifecycle state computed at now
func toDiscussionResponse(d *domain.Discussion, nickname string, commentCount int64, now time.Time) dto.DiscussionResponse {
	resp := dto.DiscussionResponse{
		DiscussionID: d.ID,
		BookID:       d.BookID,
		UserID:       d.UserID,
		Nickname:     nickname,
		Title:        d.Title,
		Content:      d.Content,
		Type:         string(d.Type),
		Status:       string(d.StatusAt(now)),
		Option1:      d.Option1,
		Option2:      d.Option2,
		ViewCount:    d.ViewCount,
		LikeCount:    d.LikeCount,
		CommentCount: commentCount,
		CreatedAt:    util.FormatDate(d.CreatedAt),
	}
	if d.EndDate != nil {
		formatted := util.FormatDate(*d.EndDate)
		resp.EndDate = &formatted
		if d.StatusAt(now) == domain.DiscussionStatusOpen {
			daysLeft := util.DaysLeft(*d.EndDate, now)
			resp.DaysLeft = &daysLeft
		}
	}
	return resp
}
