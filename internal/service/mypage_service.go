package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"book-talk-api/internal/domain"
	"book-talk-api/internal/dto"
	"book-talk-api/internal/repository"
	"book-talk-api/internal/response"
	"book-talk-api/internal/util"
)

// MyPageService defines the interface for the caller's own pages
type MyPageService interface {
	GetMyPage(ctx context.Context, userID uint) (*dto.MyPageResponse, error)
	GetProfile(ctx context.Context, userID uint) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) error
	SelectGenres(ctx context.Context, userID uint, req *dto.SelectGenresRequest) error
	ListMyQuotes(ctx context.Context, userID uint, page, limit int) (*dto.QuoteListResponse, error)
	ListMyDiscussions(ctx context.Context, userID uint, page, limit int) (*dto.DiscussionListResponse, error)
}

// myPageServiceImpl is the implementation of MyPageService
type myPageServiceImpl struct {
	userRepo       repository.UserRepository
	bookRepo       repository.BookRepository
	quoteRepo      repository.QuoteRepository
	discussionRepo repository.DiscussionRepository
	expService     ExpService
}

// NewMyPageService creates a new instance of MyPageService
func NewMyPageService(
	userRepo repository.UserRepository,
	bookRepo repository.BookRepository,
	quoteRepo repository.QuoteRepository,
	discussionRepo repository.DiscussionRepository,
	expService ExpService,
) MyPageService {
	return &myPageServiceImpl{
		userRepo:       userRepo,
		bookRepo:       bookRepo,
		quoteRepo:      quoteRepo,
		discussionRepo: discussionRepo,
		expService:     expService,
	}
}

const bookmarkPreviewSize = 4

// GetMyPage aggregates the profile, bookmark preview and activity counts
func (s *myPageServiceImpl) GetMyPage(ctx context.Context, userID uint) (*dto.MyPageResponse, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	books, err := s.bookRepo.ListBookmarks(ctx, userID, bookmarkPreviewSize, 0)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "마이페이지 조회에 실패했습니다.", err.Error())
	}
	preview := make([]dto.BookmarkItem, 0, len(books))
	for _, b := range books {
		preview = append(preview, dto.BookmarkItem{
			BookID:       b.ID,
			Title:        b.Title,
			Author:       b.Author,
			ThumbnailURL: b.ThumbnailURL,
		})
	}

	quoteCount, err := s.quoteRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "마이페이지 조회에 실패했습니다.", err.Error())
	}
	discussionCount, err := s.discussionRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "마이페이지 조회에 실패했습니다.", err.Error())
	}

	return &dto.MyPageResponse{
		Profile:         *profile,
		BookmarkPreview: preview,
		QuoteCount:      quoteCount,
		DiscussionCount: discussionCount,
	}, nil
}

// GetProfile returns the caller's account overview with exp and genres
func (s *myPageServiceImpl) GetProfile(ctx context.Context, userID uint) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "사용자를 찾을 수 없습니다.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "프로필 조회에 실패했습니다.", err.Error())
	}

	exp, err := s.expService.GetExp(ctx, userID)
	if err != nil {
		return nil, err
	}
	expResp := dto.ExpResponse{Exp: exp.Exp, Level: exp.Level}
	if threshold, ok := domain.NextLevelThreshold(exp.Level); ok {
		next := exp.Level + 1
		expResp.NextLevel = &next
		expResp.NextExp = &threshold
	}

	genres, err := s.userRepo.ListGenres(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "프로필 조회에 실패했습니다.", err.Error())
	}
	genreResps := make([]dto.GenreResponse, 0, len(genres))
	for _, g := range genres {
		genreResps = append(genreResps, dto.GenreResponse{GenreID: g.ID, Name: g.Name})
	}

	return &dto.ProfileResponse{
		UserID:     user.ID,
		Email:      user.Email,
		Nickname:   user.Nickname,
		ProfileURL: user.ProfileURL,
		Exp:        expResp,
		Genres:     genreResps,
	}, nil
}

// UpdateProfile edits the caller's nickname or profile image
func (s *myPageServiceImpl) UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "사용자를 찾을 수 없습니다.", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "프로필 수정에 실패했습니다.", err.Error())
	}

	if req.Nickname != nil && *req.Nickname != user.Nickname {
		taken, err := s.userRepo.ExistsByNickname(ctx, *req.Nickname)
		if err != nil {
			return response.NewAppError(response.ErrCodeInternal, "프로필 수정에 실패했습니다.", err.Error())
		}
		if taken {
			return response.NewAppError(response.ErrCodeAlreadyExists, "이미 사용 중인 닉네임입니다.", "")
		}
		user.Nickname = *req.Nickname
	}
	if req.ProfileURL != nil {
		user.ProfileURL = req.ProfileURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "프로필 수정에 실패했습니다.", err.Error())
	}
	return nil
}

// SelectGenres replaces the caller's preferred genres
func (s *myPageServiceImpl) SelectGenres(ctx context.Context, userID uint, req *dto.SelectGenresRequest) error {
	if err := s.userRepo.ReplaceGenres(ctx, userID, req.GenreIDs); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "선호 장르 저장에 실패했습니다.", err.Error())
	}
	return nil
}

// ListMyQuotes returns one page of the caller's quotes
func (s *myPageServiceImpl) ListMyQuotes(ctx context.Context, userID uint, page, limit int) (*dto.QuoteListResponse, error) {
	total, err := s.quoteRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "내 글귀 조회에 실패했습니다.", err.Error())
	}

	pagination := util.Paginate(page, limit, total)
	rows, err := s.quoteRepo.ListByUser(ctx, userID, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "내 글귀 조회에 실패했습니다.", err.Error())
	}

	return &dto.QuoteListResponse{
		Quotes:     toQuoteResponses(rows),
		Pagination: pagination,
	}, nil
}

// ListMyDiscussions returns one page of the caller's discussions
func (s *myPageServiceImpl) ListMyDiscussions(ctx context.Context, userID uint, page, limit int) (*dto.DiscussionListResponse, error) {
	total, err := s.discussionRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "내 토론 조회에 실패했습니다.", err.Error())
	}

	pagination := util.Paginate(page, limit, total)
	rows, err := s.discussionRepo.ListByUser(ctx, userID, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "내 토론 조회에 실패했습니다.", err.Error())
	}

	discussions := make([]dto.DiscussionResponse, 0, len(rows))
	for i := range rows {
		discussions = append(discussions, toDiscussionResponse(&rows[i].Discussion, rows[i].Nickname, rows[i].CommentCount, time.Now()))
	}
	return &dto.DiscussionListResponse{
		Discussions: discussions,
		Pagination:  pagination,
	}, nil
}
