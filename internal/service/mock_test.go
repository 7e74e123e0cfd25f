package service

import (
	"context"
	"time"

	"book-talk-api/internal/client"
	"book-talk-api/internal/domain"
	"book-talk-api/internal/repository"
)

// MockDiscussionRepository is a mock implementation of DiscussionRepository
type MockDiscussionRepository struct {
	CreateFunc                 func(ctx context.Context, discussion *domain.Discussion) error
	FindByIDFunc               func(ctx context.Context, id uint) (*domain.Discussion, error)
	ListByBookFunc             func(ctx context.Context, bookID uint) ([]repository.DiscussionListRow, error)
	ListByUserFunc             func(ctx context.Context, userID uint, limit, offset int) ([]repository.DiscussionListRow, error)
	CountByUserFunc            func(ctx context.Context, userID uint) (int64, error)
	IncrementViewCountFunc     func(ctx context.Context, id uint) error
	CreateCommentFunc          func(ctx context.Context, comment *domain.DiscussionComment) error
	HasUserCommentedFunc       func(ctx context.Context, discussionID, userID uint) (bool, error)
	ListCommentsFunc           func(ctx context.Context, discussionID uint) ([]*domain.DiscussionComment, error)
	ListCommentsForSummaryFunc func(ctx context.Context, discussionID uint) ([]*domain.DiscussionComment, error)
	CountCommentsFunc          func(ctx context.Context, discussionID uint) (int64, error)
	CreateVoteFunc             func(ctx context.Context, vote *domain.DiscussionVote) error
	FindVoteFunc               func(ctx context.Context, discussionID, userID uint) (*domain.DiscussionVote, error)
	CountVotesFunc             func(ctx context.Context, discussionID uint) (repository.VoteCounts, error)
	AddLikeFunc                func(ctx context.Context, discussionID, userID uint) (bool, error)
	RemoveLikeFunc             func(ctx context.Context, discussionID, userID uint) (bool, error)
	ExistsLikeFunc             func(ctx context.Context, discussionID, userID uint) (bool, error)
}

func (m *MockDiscussionRepository) Create(ctx context.Context, discussion *domain.Discussion) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, discussion)
	}
	return nil
}

func (m *MockDiscussionRepository) FindByID(ctx context.Context, id uint) (*domain.Discussion, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockDiscussionRepository) ListByBook(ctx context.Context, bookID uint) ([]repository.DiscussionListRow, error) {
	if m.ListByBookFunc != nil {
		return m.ListByBookFunc(ctx, bookID)
	}
	return nil, nil
}

func (m *MockDiscussionRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]repository.DiscussionListRow, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *MockDiscussionRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	if m.CountByUserFunc != nil {
		return m.CountByUserFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockDiscussionRepository) IncrementViewCount(ctx context.Context, id uint) error {
	if m.IncrementViewCountFunc != nil {
		return m.IncrementViewCountFunc(ctx, id)
	}
	return nil
}

func (m *MockDiscussionRepository) CreateComment(ctx context.Context, comment *domain.DiscussionComment) error {
	if m.CreateCommentFunc != nil {
		return m.CreateCommentFunc(ctx, comment)
	}
	return nil
}

func (m *MockDiscussionRepository) HasUserCommented(ctx context.Context, discussionID, userID uint) (bool, error) {
	if m.HasUserCommentedFunc != nil {
		return m.HasUserCommentedFunc(ctx, discussionID, userID)
	}
	return false, nil
}

func (m *MockDiscussionRepository) ListComments(ctx context.Context, discussionID uint) ([]*domain.DiscussionComment, error) {
	if m.ListCommentsFunc != nil {
		return m.ListCommentsFunc(ctx, discussionID)
	}
	return nil, nil
}

func (m *MockDiscussionRepository) ListCommentsForSummary(ctx context.Context, discussionID uint) ([]*domain.DiscussionComment, error) {
	if m.ListCommentsForSummaryFunc != nil {
		return m.ListCommentsForSummaryFunc(ctx, discussionID)
	}
	return nil, nil
}

func (m *MockDiscussionRepository) CountComments(ctx context.Context, discussionID uint) (int64, error) {
	if m.CountCommentsFunc != nil {
		return m.CountCommentsFunc(ctx, discussionID)
	}
	return 0, nil
}

func (m *MockDiscussionRepository) CreateVote(ctx context.Context, vote *domain.DiscussionVote) error {
	if m.CreateVoteFunc != nil {
		return m.CreateVoteFunc(ctx, vote)
	}
	return nil
}

func (m *MockDiscussionRepository) FindVote(ctx context.Context, discussionID, userID uint) (*domain.DiscussionVote, error) {
	if m.FindVoteFunc != nil {
		return m.FindVoteFunc(ctx, discussionID, userID)
	}
	return nil, nil
}

func (m *MockDiscussionRepository) CountVotes(ctx context.Context, discussionID uint) (repository.VoteCounts, error) {
	if m.CountVotesFunc != nil {
		return m.CountVotesFunc(ctx, discussionID)
	}
	return repository.VoteCounts{}, nil
}

func (m *MockDiscussionRepository) AddLike(ctx context.Context, discussionID, userID uint) (bool, error) {
	if m.AddLikeFunc != nil {
		return m.AddLikeFunc(ctx, discussionID, userID)
	}
	return false, nil
}

func (m *MockDiscussionRepository) RemoveLike(ctx context.Context, discussionID, userID uint) (bool, error) {
	if m.RemoveLikeFunc != nil {
		return m.RemoveLikeFunc(ctx, discussionID, userID)
	}
	return false, nil
}

func (m *MockDiscussionRepository) ExistsLike(ctx context.Context, discussionID, userID uint) (bool, error) {
	if m.ExistsLikeFunc != nil {
		return m.ExistsLikeFunc(ctx, discussionID, userID)
	}
	return false, nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc                     func(ctx context.Context, user *domain.User) error
	FindByIDFunc                   func(ctx context.Context, id uint) (*domain.User, error)
	FindByEmailFunc                func(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailFunc              func(ctx context.Context, email string) (bool, error)
	ExistsByNicknameFunc           func(ctx context.Context, nickname string) (bool, error)
	UpdateFunc                     func(ctx context.Context, user *domain.User) error
	SaveRefreshTokenFunc           func(ctx context.Context, token *domain.RefreshToken) error
	FindRefreshTokenFunc           func(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteRefreshTokenFunc         func(ctx context.Context, token string) error
	DeleteRefreshTokensByUserFunc  func(ctx context.Context, userID uint) error
	DeleteExpiredRefreshTokensFunc func(ctx context.Context, now time.Time) (int64, error)
	FindExpFunc                    func(ctx context.Context, userID uint) (*domain.UserExp, error)
	SaveExpFunc                    func(ctx context.Context, exp *domain.UserExp) error
	ReplaceGenresFunc              func(ctx context.Context, userID uint, genreIDs []uint) error
	ListGenresFunc                 func(ctx context.Context, userID uint) ([]*domain.Genre, error)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepository) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	if m.ExistsByNicknameFunc != nil {
		return m.ExistsByNicknameFunc(ctx, nickname)
	}
	return false, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) SaveRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	if m.SaveRefreshTokenFunc != nil {
		return m.SaveRefreshTokenFunc(ctx, token)
	}
	return nil
}

func (m *MockUserRepository) FindRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	if m.FindRefreshTokenFunc != nil {
		return m.FindRefreshTokenFunc(ctx, token)
	}
	return nil, nil
}

func (m *MockUserRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	if m.DeleteRefreshTokenFunc != nil {
		return m.DeleteRefreshTokenFunc(ctx, token)
	}
	return nil
}

func (m *MockUserRepository) DeleteRefreshTokensByUser(ctx context.Context, userID uint) error {
	if m.DeleteRefreshTokensByUserFunc != nil {
		return m.DeleteRefreshTokensByUserFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserRepository) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	if m.DeleteExpiredRefreshTokensFunc != nil {
		return m.DeleteExpiredRefreshTokensFunc(ctx, now)
	}
	return 0, nil
}

func (m *MockUserRepository) FindExp(ctx context.Context, userID uint) (*domain.UserExp, error) {
	if m.FindExpFunc != nil {
		return m.FindExpFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockUserRepository) SaveExp(ctx context.Context, exp *domain.UserExp) error {
	if m.SaveExpFunc != nil {
		return m.SaveExpFunc(ctx, exp)
	}
	return nil
}

func (m *MockUserRepository) ReplaceGenres(ctx context.Context, userID uint, genreIDs []uint) error {
	if m.ReplaceGenresFunc != nil {
		return m.ReplaceGenresFunc(ctx, userID, genreIDs)
	}
	return nil
}

func (m *MockUserRepository) ListGenres(ctx context.Context, userID uint) ([]*domain.Genre, error) {
	if m.ListGenresFunc != nil {
		return m.ListGenresFunc(ctx, userID)
	}
	return nil, nil
}

// MockBookRepository is a mock implementation of BookRepository
type MockBookRepository struct {
	FindByIDFunc           func(ctx context.Context, id uint) (*domain.Book, error)
	FindByAladinItemIDFunc func(ctx context.Context, itemID string) (*domain.Book, error)
	UpsertFunc             func(ctx context.Context, book *domain.Book) error
	FindOrCreateGenreFunc  func(ctx context.Context, name string, parentID *uint) (*domain.Genre, error)
	ListGenresFunc         func(ctx context.Context) ([]*domain.Genre, error)
	LinkGenreFunc          func(ctx context.Context, bookID, genreID uint) error
	ListBookGenresFunc     func(ctx context.Context, bookID uint) ([]*domain.Genre, error)
	AddBookmarkFunc        func(ctx context.Context, userID, bookID uint) (bool, error)
	RemoveBookmarkFunc     func(ctx context.Context, userID, bookID uint) (bool, error)
	ExistsBookmarkFunc     func(ctx context.Context, userID, bookID uint) (bool, error)
	ListBookmarksFunc      func(ctx context.Context, userID uint, limit, offset int) ([]*domain.Book, error)
	CountBookmarksFunc     func(ctx context.Context, userID uint) (int64, error)
}

func (m *MockBookRepository) FindByID(ctx context.Context, id uint) (*domain.Book, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBookRepository) FindByAladinItemID(ctx context.Context, itemID string) (*domain.Book, error) {
	if m.FindByAladinItemIDFunc != nil {
		return m.FindByAladinItemIDFunc(ctx, itemID)
	}
	return nil, nil
}

func (m *MockBookRepository) Upsert(ctx context.Context, book *domain.Book) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, book)
	}
	return nil
}

func (m *MockBookRepository) FindOrCreateGenre(ctx context.Context, name string, parentID *uint) (*domain.Genre, error) {
	if m.FindOrCreateGenreFunc != nil {
		return m.FindOrCreateGenreFunc(ctx, name, parentID)
	}
	return nil, nil
}

func (m *MockBookRepository) ListGenres(ctx context.Context) ([]*domain.Genre, error) {
	if m.ListGenresFunc != nil {
		return m.ListGenresFunc(ctx)
	}
	return nil, nil
}

func (m *MockBookRepository) LinkGenre(ctx context.Context, bookID, genreID uint) error {
	if m.LinkGenreFunc != nil {
		return m.LinkGenreFunc(ctx, bookID, genreID)
	}
	return nil
}

func (m *MockBookRepository) ListBookGenres(ctx context.Context, bookID uint) ([]*domain.Genre, error) {
	if m.ListBookGenresFunc != nil {
		return m.ListBookGenresFunc(ctx, bookID)
	}
	return nil, nil
}

func (m *MockBookRepository) AddBookmark(ctx context.Context, userID, bookID uint) (bool, error) {
	if m.AddBookmarkFunc != nil {
		return m.AddBookmarkFunc(ctx, userID, bookID)
	}
	return false, nil
}

func (m *MockBookRepository) RemoveBookmark(ctx context.Context, userID, bookID uint) (bool, error) {
	if m.RemoveBookmarkFunc != nil {
		return m.RemoveBookmarkFunc(ctx, userID, bookID)
	}
	return false, nil
}

func (m *MockBookRepository) ExistsBookmark(ctx context.Context, userID, bookID uint) (bool, error) {
	if m.ExistsBookmarkFunc != nil {
		return m.ExistsBookmarkFunc(ctx, userID, bookID)
	}
	return false, nil
}

func (m *MockBookRepository) ListBookmarks(ctx context.Context, userID uint, limit, offset int) ([]*domain.Book, error) {
	if m.ListBookmarksFunc != nil {
		return m.ListBookmarksFunc(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *MockBookRepository) CountBookmarks(ctx context.Context, userID uint) (int64, error) {
	if m.CountBookmarksFunc != nil {
		return m.CountBookmarksFunc(ctx, userID)
	}
	return 0, nil
}

// MockQuoteRepository is a mock implementation of QuoteRepository
type MockQuoteRepository struct {
	CreateFunc            func(ctx context.Context, quote *domain.Quote) error
	FindByIDFunc          func(ctx context.Context, id uint) (*domain.Quote, error)
	UpdateFunc            func(ctx context.Context, quote *domain.Quote) error
	DeleteFunc            func(ctx context.Context, id uint) error
	ListByBookFunc        func(ctx context.Context, bookID uint, limit, offset int) ([]repository.QuoteListRow, error)
	CountByBookFunc       func(ctx context.Context, bookID uint) (int64, error)
	ListByUserFunc        func(ctx context.Context, userID uint, limit, offset int) ([]repository.QuoteListRow, error)
	CountByUserFunc       func(ctx context.Context, userID uint) (int64, error)
	ListPopularFunc       func(ctx context.Context, limit int) ([]repository.QuoteListRow, error)
	HasUserQuotedBookFunc func(ctx context.Context, userID, bookID uint) (bool, error)
	AddLikeFunc           func(ctx context.Context, quoteID, userID uint) (bool, error)
	RemoveLikeFunc        func(ctx context.Context, quoteID, userID uint) (bool, error)
	ExistsLikeFunc        func(ctx context.Context, quoteID, userID uint) (bool, error)
}

func (m *MockQuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, quote)
	}
	return nil
}

func (m *MockQuoteRepository) FindByID(ctx context.Context, id uint) (*domain.Quote, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockQuoteRepository) Update(ctx context.Context, quote *domain.Quote) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, quote)
	}
	return nil
}

func (m *MockQuoteRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockQuoteRepository) ListByBook(ctx context.Context, bookID uint, limit, offset int) ([]repository.QuoteListRow, error) {
	if m.ListByBookFunc != nil {
		return m.ListByBookFunc(ctx, bookID, limit, offset)
	}
	return nil, nil
}

func (m *MockQuoteRepository) CountByBook(ctx context.Context, bookID uint) (int64, error) {
	if m.CountByBookFunc != nil {
		return m.CountByBookFunc(ctx, bookID)
	}
	return 0, nil
}

func (m *MockQuoteRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]repository.QuoteListRow, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *MockQuoteRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	if m.CountByUserFunc != nil {
		return m.CountByUserFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockQuoteRepository) ListPopular(ctx context.Context, limit int) ([]repository.QuoteListRow, error) {
	if m.ListPopularFunc != nil {
		return m.ListPopularFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockQuoteRepository) HasUserQuotedBook(ctx context.Context, userID, bookID uint) (bool, error) {
	if m.HasUserQuotedBookFunc != nil {
		return m.HasUserQuotedBookFunc(ctx, userID, bookID)
	}
	return false, nil
}

func (m *MockQuoteRepository) AddLike(ctx context.Context, quoteID, userID uint) (bool, error) {
	if m.AddLikeFunc != nil {
		return m.AddLikeFunc(ctx, quoteID, userID)
	}
	return false, nil
}

func (m *MockQuoteRepository) RemoveLike(ctx context.Context, quoteID, userID uint) (bool, error) {
	if m.RemoveLikeFunc != nil {
		return m.RemoveLikeFunc(ctx, quoteID, userID)
	}
	return false, nil
}

func (m *MockQuoteRepository) ExistsLike(ctx context.Context, quoteID, userID uint) (bool, error) {
	if m.ExistsLikeFunc != nil {
		return m.ExistsLikeFunc(ctx, quoteID, userID)
	}
	return false, nil
}

// MockAladinClient is a mock implementation of client.AladinClient
type MockAladinClient struct {
	SearchBooksFunc     func(ctx context.Context, query string, page, limit int) (*client.AladinSearchResult, error)
	ListBestsellersFunc func(ctx context.Context, page, limit int) (*client.AladinSearchResult, error)
	LookupBookFunc      func(ctx context.Context, itemID string) (*client.AladinBook, error)
}

func (m *MockAladinClient) SearchBooks(ctx context.Context, query string, page, limit int) (*client.AladinSearchResult, error) {
	if m.SearchBooksFunc != nil {
		return m.SearchBooksFunc(ctx, query, page, limit)
	}
	return &client.AladinSearchResult{}, nil
}

func (m *MockAladinClient) ListBestsellers(ctx context.Context, page, limit int) (*client.AladinSearchResult, error) {
	if m.ListBestsellersFunc != nil {
		return m.ListBestsellersFunc(ctx, page, limit)
	}
	return &client.AladinSearchResult{}, nil
}

func (m *MockAladinClient) LookupBook(ctx context.Context, itemID string) (*client.AladinBook, error) {
	if m.LookupBookFunc != nil {
		return m.LookupBookFunc(ctx, itemID)
	}
	return nil, nil
}

// MockGenAIClient is a mock implementation of client.GenAIClient
type MockGenAIClient struct {
	GenerateTextFunc func(ctx context.Context, prompt string) (string, error)
	GenerateChatFunc func(ctx context.Context, history []client.ChatTurn, message string) (string, error)
}

func (m *MockGenAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt)
	}
	return "", nil
}

func (m *MockGenAIClient) GenerateChat(ctx context.Context, history []client.ChatTurn, message string) (string, error) {
	if m.GenerateChatFunc != nil {
		return m.GenerateChatFunc(ctx, history, message)
	}
	return "", nil
}

// MockExpService is a mock implementation of ExpService
type MockExpService struct {
	AddExpFunc func(ctx context.Context, userID uint, amount int) (*ExpResult, error)
	GetExpFunc func(ctx context.Context, userID uint) (*domain.UserExp, error)
}

func (m *MockExpService) AddExp(ctx context.Context, userID uint, amount int) (*ExpResult, error) {
	if m.AddExpFunc != nil {
		return m.AddExpFunc(ctx, userID, amount)
	}
	return &ExpResult{}, nil
}

func (m *MockExpService) GetExp(ctx context.Context, userID uint) (*domain.UserExp, error) {
	if m.GetExpFunc != nil {
		return m.GetExpFunc(ctx, userID)
	}
	return &domain.UserExp{UserID: userID, Exp: 0, Level: 1}, nil
}
