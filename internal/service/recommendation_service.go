package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"book-talk-api/internal/client"
	"book-talk-api/internal/domain"
	"book-talk-api/internal/dto"
	"book-talk-api/internal/repository"
	"book-talk-api/internal/response"
)

const (
	recommendationActivityLimit = 20
	recommendationRecentBooks   = 4
	recommendationCount         = 4
	recommendationDescRunes     = 150
)

// RecommendationService defines the interface for AI book recommendations
type RecommendationService interface {
	// GetRecommendations picks catalog books matching the user's preferred
	// genres and recent reading activity
	GetRecommendations(ctx context.Context, userID uint) (*dto.RecommendationResponse, error)
}

// recommendationServiceImpl is the implementation of RecommendationService
type recommendationServiceImpl struct {
	userRepo       repository.UserRepository
	bookRepo       repository.BookRepository
	quoteRepo      repository.QuoteRepository
	discussionRepo repository.DiscussionRepository
	aladinClient   client.AladinClient
	genaiClient    client.GenAIClient
	logger         *zap.Logger
}

// NewRecommendationService creates a new instance of RecommendationService
func NewRecommendationService(
	userRepo repository.UserRepository,
	bookRepo repository.BookRepository,
	quoteRepo repository.QuoteRepository,
	discussionRepo repository.DiscussionRepository,
	aladinClient client.AladinClient,
	genaiClient client.GenAIClient,
	logger *zap.Logger,
) RecommendationService {
	return &recommendationServiceImpl{
		userRepo:       userRepo,
		bookRepo:       bookRepo,
		quoteRepo:      quoteRepo,
		discussionRepo: discussionRepo,
		aladinClient:   aladinClient,
		genaiClient:    genaiClient,
		logger:         logger,
	}
}

// bookActivity is one book touched by the user, with when it was touched
type bookActivity struct {
	bookID uint
	at     time.Time
}

// GetRecommendations collects the user's preferred genres plus the books
// behind their recent bookmarks, quotes and discussions, asks the AI for
// titles outside that set, and resolves each title through the catalog.
func (s *recommendationServiceImpl) GetRecommendations(ctx context.Context, userID uint) (*dto.RecommendationResponse, error) {
	genres, err := s.userRepo.ListGenres(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "선호 장르 조회에 실패했습니다.", err.Error())
	}

	activities, err := s.collectActivities(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent := recentUniqueBooks(activities, recommendationRecentBooks)

	var recentBooks []*domain.Book
	for _, activity := range recent {
		book, err := s.bookRepo.FindByID(ctx, activity.bookID)
		if err != nil {
			continue
		}
		recentBooks = append(recentBooks, book)
	}

	prompt := buildRecommendationPrompt(genres, recentBooks)
	answer, err := s.genaiClient.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Error("AI recommendation failed",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, response.NewAppError(response.ErrCodeExternalAPI, "AI 추천 생성에 실패했습니다.", err.Error())
	}

	resp := &dto.RecommendationResponse{Recommendations: []dto.RecommendedBook{}}
	for _, title := range parseRecommendedTitles(answer) {
		result, err := s.aladinClient.SearchBooks(ctx, title, 1, 1)
		if err != nil || len(result.Item) == 0 {
			s.logger.Warn("recommended title not found in catalog",
				zap.String("title", title),
			)
			continue
		}
		item := result.Item[0]
		resp.Recommendations = append(resp.Recommendations, dto.RecommendedBook{
			AladinItemID: strconv.FormatInt(item.ItemID, 10),
			Title:        item.Title,
			Author:       item.Author,
			ThumbnailURL: item.Cover,
		})
	}
	return resp, nil
}

func (s *recommendationServiceImpl) collectActivities(ctx context.Context, userID uint) ([]bookActivity, error) {
	var activities []bookActivity

	bookmarks, err := s.bookRepo.ListBookmarks(ctx, userID, recommendationActivityLimit, 0)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "북마크 조회에 실패했습니다.", err.Error())
	}
	for _, b := range bookmarks {
		activities = append(activities, bookActivity{bookID: b.ID, at: b.CreatedAt})
	}

	quotes, err := s.quoteRepo.ListByUser(ctx, userID, recommendationActivityLimit, 0)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "인용구 조회에 실패했습니다.", err.Error())
	}
	for _, q := range quotes {
		activities = append(activities, bookActivity{bookID: q.BookID, at: q.CreatedAt})
	}

	discussions, err := s.discussionRepo.ListByUser(ctx, userID, recommendationActivityLimit, 0)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "토론 조회에 실패했습니다.", err.Error())
	}
	for _, d := range discussions {
		activities = append(activities, bookActivity{bookID: d.BookID, at: d.CreatedAt})
	}

	return activities, nil
}

// recentUniqueBooks keeps the newest activity per book and returns the
// most recent limit books
func recentUniqueBooks(activities []bookActivity, limit int) []bookActivity {
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].at.After(activities[j].at)
	})

	seen := make(map[uint]bool, limit)
	var recent []bookActivity
	for _, activity := range activities {
		if seen[activity.bookID] {
			continue
		}
		seen[activity.bookID] = true
		recent = append(recent, activity)
		if len(recent) >= limit {
			break
		}
	}
	return recent
}

func buildRecommendationPrompt(genres []*domain.Genre, recent []*domain.Book) string {
	var b strings.Builder
	b.WriteString("당신은 독서 큐레이터입니다. 아래 독자의 취향에 맞는 책을 추천해주세요.\n\n")

	b.WriteString("## 선호 장르\n")
	if len(genres) == 0 {
		b.WriteString("등록된 선호 장르가 없습니다.\n\n")
	} else {
		names := make([]string, 0, len(genres))
		for _, g := range genres {
			names = append(names, g.Name)
		}
		b.WriteString(strings.Join(names, ", ") + "\n\n")
	}

	b.WriteString("## 최근 활동한 책\n")
	if len(recent) == 0 {
		b.WriteString("최근 활동이 없습니다.\n\n")
	} else {
		for _, book := range recent {
			line := fmt.Sprintf("- %s", book.Title)
			if book.Author != nil && *book.Author != "" {
				line += fmt.Sprintf(" (%s)", *book.Author)
			}
			if book.Description != nil && *book.Description != "" {
				line += ": " + truncateRunes(*book.Description, recommendationDescRunes)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## 추천 지침\n")
	b.WriteString(fmt.Sprintf("- 위에 나온 책을 제외하고, 한국에서 구할 수 있는 실제 책 %d권을 추천해주세요.\n", recommendationCount))
	b.WriteString("- 책 제목만 한 줄에 하나씩 출력해주세요. 다른 설명은 쓰지 마세요.")
	return b.String()
}

// parseRecommendedTitles pulls one title per line out of the AI answer,
// stripping list markers and quoting
func parseRecommendedTitles(answer string) []string {
	var titles []string
	for _, line := range strings.Split(answer, "\n") {
		title := strings.TrimSpace(line)
		title = strings.TrimLeft(title, "-*0123456789.) ")
		title = strings.Trim(title, "\"『』「」")
		if title == "" {
			continue
		}
		titles = append(titles, title)
		if len(titles) >= recommendationCount {
			break
		}
	}
	return titles
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
