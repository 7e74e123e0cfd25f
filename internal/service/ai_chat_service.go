package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"book-talk-api/internal/client"
	"book-talk-api/internal/dto"
	"book-talk-api/internal/repository"
	"book-talk-api/internal/response"
)

// AIChatService defines the interface for AI book talk conversations.
// Conversation state lives in redis with a sliding TTL.
type AIChatService interface {
	StartChat(ctx context.Context, userID uint, req *dto.StartChatRequest) (*dto.ChatResponse, error)
	ContinueChat(ctx context.Context, userID uint, req *dto.ContinueChatRequest) (*dto.ChatResponse, error)
}

// aiChatServiceImpl is the implementation of AIChatService
type aiChatServiceImpl struct {
	sessionRepo repository.ChatSessionRepository
	bookRepo    repository.BookRepository
	genaiClient client.GenAIClient
	logger      *zap.Logger
}

// NewAIChatService creates a new instance of AIChatService
func NewAIChatService(
	sessionRepo repository.ChatSessionRepository,
	bookRepo repository.BookRepository,
	genaiClient client.GenAIClient,
	logger *zap.Logger,
) AIChatService {
	return &aiChatServiceImpl{
		sessionRepo: sessionRepo,
		bookRepo:    bookRepo,
		genaiClient: genaiClient,
		logger:      logger,
	}
}

// StartChat opens a conversation about a book and returns the first reply
func (s *aiChatServiceImpl) StartChat(ctx context.Context, userID uint, req *dto.StartChatRequest) (*dto.ChatResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "해당 도서를 찾을 수 없습니다.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "대화 시작에 실패했습니다.", err.Error())
	}

	author := ""
	if book.Author != nil {
		author = *book.Author
	}
	systemPrompt := fmt.Sprintf(
		"당신은 \"%s\"(저자: %s)에 대해 대화하는 독서 친구입니다. "+
			"책의 내용을 바탕으로 친근하게 한국어로 답변해주세요.",
		book.Title, author,
	)

	history := []client.ChatTurn{
		{Role: "user", Text: systemPrompt},
		{Role: "model", Text: "네, 좋아요! 이 책에 대해 이야기해봐요."},
	}

	reply, err := s.genaiClient.GenerateChat(ctx, history, req.Message)
	if err != nil {
		s.logger.Error("AI chat generation failed",
			zap.Uint("book_id", req.BookID),
			zap.Error(err),
		)
		return nil, response.NewAppError(response.ErrCodeExternalAPI, "AI 응답 생성에 실패했습니다. 잠시 후 다시 시도해주세요.", "")
	}

	session := &repository.ChatSession{
		SessionID: uuid.NewString(),
		UserID:    userID,
		BookID:    req.BookID,
		History: append(history,
			client.ChatTurn{Role: "user", Text: req.Message},
			client.ChatTurn{Role: "model", Text: reply},
		),
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "대화 저장에 실패했습니다.", err.Error())
	}

	return &dto.ChatResponse{SessionID: session.SessionID, Reply: reply}, nil
}

// ContinueChat sends a follow-up message in an existing session
func (s *aiChatServiceImpl) ContinueChat(ctx context.Context, userID uint, req *dto.ContinueChatRequest) (*dto.ChatResponse, error) {
	session, err := s.sessionRepo.Find(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "대화 세션을 찾을 수 없습니다. 새 대화를 시작해주세요.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "대화 조회에 실패했습니다.", err.Error())
	}
	if session.UserID != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "본인의 대화에만 이어서 답할 수 있습니다.", "")
	}

	reply, err := s.genaiClient.GenerateChat(ctx, session.History, req.Message)
	if err != nil {
		s.logger.Error("AI chat generation failed",
			zap.String("session_id", req.SessionID),
			zap.Error(err),
		)
		return nil, response.NewAppError(response.ErrCodeExternalAPI, "AI 응답 생성에 실패했습니다. 잠시 후 다시 시도해주세요.", "")
	}

	session.History = append(session.History,
		client.ChatTurn{Role: "user", Text: req.Message},
		client.ChatTurn{Role: "model", Text: reply},
	)
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "대화 저장에 실패했습니다.", err.Error())
	}

	return &dto.ChatResponse{SessionID: session.SessionID, Reply: reply}, nil
}
