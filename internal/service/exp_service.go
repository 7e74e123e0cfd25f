package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"book-talk-api/internal/domain"
	"book-talk-api/internal/metrics"
	"book-talk-api/internal/repository"
	"book-talk-api/internal/response"
)

// ExpResult reports the exp and level before and after a grant
type ExpResult struct {
	PrevExp   int
	Exp       int
	PrevLevel int
	Level     int
	LeveledUp bool
}

// ExpService defines the interface for experience and leveling logic
type ExpService interface {
	// AddExp grants exp to a user and recomputes the level
	AddExp(ctx context.Context, userID uint, amount int) (*ExpResult, error)
	// GetExp returns the user's current exp record, zeroed when absent
	GetExp(ctx context.Context, userID uint) (*domain.UserExp, error)
}

// expServiceImpl is the implementation of ExpService
type expServiceImpl struct {
	userRepo repository.UserRepository
	metrics  *metrics.Metrics
}

// NewExpService creates a new instance of ExpService
func NewExpService(userRepo repository.UserRepository, m *metrics.Metrics) ExpService {
	return &expServiceImpl{
		userRepo: userRepo,
		metrics:  m,
	}
}

// AddExp grants exp to a user and recomputes the level. An absent record
// counts as zero exp at level one.
func (s *expServiceImpl) AddExp(ctx context.Context, userID uint, amount int) (*ExpResult, error) {
	current, err := s.userRepo.FindExp(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "경험치 조회에 실패했습니다.", err.Error())
	}

	prevExp, prevLevel := 0, 1
	if current != nil {
		prevExp = current.Exp
		prevLevel = current.Level
	}

	newExp := prevExp + amount
	newLevel := domain.LevelForExp(newExp)

	record := &domain.UserExp{
		UserID: userID,
		Exp:    newExp,
		Level:  newLevel,
	}
	if err := s.userRepo.SaveExp(ctx, record); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "경험치 저장에 실패했습니다.", err.Error())
	}

	if s.metrics != nil {
		s.metrics.AddExpAwarded(amount)
	}

	return &ExpResult{
		PrevExp:   prevExp,
		Exp:       newExp,
		PrevLevel: prevLevel,
		Level:     newLevel,
		LeveledUp: newLevel > prevLevel,
	}, nil
}

// GetExp returns the user's current exp record, zeroed when absent. A
// stored level that drifted from the exp value is corrected on read.
func (s *expServiceImpl) GetExp(ctx context.Context, userID uint) (*domain.UserExp, error) {
	current, err := s.userRepo.FindExp(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.UserExp{UserID: userID, Exp: 0, Level: 1}, nil
	}
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "경험치 조회에 실패했습니다.", err.Error())
	}

	if level := domain.LevelForExp(current.Exp); level != current.Level {
		current.Level = level
		if err := s.userRepo.SaveExp(ctx, current); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "경험치 저장에 실패했습니다.", err.Error())
		}
	}
	return current, nil
}
