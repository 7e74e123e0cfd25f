package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"book-talk-api/internal/domain"
	"book-talk-api/internal/dto"
	"book-talk-api/internal/metrics"
	"book-talk-api/internal/repository"
	"book-talk-api/internal/response"
)

// DiscussionVoteService defines the interface for opinion and vote logic
type DiscussionVoteService interface {
	// PostMessage adds an opinion to a discussion, granting exp on the
	// poster's first comment in that discussion
	PostMessage(ctx context.Context, discussionID, userID uint, req *dto.PostMessageRequest) (*dto.PostMessageResponse, error)
	// Vote casts the caller's one-time choice in a VS discussion
	Vote(ctx context.Context, discussionID, userID uint, req *dto.VoteRequest) error
	// GetVoteStatus reports whether the caller voted and which side
	GetVoteStatus(ctx context.Context, discussionID, userID uint) (*dto.VoteStatusResponse, error)
	// GetOpinionRatio returns the percentage split between the two options
	GetOpinionRatio(ctx context.Context, discussionID uint) (*dto.OpinionRatioResponse, error)
}

// discussionVoteServiceImpl is the implementation of DiscussionVoteService
type discussionVoteServiceImpl struct {
	discussionRepo repository.DiscussionRepository
	expService     ExpService
	logger         *zap.Logger
	metrics        *metrics.Metrics
	now            func() time.Time
}

// NewDiscussionVoteService creates a new instance of DiscussionVoteService
func NewDiscussionVoteService(
	discussionRepo repository.DiscussionRepository,
	expService ExpService,
	logger *zap.Logger,
	m *metrics.Metrics,
) DiscussionVoteService {
	return &discussionVoteServiceImpl{
		discussionRepo: discussionRepo,
		expService:     expService,
		logger:         logger,
		metrics:        m,
		now:            time.Now,
	}
}

// PostMessage adds an opinion to a discussion. VS discussions require a
// choice of 1 or 2; FREE discussions forbid one. The poster's first
// comment in a discussion earns an experience reward.
func (s *discussionVoteServiceImpl) PostMessage(ctx context.Context, discussionID, userID uint, req *dto.PostMessageRequest) (*dto.PostMessageResponse, error) {
	discussion, err := s.findDiscussion(ctx, discussionID)
	if err != nil {
		return nil, err
	}

	if discussion.IsVS() {
		if req.Choice == nil || (*req.Choice != 1 && *req.Choice != 2) {
			return nil, response.NewAppError(response.ErrCodeValidation, "VS 토론에서는 선택지(1 또는 2)를 선택해야 합니다.", "")
		}
	} else if req.Choice != nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "자유 토론에서는 선택지를 지정할 수 없습니다.", "")
	}

	firstComment, err := s.discussionRepo.HasUserCommented(ctx, discussionID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "의견 등록에 실패했습니다.", err.Error())
	}
	firstComment = !firstComment

	comment := &domain.DiscussionComment{
		DiscussionID: discussionID,
		UserID:       userID,
		Content:      req.Content,
		Choice:       req.Choice,
	}
	if err := s.discussionRepo.CreateComment(ctx, comment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "의견 등록에 실패했습니다.", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementCommentCreated()
	}

	resp := &dto.PostMessageResponse{CommentID: comment.ID}

	if firstComment {
		result, err := s.expService.AddExp(ctx, userID, domain.ExpReward)
		if err != nil {
			// The comment is already stored; a failed reward only loses exp
			s.logger.Error("failed to grant comment exp reward",
				zap.Uint("user_id", userID),
				zap.Uint("discussion_id", discussionID),
				zap.Error(err),
			)
		} else {
			resp.ExpEarned = domain.ExpReward
			resp.LeveledUp = result.LeveledUp
			resp.Level = result.Level
		}
	}

	if resp.Level == 0 {
		exp, err := s.expService.GetExp(ctx, userID)
		if err == nil {
			resp.Level = exp.Level
		}
	}

	return resp, nil
}

// Vote casts the caller's one-time choice in a VS discussion. Voting is
// closed once the discussion has ended.
func (s *discussionVoteServiceImpl) Vote(ctx context.Context, discussionID, userID uint, req *dto.VoteRequest) error {
	discussion, err := s.findDiscussion(ctx, discussionID)
	if err != nil {
		return err
	}

	if !discussion.IsVS() {
		return response.NewAppError(response.ErrCodeValidation, "자유 토론에서는 투표할 수 없습니다.", "")
	}
	if discussion.StatusAt(s.now()) == domain.DiscussionStatusEnded {
		return response.NewAppError(response.ErrCodeValidation, "종료된 토론에는 투표할 수 없습니다.", "")
	}

	if _, err := s.discussionRepo.FindVote(ctx, discussionID, userID); err == nil {
		return response.NewAppError(response.ErrCodeValidation, "이미 투표한 토론입니다", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewAppError(response.ErrCodeInternal, "투표 처리에 실패했습니다.", err.Error())
	}

	vote := &domain.DiscussionVote{
		DiscussionID: discussionID,
		UserID:       userID,
		Choice:       req.Choice,
	}
	if err := s.discussionRepo.CreateVote(ctx, vote); err != nil {
		// A racing duplicate lands on the unique index
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return response.NewAppError(response.ErrCodeValidation, "이미 투표한 토론입니다", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "투표 처리에 실패했습니다.", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementVoteCast()
	}
	s.logger.Info("vote cast",
		zap.Uint("discussion_id", discussionID),
		zap.Uint("user_id", userID),
		zap.Int("choice", req.Choice),
	)
	return nil
}

// GetVoteStatus reports whether the caller voted and which side
func (s *discussionVoteServiceImpl) GetVoteStatus(ctx context.Context, discussionID, userID uint) (*dto.VoteStatusResponse, error) {
	discussion, err := s.findDiscussion(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	if !discussion.IsVS() {
		return nil, response.NewAppError(response.ErrCodeValidation, "자유 토론에는 투표 상태가 없습니다.", "")
	}

	vote, err := s.discussionRepo.FindVote(ctx, discussionID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &dto.VoteStatusResponse{IsVoted: false, Choice: nil}, nil
	}
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "투표 조회에 실패했습니다.", err.Error())
	}

	choice := vote.Choice
	return &dto.VoteStatusResponse{IsVoted: true, Choice: &choice}, nil
}

// GetOpinionRatio returns the percentage split between the two options,
// counted from votes, one per user
func (s *discussionVoteServiceImpl) GetOpinionRatio(ctx context.Context, discussionID uint) (*dto.OpinionRatioResponse, error) {
	discussion, err := s.findDiscussion(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	if !discussion.IsVS() {
		return nil, response.NewAppError(response.ErrCodeValidation, "자유 토론에는 의견 비율이 없습니다.", "")
	}

	counts, err := s.discussionRepo.CountVotes(ctx, discussionID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "투표 집계에 실패했습니다.", err.Error())
	}

	ratio1, ratio2 := SplitRatio(counts.Option1, counts.Option2)
	return &dto.OpinionRatioResponse{
		Option1:      discussion.Option1,
		Option2:      discussion.Option2,
		Option1Count: counts.Option1,
		Option2Count: counts.Option2,
		Option1Ratio: ratio1,
		Option2Ratio: ratio2,
		TotalCount:   counts.Total(),
	}, nil
}

func (s *discussionVoteServiceImpl) findDiscussion(ctx context.Context, discussionID uint) (*domain.Discussion, error) {
	discussion, err := s.discussionRepo.FindByID(ctx, discussionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "해당 토론을 찾을 수 없습니다.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "토론 조회에 실패했습니다.", err.Error())
	}
	return discussion, nil
}

// SplitRatio converts two counts into rounded percentages. Zero total
// yields zero for both sides.
func SplitRatio(count1, count2 int64) (int, int) {
	total := count1 + count2
	if total == 0 {
		return 0, 0
	}
	ratio1 := int(math.Round(float64(count1) / float64(total) * 100))
	ratio2 := int(math.Round(float64(count2) / float64(total) * 100))
	return ratio1, ratio2
}
