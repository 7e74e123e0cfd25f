package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"book-talk-api/internal/client"
	"book-talk-api/internal/domain"
	"book-talk-api/internal/dto"
	"book-talk-api/internal/metrics"
	"book-talk-api/internal/repository"
	"book-talk-api/internal/response"
	"book-talk-api/internal/util"
)

const (
	summaryNoOpinions = "작성된 의견이 없어 요약을 생성할 수 없습니다."
	summaryFallback   = "AI 요약 생성에 실패했습니다. 잠시 후 다시 시도해주세요."
)

// DiscussionSummaryService defines the interface for the AI summary of an
// ended VS discussion
type DiscussionSummaryService interface {
	GetSummary(ctx context.Context, discussionID uint) (*dto.DiscussionSummaryResponse, error)
}

// discussionSummaryServiceImpl is the implementation of DiscussionSummaryService
type discussionSummaryServiceImpl struct {
	discussionRepo repository.DiscussionRepository
	genaiClient    client.GenAIClient
	logger         *zap.Logger
	metrics        *metrics.Metrics
	now            func() time.Time
}

// NewDiscussionSummaryService creates a new instance of DiscussionSummaryService
func NewDiscussionSummaryService(
	discussionRepo repository.DiscussionRepository,
	genaiClient client.GenAIClient,
	logger *zap.Logger,
	m *metrics.Metrics,
) DiscussionSummaryService {
	return &discussionSummaryServiceImpl{
		discussionRepo: discussionRepo,
		genaiClient:    genaiClient,
		logger:         logger,
		metrics:        m,
		now:            time.Now,
	}
}

// GetSummary returns the vote split plus an AI summary of the opinions on
// an ended VS discussion. An AI failure degrades to a canned message and
// never fails the request.
func (s *discussionSummaryServiceImpl) GetSummary(ctx context.Context, discussionID uint) (*dto.DiscussionSummaryResponse, error) {
	discussion, err := s.discussionRepo.FindByID(ctx, discussionID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "해당 토론을 찾을 수 없습니다.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "토론 조회에 실패했습니다.", err.Error())
	}

	if !discussion.IsVS() {
		return nil, response.NewAppError(response.ErrCodeValidation, "자유 토론에는 요약이 없습니다.", "")
	}
	if discussion.StatusAt(s.now()) != domain.DiscussionStatusEnded {
		return nil, response.NewAppError(response.ErrCodeValidation, "토론이 아직 종료되지 않았습니다", "")
	}

	counts, err := s.discussionRepo.CountVotes(ctx, discussionID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "투표 집계에 실패했습니다.", err.Error())
	}
	ratio1, ratio2 := SplitRatio(counts.Option1, counts.Option2)

	totalComments, err := s.discussionRepo.CountComments(ctx, discussionID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "의견 수 집계에 실패했습니다.", err.Error())
	}

	var endedAt *string
	if discussion.EndDate != nil {
		formatted := util.FormatDate(*discussion.EndDate)
		endedAt = &formatted
	}

	resp := &dto.DiscussionSummaryResponse{
		DiscussionID:  discussion.ID,
		Title:         discussion.Title,
		Type:          string(discussion.Type),
		EndedAt:       endedAt,
		TotalComments: totalComments,
		Ratio: dto.OpinionRatioResponse{
			Option1:      discussion.Option1,
			Option2:      discussion.Option2,
			Option1Count: counts.Option1,
			Option2Count: counts.Option2,
			Option1Ratio: ratio1,
			Option2Ratio: ratio2,
			TotalCount:   counts.Total(),
		},
	}

	comments, err := s.discussionRepo.ListCommentsForSummary(ctx, discussionID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "의견 목록 조회에 실패했습니다.", err.Error())
	}
	if len(comments) == 0 {
		resp.Summary = summaryNoOpinions
		return resp, nil
	}

	prompt := buildSummaryPrompt(discussion, comments)
	summary, err := s.genaiClient.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Error("AI summary generation failed",
			zap.Uint("discussion_id", discussionID),
			zap.Error(err),
		)
		if s.metrics != nil {
			s.metrics.IncrementSummaryFallback()
		}
		resp.Summary = summaryFallback
		return resp, nil
	}

	resp.Summary = strings.TrimSpace(summary)
	return resp, nil
}

// buildSummaryPrompt assembles the Korean prompt with opinions grouped
// per side. The per-side message counts and the count/claim/rebuttal
// instructions are part of the expected summary shape.
func buildSummaryPrompt(d *domain.Discussion, comments []*domain.DiscussionComment) string {
	var side1, side2 []string
	for _, c := range comments {
		if c.Choice == nil {
			continue
		}
		line := fmt.Sprintf("- %s: \"%s\"", c.User.Nickname, c.Content)
		switch *c.Choice {
		case 1:
			side1 = append(side1, line)
		case 2:
			side2 = append(side2, line)
		}
	}

	option1, option2 := "", ""
	if d.Option1 != nil {
		option1 = *d.Option1
	}
	if d.Option2 != nil {
		option2 = *d.Option2
	}

	var b strings.Builder
	b.WriteString("당신은 독서 토론 요약 전문가입니다. 아래 VS 토론의 내용을 요약해주세요.\n\n")
	b.WriteString(fmt.Sprintf("## 토론 제목\n%s\n\n", d.Title))
	b.WriteString(fmt.Sprintf("## 선택지\n- 1번 의견: %s\n- 2번 의견: %s\n\n", option1, option2))
	b.WriteString(fmt.Sprintf("## 1번 측 의견들 (%d개)\n%s\n\n", len(side1), sideContents(side1)))
	b.WriteString(fmt.Sprintf("## 2번 측 의견들 (%d개)\n%s\n\n", len(side2), sideContents(side2)))
	b.WriteString("## 요약 작성 지침\n")
	b.WriteString("1. 1번 측에서 몇 개의 메시지가 작성되었고, 어떤 주장을 했는지 간단히 요약해주세요.\n")
	b.WriteString("2. 2번 측에서 몇 개의 메시지가 작성되었고, 어떤 주장을 했는지 간단히 요약해주세요.\n")
	b.WriteString("3. 전체적인 토론 분위기를 한두 문장으로 정리해주세요.\n\n")
	b.WriteString("응답 형식:\n")
	b.WriteString("- 한국어로 작성해주세요.\n")
	b.WriteString("- 어느 한쪽을 편들지 말고 중립적으로, 200자 내외로 간결하게 요약해주세요.\n")
	b.WriteString("- \"1번 측에서 N개의 메시지가 작성되었어요. 1번 측은 ~라는 의견을 내세웠지만 ~에 반박당했어요\" 같은 형식으로 작성해주세요.")
	return b.String()
}

func sideContents(lines []string) string {
	if len(lines) == 0 {
		return "의견이 없습니다."
	}
	return strings.Join(lines, "\n")
}
