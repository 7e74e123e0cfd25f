package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"book-talk-api/internal/domain"
	"book-talk-api/internal/dto"
	"book-talk-api/internal/repository"
	"book-talk-api/internal/response"
)

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func vsDiscussion(id uint, endDate time.Time) *domain.Discussion {
	return &domain.Discussion{
		BaseModel: domain.BaseModel{ID: id},
		BookID:    1,
		UserID:    1,
		Title:     "VS 토론",
		Content:   "내용",
		Type:      domain.DiscussionTypeVS,
		Option1:   strPtr("찬성"),
		Option2:   strPtr("반대"),
		EndDate:   &endDate,
	}
}

func freeDiscussion(id uint) *domain.Discussion {
	return &domain.Discussion{
		BaseModel: domain.BaseModel{ID: id},
		BookID:    1,
		UserID:    1,
		Title:     "자유 토론",
		Content:   "내용",
		Type:      domain.DiscussionTypeFree,
	}
}

func newVoteService(repo *MockDiscussionRepository, exp ExpService, now time.Time) DiscussionVoteService {
	svc := NewDiscussionVoteService(repo, exp, zap.NewNop(), nil).(*discussionVoteServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func assertAppErrorCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != wantCode {
		t.Errorf("error code = %s, want %s", appErr.Code, wantCode)
	}
}

func TestDiscussionVoteService_PostMessage(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(72 * time.Hour)

	tests := []struct {
		name        string
		req         *dto.PostMessageRequest
		mockRepo    func(*MockDiscussionRepository)
		mockExp     func(*MockExpService)
		wantErr     bool
		wantErrCode string
		wantExp     int
		wantLevelUp bool
	}{
		{
			name: "성공: VS 토론 첫 의견은 경험치를 지급한다",
			req:  &dto.PostMessageRequest{Content: "찬성 의견", Choice: intPtr(1)},
			mockRepo: func(m *MockDiscussionRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Discussion, error) {
					return vsDiscussion(id, future), nil
				}
				m.HasUserCommentedFunc = func(ctx context.Context, discussionID, userID uint) (bool, error) {
					return false, nil
				}
				m.CreateCommentFunc = func(ctx context.Context, comment *domain.DiscussionComment) error {
					comment.ID = 77
					return nil
				}
			},
			mockExp: func(m *MockExpService) {
				m.AddExpFunc = func(ctx context.Context, userID uint, amount int) (*ExpResult, error) {
					return &ExpResult{Exp: 100, PrevLevel: 1, Level: 2, LeveledUp: true}, nil
				}
			},
			wantExp:     domain.ExpReward,
			wantLevelUp: true,
		},
		{
			name: "성공: 같은 토론의 두 번째 의견은 경험치가 없다",
			req:  &dto.PostMessageRequest{Content: "추가 의견", Choice: intPtr(2)},
			mockRepo: func(m *MockDiscussionRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Discussion, error) {
					return vsDiscussion(id, future), nil
				}
				m.HasUserCommentedFunc = func(ctx context.Context, discussionID, userID uint) (bool, error) {
					return true, nil
				}
			},
			mockExp: func(m *MockExpService) {
				m.AddExpFunc = func(ctx context.Context, userID uint, amount int) (*ExpResult, error) {
					t.Error("AddExp should not be called for a repeat comment")
					return nil, nil
				}
			},
			wantExp: 0,
		},
		{
			name: "실패: VS 토론에서 선택지 누락",
			req:  &dto.PostMessageRequest{Content: "의견"},
			mockRepo: func(m *MockDiscussionRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Discussion, error) {
					return vsDiscussion(id, future), nil
				}
			},
			mockExp:     func(m *MockExpService) {},
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name: "실패: VS 토론에서 선택지 범위 초과",
			req:  &dto.PostMessageRequest{Content: "의견", Choice: intPtr(3)},
			mockRepo: func(m *MockDiscussionRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Discussion, error) {
					return vsDiscussion(id, future), nil
				}
			},
			mockExp:     func(m *MockExpService) {},
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name: "실패: 자유 토론에 선택지를 지정",
			req:  &dto.PostMessageRequest{Content: "의견", Choice: intPtr(1)},
			mockRepo: func(m *MockDiscussionRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Discussion, error) {
					return freeDiscussion(id), nil
				}
			},
			mockExp:     func(m *MockExpService) {},
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name: "실패: 토론이 존재하지 않음",
			req:  &dto.PostMessageRequest{Content: "의견", Choice: intPtr(1)},
			mockRepo: func(m *MockDiscussionRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Discussion, error) {
					return nil, gorm.ErrRecordNotFound
				}
			},
			mockExp:     func(m *MockExpService) {},
			wantErr:     true,
			wantErrCode: response.ErrCodeNotFound,
		},
		{
			name: "성공: 경험치 지급 실패는 의견 등록을 막지 않는다",
			req:  &dto.PostMessageRequest{Content: "의견", Choice: intPtr(1)},
			mockRepo: func(m *MockDiscussionRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Discussion, error) {
					return vsDiscussion(id, future), nil
				}
				m.HasUserCommentedFunc = func(ctx context.Context, discussionID, userID uint) (bool, error) {
					return false, nil
				}
			},
			mockExp: func(m *MockExpService) {
				m.AddExpFunc = func(ctx context.Context, userID uint, amount int) (*ExpResult, error) {
					return nil, errors.New("db down")
				}
			},
			wantExp: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockDiscussionRepository{}
			tt.mockRepo(repo)
			exp := &MockExpService{}
			tt.mockExp(exp)

			svc := newVoteService(repo, exp, now)
			resp, err := svc.PostMessage(context.Background(), 10, 5, tt.req)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				assertAppErrorCode(t, err, tt.wantErrCode)
				return
			}
			if err != nil {
				t.Fatalf("PostMessage() error = %v", err)
			}
			if resp.ExpEarned != tt.wantExp {
				t.Errorf("ExpEarned = %d, want %d", resp.ExpEarned, tt.wantExp)
			}
			if resp.LeveledUp != tt.wantLevelUp {
				t.Errorf("LeveledUp = %v, want %v", resp.LeveledUp, tt.wantLevelUp)
			}
		})
	}
}

func TestDiscussionVoteService_Vote(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		req         *dto.VoteRequest
		mockRepo    func(*MockDiscussionRepository)
		wantErr     bool
		wantErrCode string
	}{
		{
			name: "성공: 진행 중인 VS 토론에 첫 투표",
			req:  &dto.VoteRequest{Choice: 1},
			mockRepo: func(m *MockDiscussionRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Discussion, error) {
					return vsDiscussion(id, now.Add(24*time.Hour)), nil
				}
				m.FindVoteFunc = func(ctx context.Context, discussionID, userID uint) (*domain.DiscussionVote, error) {
					return nil, gorm.ErrRecordNotFound
				}
			},
		},
		{
			name: "실패: 이미 투표한 토론",
			req:  &dto.VoteRequest{Choice: 2},
			mockRepo: func(m *MockDiscussionRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Discussion, error) {
					return vsDiscussion(id, now.Add(24*time.Hour)), nil
				}
				m.FindVoteFunc = func(ctx context.Context, discussionID, userID uint) (*domain.DiscussionVote, error) {
					return &domain.DiscussionVote{DiscussionID: discussionID, UserID: userID, Choice: 1}, nil
				}
			},
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name: "실패: 종료된 토론에는 투표할 수 없다",
			req:  &dto.VoteRequest{Choice: 1},
			mockRepo: func(m *MockDiscussionRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Discussion, error) {
					return vsDiscussion(id, now.Add(-time.Minute)), nil
				}
			},
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name: "실패: 자유 토론에는 투표할 수 없다",
			req:  &dto.VoteRequest{Choice: 1},
			mockRepo: func(m *MockDiscussionRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Discussion, error) {
					return freeDiscussion(id), nil
				}
			},
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name: "실패: 토론이 존재하지 않음",
			req:  &dto.VoteRequest{Choice: 1},
			mockRepo: func(m *MockDiscussionRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Discussion, error) {
					return nil, gorm.ErrRecordNotFound
				}
			},
			wantErr:     true,
			wantErrCode: response.ErrCodeNotFound,
		},
		{
			name: "실패: 동시 중복 투표는 유니크 제약에 걸린다",
			req:  &dto.VoteRequest{Choice: 1},
			mockRepo: func(m *MockDiscussionRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Discussion, error) {
					return vsDiscussion(id, now.Add(24*time.Hour)), nil
				}
				m.FindVoteFunc = func(ctx context.Context, discussionID, userID uint) (*domain.DiscussionVote, error) {
					return nil, gorm.ErrRecordNotFound
				}
				m.CreateVoteFunc = func(ctx context.Context, vote *domain.DiscussionVote) error {
					return errors.New("UNIQUE constraint failed: discussion_votes.discussion_id, discussion_votes.user_id")
				}
			},
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockDiscussionRepository{}
			tt.mockRepo(repo)

			svc := newVoteService(repo, &MockExpService{}, now)
			err := svc.Vote(context.Background(), 10, 5, tt.req)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				assertAppErrorCode(t, err, tt.wantErrCode)
				return
			}
			if err != nil {
				t.Fatalf("Vote() error = %v", err)
			}
		})
	}
}

func TestDiscussionVoteService_GetVoteStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	repo := &MockDiscussionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Discussion, error) {
			return vsDiscussion(id, now.Add(24*time.Hour)), nil
		},
		FindVoteFunc: func(ctx context.Context, discussionID, userID uint) (*domain.DiscussionVote, error) {
			if userID == 5 {
				return &domain.DiscussionVote{DiscussionID: discussionID, UserID: userID, Choice: 2}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newVoteService(repo, &MockExpService{}, now)

	voted, err := svc.GetVoteStatus(context.Background(), 10, 5)
	if err != nil {
		t.Fatalf("GetVoteStatus() error = %v", err)
	}
	if !voted.IsVoted || voted.Choice == nil || *voted.Choice != 2 {
		t.Errorf("voted user: got %+v, want is_voted=true choice=2", voted)
	}

	notVoted, err := svc.GetVoteStatus(context.Background(), 10, 6)
	if err != nil {
		t.Fatalf("GetVoteStatus() error = %v", err)
	}
	if notVoted.IsVoted || notVoted.Choice != nil {
		t.Errorf("non-voter: got %+v, want is_voted=false choice=null", notVoted)
	}
}

func TestDiscussionVoteService_GetVoteStatus_FreeDiscussion(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	repo := &MockDiscussionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Discussion, error) {
			return freeDiscussion(id), nil
		},
		FindVoteFunc: func(ctx context.Context, discussionID, userID uint) (*domain.DiscussionVote, error) {
			t.Error("FindVote should not be called for a FREE discussion")
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newVoteService(repo, &MockExpService{}, now)

	_, err := svc.GetVoteStatus(context.Background(), 10, 5)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	assertAppErrorCode(t, err, response.ErrCodeValidation)
}

func TestDiscussionVoteService_GetOpinionRatio(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		counts     repository.VoteCounts
		wantRatio1 int
		wantRatio2 int
	}{
		{name: "3대1은 75대25", counts: repository.VoteCounts{Option1: 3, Option2: 1}, wantRatio1: 75, wantRatio2: 25},
		{name: "투표가 없으면 0대0", counts: repository.VoteCounts{}, wantRatio1: 0, wantRatio2: 0},
		{name: "한쪽만 투표하면 100대0", counts: repository.VoteCounts{Option1: 4}, wantRatio1: 100, wantRatio2: 0},
		{name: "1대2는 반올림하여 33대67", counts: repository.VoteCounts{Option1: 1, Option2: 2}, wantRatio1: 33, wantRatio2: 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockDiscussionRepository{
				FindByIDFunc: func(ctx context.Context, id uint) (*domain.Discussion, error) {
					return vsDiscussion(id, now.Add(24*time.Hour)), nil
				},
				CountVotesFunc: func(ctx context.Context, discussionID uint) (repository.VoteCounts, error) {
					return tt.counts, nil
				},
			}
			svc := newVoteService(repo, &MockExpService{}, now)

			resp, err := svc.GetOpinionRatio(context.Background(), 10)
			if err != nil {
				t.Fatalf("GetOpinionRatio() error = %v", err)
			}
			if resp.Option1Ratio != tt.wantRatio1 || resp.Option2Ratio != tt.wantRatio2 {
				t.Errorf("ratio = %d/%d, want %d/%d",
					resp.Option1Ratio, resp.Option2Ratio, tt.wantRatio1, tt.wantRatio2)
			}
			if resp.TotalCount != tt.counts.Total() {
				t.Errorf("TotalCount = %d, want %d", resp.TotalCount, tt.counts.Total())
			}
		})
	}

	t.Run("실패: 자유 토론에는 의견 비율이 없다", func(t *testing.T) {
		repo := &MockDiscussionRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*domain.Discussion, error) {
				return freeDiscussion(id), nil
			},
		}
		svc := newVoteService(repo, &MockExpService{}, now)

		_, err := svc.GetOpinionRatio(context.Background(), 10)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		assertAppErrorCode(t, err, response.ErrCodeValidation)
	})
}
