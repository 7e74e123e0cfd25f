package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"book-talk-api/internal/domain"
)

func TestExpService_AddExp(t *testing.T) {
	tests := []struct {
		name        string
		existing    *domain.UserExp
		amount      int
		wantPrevExp int
		wantExp     int
		wantLevel   int
		wantLevelUp bool
	}{
		{
			name:        "성공: 기록이 없는 사용자는 0에서 시작한다",
			existing:    nil,
			amount:      10,
			wantPrevExp: 0,
			wantExp:     10,
			wantLevel:   1,
			wantLevelUp: false,
		},
		{
			name:        "성공: 경계값에 도달하면 레벨업한다",
			existing:    &domain.UserExp{UserID: 1, Exp: 90, Level: 1},
			amount:      10,
			wantPrevExp: 90,
			wantExp:     100,
			wantLevel:   2,
			wantLevelUp: true,
		},
		{
			name:        "성공: 경계값 직전에는 레벨이 유지된다",
			existing:    &domain.UserExp{UserID: 1, Exp: 80, Level: 1},
			amount:      10,
			wantPrevExp: 80,
			wantExp:     90,
			wantLevel:   1,
			wantLevelUp: false,
		},
		{
			name:        "성공: 최고 레벨을 넘어서도 5에 머문다",
			existing:    &domain.UserExp{UserID: 1, Exp: 1500, Level: 5},
			amount:      10,
			wantPrevExp: 1500,
			wantExp:     1510,
			wantLevel:   5,
			wantLevelUp: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var saved *domain.UserExp
			repo := &MockUserRepository{
				FindExpFunc: func(ctx context.Context, userID uint) (*domain.UserExp, error) {
					if tt.existing == nil {
						return nil, gorm.ErrRecordNotFound
					}
					return tt.existing, nil
				},
				SaveExpFunc: func(ctx context.Context, exp *domain.UserExp) error {
					saved = exp
					return nil
				},
			}
			svc := NewExpService(repo, nil)

			result, err := svc.AddExp(context.Background(), 1, tt.amount)
			if err != nil {
				t.Fatalf("AddExp() error = %v", err)
			}
			if result.PrevExp != tt.wantPrevExp {
				t.Errorf("PrevExp = %d, want %d", result.PrevExp, tt.wantPrevExp)
			}
			if result.Exp != tt.wantExp {
				t.Errorf("Exp = %d, want %d", result.Exp, tt.wantExp)
			}
			if result.Level != tt.wantLevel {
				t.Errorf("Level = %d, want %d", result.Level, tt.wantLevel)
			}
			if result.LeveledUp != tt.wantLevelUp {
				t.Errorf("LeveledUp = %v, want %v", result.LeveledUp, tt.wantLevelUp)
			}
			if saved == nil || saved.Exp != tt.wantExp || saved.Level != tt.wantLevel {
				t.Errorf("saved record = %+v, want exp %d level %d", saved, tt.wantExp, tt.wantLevel)
			}
		})
	}
}

func TestExpService_GetExp_CorrectsStaleLevel(t *testing.T) {
	var saved *domain.UserExp
	repo := &MockUserRepository{
		FindExpFunc: func(ctx context.Context, userID uint) (*domain.UserExp, error) {
			// 저장된 레벨이 경험치와 어긋난 상태
			return &domain.UserExp{UserID: 1, Exp: 250, Level: 1}, nil
		},
		SaveExpFunc: func(ctx context.Context, exp *domain.UserExp) error {
			saved = exp
			return nil
		},
	}
	svc := NewExpService(repo, nil)

	exp, err := svc.GetExp(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetExp() error = %v", err)
	}
	if exp.Level != 3 {
		t.Errorf("Level = %d, want 3", exp.Level)
	}
	if saved == nil || saved.Level != 3 {
		t.Error("corrected level should be persisted")
	}
}

func TestExpService_GetExp_AbsentRecord(t *testing.T) {
	repo := &MockUserRepository{
		FindExpFunc: func(ctx context.Context, userID uint) (*domain.UserExp, error) {
			return nil, gorm.ErrRecordNotFound
		},
		SaveExpFunc: func(ctx context.Context, exp *domain.UserExp) error {
			t.Error("absent record should not be persisted on read")
			return nil
		},
	}
	svc := NewExpService(repo, nil)

	exp, err := svc.GetExp(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetExp() error = %v", err)
	}
	if exp.Exp != 0 || exp.Level != 1 {
		t.Errorf("got exp %d level %d, want 0/1", exp.Exp, exp.Level)
	}
}
