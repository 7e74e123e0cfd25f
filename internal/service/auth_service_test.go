package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"book-talk-api/internal/auth"
	"book-talk-api/internal/config"
	"book-talk-api/internal/domain"
	"book-talk-api/internal/dto"
	"book-talk-api/internal/response"
)

func newTestTokenManager() *auth.TokenManager {
	return auth.NewTokenManager(config.JWTConfig{
		Secret:          "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name        string
		mockRepo    func(*MockUserRepository)
		wantErr     bool
		wantErrCode string
	}{
		{
			name: "성공: 새 계정을 생성한다",
			mockRepo: func(m *MockUserRepository) {
				m.ExistsByEmailFunc = func(ctx context.Context, email string) (bool, error) {
					return false, nil
				}
				m.CreateFunc = func(ctx context.Context, user *domain.User) error {
					if user.Password == "password123" {
						t.Error("password must be hashed before storing")
					}
					user.ID = 1
					return nil
				}
			},
		},
		{
			name: "실패: 이미 가입된 이메일",
			mockRepo: func(m *MockUserRepository) {
				m.ExistsByEmailFunc = func(ctx context.Context, email string) (bool, error) {
					return true, nil
				}
			},
			wantErr:     true,
			wantErrCode: response.ErrCodeAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockUserRepository{}
			tt.mockRepo(repo)
			svc := NewAuthService(repo, newTestTokenManager(), zap.NewNop())

			resp, err := svc.Signup(context.Background(), &dto.SignupRequest{
				Email:    "reader@example.com",
				Password: "password123",
				Nickname: "독서가",
			})

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				assertAppErrorCode(t, err, tt.wantErrCode)
				return
			}
			if err != nil {
				t.Fatalf("Signup() error = %v", err)
			}
			if resp.UserID != 1 || resp.Nickname != "독서가" {
				t.Errorf("unexpected response: %+v", resp)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	tests := []struct {
		name        string
		password    string
		mockRepo    func(*MockUserRepository)
		wantErr     bool
		wantErrCode string
	}{
		{
			name:     "성공: 올바른 자격 증명으로 토큰 쌍을 발급한다",
			password: "password123",
			mockRepo: func(m *MockUserRepository) {
				m.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return &domain.User{
						BaseModel: domain.BaseModel{ID: 1},
						Email:     email,
						Password:  string(hashed),
						Nickname:  "독서가",
					}, nil
				}
			},
		},
		{
			name:     "실패: 비밀번호 불일치",
			password: "wrong-password",
			mockRepo: func(m *MockUserRepository) {
				m.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return &domain.User{
						BaseModel: domain.BaseModel{ID: 1},
						Email:     email,
						Password:  string(hashed),
					}, nil
				}
			},
			wantErr:     true,
			wantErrCode: response.ErrCodeUnauthorized,
		},
		{
			name:     "실패: 존재하지 않는 계정",
			password: "password123",
			mockRepo: func(m *MockUserRepository) {
				m.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return nil, gorm.ErrRecordNotFound
				}
			},
			wantErr:     true,
			wantErrCode: response.ErrCodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockUserRepository{}
			tt.mockRepo(repo)
			svc := NewAuthService(repo, newTestTokenManager(), zap.NewNop())

			resp, err := svc.Login(context.Background(), &dto.LoginRequest{
				Email:    "reader@example.com",
				Password: tt.password,
			})

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				assertAppErrorCode(t, err, tt.wantErrCode)
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if resp.AccessToken == "" || resp.RefreshToken == "" {
				t.Error("expected non-empty token pair")
			}
		})
	}
}

func TestAuthService_Refresh_ExpiredTokenDeleted(t *testing.T) {
	deleted := false
	repo := &MockUserRepository{
		FindRefreshTokenFunc: func(ctx context.Context, token string) (*domain.RefreshToken, error) {
			return &domain.RefreshToken{
				UserID:    1,
				Token:     token,
				ExpiresAt: time.Now().Add(-time.Hour),
			}, nil
		},
		DeleteRefreshTokenFunc: func(ctx context.Context, token string) error {
			deleted = true
			return nil
		},
	}
	svc := NewAuthService(repo, newTestTokenManager(), zap.NewNop())

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: "expired"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	assertAppErrorCode(t, err, response.ErrCodeUnauthorized)
	if !deleted {
		t.Error("expired token should be deleted")
	}
}
