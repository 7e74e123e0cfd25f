package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"book-talk-api/internal/auth"
	"book-talk-api/internal/domain"
	"book-talk-api/internal/dto"
	"book-talk-api/internal/repository"
	"book-talk-api/internal/response"
)

// AuthService defines the interface for signup, login and token rotation
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Withdraw(ctx context.Context, userID uint) error
}

// authServiceImpl is the implementation of AuthService
type authServiceImpl struct {
	userRepo     repository.UserRepository
	tokenManager *auth.TokenManager
	logger       *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(userRepo repository.UserRepository, tokenManager *auth.TokenManager, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Signup creates an account with a bcrypt-hashed password
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "회원가입에 실패했습니다.", err.Error())
	}
	if exists {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "이미 가입된 이메일입니다.", "")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "회원가입에 실패했습니다.", err.Error())
	}

	user := &domain.User{
		Email:    req.Email,
		Password: string(hashed),
		Nickname: req.Nickname,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "회원가입에 실패했습니다.", err.Error())
	}

	s.logger.Info("user signed up", zap.Uint("user_id", user.ID))
	return &dto.SignupResponse{
		UserID:   user.ID,
		Email:    user.Email,
		Nickname: user.Nickname,
	}, nil
}

// Login verifies credentials and issues a token pair
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeUnauthorized, "이메일 또는 비밀번호가 올바르지 않습니다.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "로그인에 실패했습니다.", err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "이메일 또는 비밀번호가 올바르지 않습니다.", "")
	}

	return s.issueTokens(ctx, user.ID)
}

// Refresh rotates a refresh token. Expired tokens are deleted and rejected.
func (s *authServiceImpl) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeUnauthorized, "유효하지 않은 토큰입니다.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "토큰 갱신에 실패했습니다.", err.Error())
	}

	if stored.ExpiresAt.Before(time.Now()) {
		if err := s.userRepo.DeleteRefreshToken(ctx, req.RefreshToken); err != nil {
			s.logger.Warn("failed to delete expired refresh token", zap.Error(err))
		}
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "만료된 토큰입니다. 다시 로그인해주세요.", "")
	}

	if _, err := s.tokenManager.ParseUserID(req.RefreshToken); err != nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "유효하지 않은 토큰입니다.", "")
	}

	// Rotation: the presented token is single-use
	if err := s.userRepo.DeleteRefreshToken(ctx, req.RefreshToken); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "토큰 갱신에 실패했습니다.", err.Error())
	}

	return s.issueTokens(ctx, stored.UserID)
}

// Logout revokes the presented refresh token
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if err := s.userRepo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "로그아웃에 실패했습니다.", err.Error())
	}
	return nil
}

// Withdraw revokes all tokens for the account
func (s *authServiceImpl) Withdraw(ctx context.Context, userID uint) error {
	if err := s.userRepo.DeleteRefreshTokensByUser(ctx, userID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "회원 탈퇴에 실패했습니다.", err.Error())
	}
	s.logger.Info("user withdrew", zap.Uint("user_id", userID))
	return nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, userID uint) (*dto.TokenResponse, error) {
	accessToken, err := s.tokenManager.GenerateAccessToken(userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "토큰 발급에 실패했습니다.", err.Error())
	}
	refreshToken, err := s.tokenManager.GenerateRefreshToken(userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "토큰 발급에 실패했습니다.", err.Error())
	}

	record := &domain.RefreshToken{
		UserID:    userID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.tokenManager.RefreshTokenTTL()),
	}
	if err := s.userRepo.SaveRefreshToken(ctx, record); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "토큰 발급에 실패했습니다.", err.Error())
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
