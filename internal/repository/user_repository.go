package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"book-talk-api/internal/domain"
)

// UserRepository defines data access for users, refresh tokens,
// experience records and preferred genres
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)
	Update(ctx context.Context, user *domain.User) error

	SaveRefreshToken(ctx context.Context, token *domain.RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteRefreshTokensByUser(ctx context.Context, userID uint) error
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)

	FindExp(ctx context.Context, userID uint) (*domain.UserExp, error)
	SaveExp(ctx context.Context, exp *domain.UserExp) error

	ReplaceGenres(ctx context.Context, userID uint, genreIDs []uint) error
	ListGenres(ctx context.Context, userID uint) ([]*domain.Genre, error)
}

type userRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepositoryImpl) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("nickname = ?", nickname).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepositoryImpl) SaveRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *userRepositoryImpl) FindRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var rt domain.RefreshToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *userRepositoryImpl) DeleteRefreshToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&domain.RefreshToken{}).Error
}

func (r *userRepositoryImpl) DeleteRefreshTokensByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.RefreshToken{}).Error
}

// DeleteExpiredRefreshTokens removes tokens whose expiry has passed and
// returns how many rows were deleted. Used by the cleanup job.
func (r *userRepositoryImpl) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&domain.RefreshToken{})
	return result.RowsAffected, result.Error
}

func (r *userRepositoryImpl) FindExp(ctx context.Context, userID uint) (*domain.UserExp, error) {
	var exp domain.UserExp
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&exp).Error; err != nil {
		return nil, err
	}
	return &exp, nil
}

// SaveExp upserts the user's experience record keyed by user id
func (r *userRepositoryImpl) SaveExp(ctx context.Context, exp *domain.UserExp) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"exp", "level", "updated_at"}),
		}).
		Create(exp).Error
}

// ReplaceGenres swaps the user's preferred genres for the given set in
// one transaction
func (r *userRepositoryImpl) ReplaceGenres(ctx context.Context, userID uint, genreIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&domain.UserGenre{}).Error; err != nil {
			return err
		}
		for _, genreID := range genreIDs {
			if err := tx.Create(&domain.UserGenre{
				UserID:  userID,
				GenreID: genreID,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *userRepositoryImpl) ListGenres(ctx context.Context, userID uint) ([]*domain.Genre, error) {
	var genres []*domain.Genre
	err := r.db.WithContext(ctx).
		Table("genres g").
		Joins("INNER JOIN user_genres ug ON ug.genre_id = g.id").
		Where("ug.user_id = ?", userID).
		Order("g.id ASC").
		Find(&genres).Error
	if err != nil {
		return nil, err
	}
	return genres, nil
}
