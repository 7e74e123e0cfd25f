package domain

import "time"

// User represents a registered account
type User struct {
	BaseModel
	Email      string  `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	Password   string  `gorm:"type:varchar(255);not null" json:"-"`
	Nickname   string  `gorm:"type:varchar(50);not null" json:"nickname"`
	ProfileURL *string `gorm:"type:text" json:"profile_url"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// RefreshToken stores an issued refresh token until it is rotated or revoked
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_refresh_tokens_user_id" json:"user_id"`
	Token     string    `gorm:"type:varchar(512);not null;uniqueIndex:uq_refresh_tokens_token" json:"-"`
	ExpiresAt time.Time `gorm:"type:timestamp;not null;index:idx_refresh_tokens_expires_at" json:"expires_at"`
	CreatedAt time.Time `gorm:"type:timestamp;not null" json:"created_at"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for RefreshToken
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// Experience level thresholds. Level is always a deterministic function of exp.
const (
	MaxLevel = 5

	ExpReward = 10
)

var levelThresholds = []int{0, 100, 200, 500, 1000}

// LevelForExp maps a cumulative exp value onto the 1..5 level scale
func LevelForExp(exp int) int {
	level := 1
	for i, threshold := range levelThresholds {
		if exp >= threshold {
			level = i + 1
		}
	}
	return level
}

// NextLevelThreshold returns the exp needed for the next level, or false
// when the level is already the maximum
func NextLevelThreshold(level int) (int, bool) {
	if level >= MaxLevel {
		return 0, false
	}
	return levelThresholds[level], true
}

// UserExp stores a user's cumulative experience and its derived level
type UserExp struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	Exp       int       `gorm:"not null;default:0" json:"exp"`
	Level     int       `gorm:"not null;default:1" json:"level"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null" json:"updated_at"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for UserExp
func (UserExp) TableName() string {
	return "user_exp"
}

// UserGenre links a user to a preferred genre chosen during onboarding
type UserGenre struct {
	ID      uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  uint  `gorm:"not null;uniqueIndex:uq_user_genres_user_genre,priority:1" json:"user_id"`
	GenreID uint  `gorm:"not null;uniqueIndex:uq_user_genres_user_genre,priority:2" json:"genre_id"`
	User    User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Genre   Genre `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for UserGenre
func (UserGenre) TableName() string {
	return "user_genres"
}
