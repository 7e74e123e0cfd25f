package domain

import "time"

// Quote is a passage a user saved from a book
type Quote struct {
	BaseModel
	UserID    uint   `gorm:"not null;index:idx_quotes_user_id" json:"user_id"`
	BookID    uint   `gorm:"not null;index:idx_quotes_book_id" json:"book_id"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Page      *int   `json:"page"`
	LikeCount int    `gorm:"not null;default:0" json:"like_count"`
	User      User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Book      Book   `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Quote
func (Quote) TableName() string {
	return "quotes"
}

// QuoteLike marks a quote liked by a user
type QuoteLike struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	QuoteID   uint      `gorm:"not null;uniqueIndex:uq_quote_likes_quote_user,priority:1" json:"quote_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uq_quote_likes_quote_user,priority:2" json:"user_id"`
	CreatedAt time.Time `gorm:"type:timestamp;not null" json:"created_at"`
	Quote     Quote     `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"-"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for QuoteLike
func (QuoteLike) TableName() string {
	return "quote_likes"
}
