package dto

import "book-talk-api/internal/util"

// CreateQuoteRequest is the payload for posting a quote from a book
type CreateQuoteRequest struct {
	Content string `json:"content" binding:"required,max=500"`
	Page    *int   `json:"page"`
}

// UpdateQuoteRequest is the payload for editing a quote
type UpdateQuoteRequest struct {
	Content string `json:"content" binding:"required,max=500"`
	Page    *int   `json:"page"`
}

// QuoteResponse is one quote with author and book info
type QuoteResponse struct {
	QuoteID   uint   `json:"quote_id"`
	BookID    uint   `json:"book_id"`
	BookTitle string `json:"book_title"`
	UserID    uint   `json:"user_id"`
	Nickname  string `json:"nickname"`
	Content   string `json:"content"`
	Page      *int   `json:"page,omitempty"`
	LikeCount int    `json:"like_count"`
	IsLiked   bool   `json:"is_liked"`
	CreatedAt string `json:"created_at"`
}

// CreateQuoteResponse reports the stored quote and any experience reward
type CreateQuoteResponse struct {
	QuoteID   uint `json:"quote_id"`
	ExpEarned int  `json:"exp_earned"`
	LeveledUp bool `json:"leveled_up"`
	Level     int  `json:"level"`
}

// QuoteListResponse is a paginated list of quotes
type QuoteListResponse struct {
	Quotes     []QuoteResponse `json:"quotes"`
	Pagination util.Pagination `json:"pagination"`
}
