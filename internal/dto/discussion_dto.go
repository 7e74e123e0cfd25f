package dto

import "book-talk-api/internal/util"

// CreateDiscussionRequest is the payload for opening a discussion on a book
type CreateDiscussionRequest struct {
	Title   string  `json:"title" binding:"required,max=255"`
	Content string  `json:"content" binding:"required"`
	Type    string  `json:"discussion_type" binding:"required,oneof=FREE VS"`
	Option1 *string `json:"option1"`
	Option2 *string `json:"option2"`
	EndDate *string `json:"end_date"`
}

// DiscussionResponse is one discussion with its computed status
type DiscussionResponse struct {
	DiscussionID uint    `json:"discussion_id"`
	BookID       uint    `json:"book_id"`
	UserID       uint    `json:"user_id"`
	Nickname     string  `json:"nickname"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	Type         string  `json:"discussion_type"`
	Status       string  `json:"status"`
	Option1      *string `json:"option1,omitempty"`
	Option2      *string `json:"option2,omitempty"`
	ViewCount    int     `json:"view_count"`
	LikeCount    int     `json:"like_count"`
	CommentCount int64   `json:"comment_count"`
	EndDate      *string `json:"end_date,omitempty"`
	DaysLeft     *int    `json:"days_left,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// DiscussionListResponse is the paginated list of a user's discussions
type DiscussionListResponse struct {
	Discussions []DiscussionResponse `json:"discussions"`
	Pagination  util.Pagination      `json:"pagination"`
}

// PostMessageRequest is the payload for adding an opinion to a discussion
type PostMessageRequest struct {
	Content string `json:"content" binding:"required"`
	Choice  *int   `json:"choice"`
}

// PostMessageResponse reports the stored comment and any experience reward
type PostMessageResponse struct {
	CommentID uint `json:"comment_id"`
	ExpEarned int  `json:"exp_earned"`
	LeveledUp bool `json:"leveled_up"`
	Level     int  `json:"level"`
}

// DiscussionCommentResponse is one opinion in a discussion
type DiscussionCommentResponse struct {
	CommentID uint   `json:"comment_id"`
	UserID    uint   `json:"user_id"`
	Nickname  string `json:"nickname"`
	Content   string `json:"content"`
	Choice    *int   `json:"choice,omitempty"`
	CreatedAt string `json:"created_at"`
}

// VoteRequest is the payload for casting a VS vote
type VoteRequest struct {
	Choice int `json:"choice" binding:"required,oneof=1 2"`
}

// VoteStatusResponse reports whether the caller voted and which side
type VoteStatusResponse struct {
	IsVoted bool `json:"is_voted"`
	Choice  *int `json:"choice"`
}

// OpinionRatioResponse is the percentage split between the two options
type OpinionRatioResponse struct {
	Option1      *string `json:"option1"`
	Option2      *string `json:"option2"`
	Option1Count int64   `json:"option1_count"`
	Option2Count int64   `json:"option2_count"`
	Option1Ratio int     `json:"option1_ratio"`
	Option2Ratio int     `json:"option2_ratio"`
	TotalCount   int64   `json:"total_count"`
}

// DiscussionSummaryResponse is the AI summary of an ended VS discussion
type DiscussionSummaryResponse struct {
	DiscussionID  uint                 `json:"discussion_id"`
	Title         string               `json:"title"`
	Type          string               `json:"discussion_type"`
	EndedAt       *string              `json:"ended_at"`
	TotalComments int64                `json:"total_comments"`
	Summary       string               `json:"summary"`
	Ratio         OpinionRatioResponse `json:"opinion_ratio"`
}

// LikeResponse reports the like state after a like or unlike call
type LikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}
