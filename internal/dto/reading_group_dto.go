package dto

import "book-talk-api/internal/util"

// CreateReadingGroupRequest is the payload for opening a reading group
type CreateReadingGroupRequest struct {
	BookID      uint   `json:"book_id" binding:"required"`
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
}

// ReadingGroupResponse is one reading group with book and membership info
type ReadingGroupResponse struct {
	GroupID      uint    `json:"group_id"`
	BookID       uint    `json:"book_id"`
	BookTitle    string  `json:"book_title"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	MemberCount  int64   `json:"member_count"`
	IsJoined     bool    `json:"is_joined"`
	MyRank       *int    `json:"my_rank,omitempty"`
}

// ReadingGroupListResponse is a paginated list of reading groups
type ReadingGroupListResponse struct {
	Groups     []ReadingGroupResponse `json:"groups"`
	Pagination util.Pagination        `json:"pagination"`
}

// UpdateProgressRequest is the payload for recording reading progress
type UpdateProgressRequest struct {
	CurrentPage int     `json:"current_page" binding:"min=0"`
	Memo        *string `json:"memo"`
}

// GroupMemberResponse is one member with computed progress
type GroupMemberResponse struct {
	UserID          uint    `json:"user_id"`
	Nickname        string  `json:"nickname"`
	CurrentPage     int     `json:"current_page"`
	ProgressPercent int     `json:"progress_percent"`
	Memo            *string `json:"memo,omitempty"`
	Rank            int     `json:"rank"`
	IsCurrentUser   bool    `json:"is_current_user"`
}

// GroupMemberListResponse is the ranked member list of a group
type GroupMemberListResponse struct {
	Members    []GroupMemberResponse `json:"members"`
	Pagination util.Pagination       `json:"pagination"`
}
