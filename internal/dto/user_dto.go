package dto

// UpdateProfileRequest is the payload for editing the caller's profile
type UpdateProfileRequest struct {
	Nickname   *string `json:"nickname" binding:"omitempty,min=2,max=20"`
	ProfileURL *string `json:"profile_url"`
}

// SelectGenresRequest is the payload for picking favorite genres
type SelectGenresRequest struct {
	GenreIDs []uint `json:"genre_ids" binding:"required,min=1"`
}

// ExpResponse is the caller's experience and level snapshot
type ExpResponse struct {
	Exp       int  `json:"exp"`
	Level     int  `json:"level"`
	NextLevel *int `json:"next_level,omitempty"`
	NextExp   *int `json:"next_exp,omitempty"`
}

// ProfileResponse is the caller's account overview
type ProfileResponse struct {
	UserID     uint            `json:"user_id"`
	Email      string          `json:"email"`
	Nickname   string          `json:"nickname"`
	ProfileURL *string         `json:"profile_url"`
	Exp        ExpResponse     `json:"exp"`
	Genres     []GenreResponse `json:"genres"`
}

// MyPageResponse is the my-page aggregate view
type MyPageResponse struct {
	Profile         ProfileResponse `json:"profile"`
	BookmarkPreview []BookmarkItem  `json:"bookmark_preview"`
	QuoteCount      int64           `json:"quote_count"`
	DiscussionCount int64           `json:"discussion_count"`
}
