package dto

import "book-talk-api/internal/util"

// BookSearchItem is one catalog hit from search or bestsellers
type BookSearchItem struct {
	AladinItemID string  `json:"aladin_item_id"`
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	Publisher    string  `json:"publisher"`
	PublishedAt  string  `json:"published_at"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Category     string  `json:"category"`
	Description  *string `json:"description,omitempty"`
}

// BookSearchResponse is the catalog passthrough list
type BookSearchResponse struct {
	Books   []BookSearchItem `json:"books"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	HasMore bool             `json:"has_more"`
}

// GenreResponse is one genre
type GenreResponse struct {
	GenreID uint   `json:"genre_id"`
	Name    string `json:"name"`
}

// BookDetailResponse is a locally stored book with its genres
type BookDetailResponse struct {
	BookID        uint            `json:"book_id"`
	AladinItemID  string          `json:"aladin_item_id"`
	Title         string          `json:"title"`
	Author        *string         `json:"author"`
	Publisher     *string         `json:"publisher"`
	PublishedDate *string         `json:"published_date"`
	Description   *string         `json:"description"`
	ThumbnailURL  *string         `json:"thumbnail_url"`
	PageCount     *int            `json:"page_count"`
	Genres        []GenreResponse `json:"genres"`
	IsBookmarked  bool            `json:"is_bookmarked"`
}

// BookmarkItem is one bookmarked book in a list
type BookmarkItem struct {
	BookID       uint    `json:"book_id"`
	Title        string  `json:"title"`
	Author       *string `json:"author"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

// BookmarkListResponse is the paginated bookmark list
type BookmarkListResponse struct {
	Bookmarks  []BookmarkItem  `json:"bookmarks"`
	Pagination util.Pagination `json:"pagination"`
}

// RecommendedBook is one AI-picked catalog entry
type RecommendedBook struct {
	AladinItemID string `json:"aladin_item_id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// RecommendationResponse is the AI book recommendation list
type RecommendationResponse struct {
	Recommendations []RecommendedBook `json:"recommendations"`
}
