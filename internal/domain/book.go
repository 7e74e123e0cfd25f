package domain

import "time"

// Book is a locally persisted copy of a catalog entry. Rows are created
// lazily the first time a book detail is served.
type Book struct {
	BaseModel
	AladinItemID  string     `gorm:"type:varchar(50);not null;uniqueIndex:uq_books_aladin_item_id" json:"aladin_item_id"`
	Title         string     `gorm:"type:varchar(255);not null" json:"title"`
	Author        *string    `gorm:"type:varchar(255)" json:"author"`
	Publisher     *string    `gorm:"type:varchar(255)" json:"publisher"`
	PublishedDate *string    `gorm:"type:timestamp" json:"published_date"`
	Description   *string    `gorm:"type:text" json:"description"`
	ThumbnailURL  *string    `gorm:"type:text" json:"thumbnail_url"`
	PageCount     *int       `json:"page_count"`
}

// TableName specifies the table name for Book
func (Book) TableName() string {
	return "books"
}

// Genre is a catalog category. ParentID groups sub-genres under the
// top-level onboarding genres.
type Genre struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex:uq_genres_name" json:"name"`
	ParentID *uint  `gorm:"index:idx_genres_parent_id" json:"parent_id"`
}

// TableName specifies the table name for Genre
func (Genre) TableName() string {
	return "genres"
}

// BookGenre links a book to one of its genres
type BookGenre struct {
	ID      uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	BookID  uint  `gorm:"not null;uniqueIndex:uq_book_genres_book_genre,priority:1" json:"book_id"`
	GenreID uint  `gorm:"not null;uniqueIndex:uq_book_genres_book_genre,priority:2" json:"genre_id"`
	Book    Book  `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
	Genre   Genre `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for BookGenre
func (BookGenre) TableName() string {
	return "book_genres"
}

// Bookmark marks a book saved by a user. One row per (user, book).
type Bookmark struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uq_bookmarks_user_book,priority:1" json:"user_id"`
	BookID    uint      `gorm:"not null;uniqueIndex:uq_bookmarks_user_book,priority:2" json:"book_id"`
	CreatedAt time.Time `gorm:"type:timestamp;not null" json:"created_at"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Book      Book      `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Bookmark
func (Bookmark) TableName() string {
	return "bookmarks"
}
