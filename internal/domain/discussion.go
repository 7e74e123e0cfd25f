package domain

import "time"

// DiscussionType distinguishes open discussions from two-sided VS debates
type DiscussionType string

const (
	DiscussionTypeFree DiscussionType = "FREE"
	DiscussionTypeVS   DiscussionType = "VS"
)

// DiscussionStatus is the computed lifecycle state of a VS discussion.
// It is never stored; it is derived from end_date against wall-clock time.
type DiscussionStatus string

const (
	DiscussionStatusOpen  DiscussionStatus = "OPEN"
	DiscussionStatusEnded DiscussionStatus = "ENDED"
)

// Discussion is a conversation about a book. VS discussions carry two
// option labels and an optional end date; FREE discussions carry neither.
type Discussion struct {
	BaseModel
	BookID    uint           `gorm:"not null;index:idx_discussions_book_id" json:"book_id"`
	UserID    uint           `gorm:"not null;index:idx_discussions_user_id" json:"user_id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Type      DiscussionType `gorm:"type:varchar(10);not null;column:discussion_type" json:"discussion_type"`
	Option1   *string        `gorm:"type:varchar(100)" json:"option1"`
	Option2   *string        `gorm:"type:varchar(100)" json:"option2"`
	ViewCount int            `gorm:"not null;default:0" json:"view_count"`
	LikeCount int            `gorm:"not null;default:0" json:"like_count"`
	EndDate   *time.Time     `gorm:"type:timestamp;index:idx_discussions_end_date" json:"end_date"`
	Book      Book           `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
	User      User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Discussion
func (Discussion) TableName() string {
	return "discussions"
}

// StatusAt computes the lifecycle state at the given instant. A discussion
// is ENDED iff its end date exists and is not after now; FREE discussions
// have no end date and stay OPEN forever.
func (d *Discussion) StatusAt(now time.Time) DiscussionStatus {
	if d.EndDate != nil && !d.EndDate.After(now) {
		return DiscussionStatusEnded
	}
	return DiscussionStatusOpen
}

// IsVS reports whether the discussion is a two-sided debate
func (d *Discussion) IsVS() bool {
	return d.Type == DiscussionTypeVS
}

// DiscussionComment is one message inside a discussion. Choice is 1 or 2
// for VS discussions and nil for FREE discussions.
type DiscussionComment struct {
	BaseModel
	DiscussionID uint       `gorm:"not null;index:idx_discussion_comments_discussion_id" json:"discussion_id"`
	UserID       uint       `gorm:"not null;index:idx_discussion_comments_user_id" json:"user_id"`
	Content      string     `gorm:"type:text;not null" json:"content"`
	Choice       *int       `json:"choice"`
	Discussion   Discussion `gorm:"foreignKey:DiscussionID;constraint:OnDelete:CASCADE" json:"-"`
	User         User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for DiscussionComment
func (DiscussionComment) TableName() string {
	return "discussion_comments"
}

// DiscussionVote records one user's choice in a VS discussion. The unique
// index backstops the service-level duplicate check.
type DiscussionVote struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	DiscussionID uint       `gorm:"not null;uniqueIndex:uq_discussion_votes_discussion_user,priority:1" json:"discussion_id"`
	UserID       uint       `gorm:"not null;uniqueIndex:uq_discussion_votes_discussion_user,priority:2" json:"user_id"`
	Choice       int        `gorm:"not null" json:"choice"`
	CreatedAt    time.Time  `gorm:"type:timestamp;not null" json:"created_at"`
	Discussion   Discussion `gorm:"foreignKey:DiscussionID;constraint:OnDelete:CASCADE" json:"-"`
	User         User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for DiscussionVote
func (DiscussionVote) TableName() string {
	return "discussion_votes"
}

// DiscussionLike marks a discussion liked by a user
type DiscussionLike struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	DiscussionID uint       `gorm:"not null;uniqueIndex:uq_discussion_likes_discussion_user,priority:1" json:"discussion_id"`
	UserID       uint       `gorm:"not null;uniqueIndex:uq_discussion_likes_discussion_user,priority:2" json:"user_id"`
	CreatedAt    time.Time  `gorm:"type:timestamp;not null" json:"created_at"`
	Discussion   Discussion `gorm:"foreignKey:DiscussionID;constraint:OnDelete:CASCADE" json:"-"`
	User         User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for DiscussionLike
func (DiscussionLike) TableName() string {
	return "discussion_likes"
}
