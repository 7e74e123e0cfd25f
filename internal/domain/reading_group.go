package domain

import "time"

// ReadingGroup is a shared reading challenge for one book over a date range
type ReadingGroup struct {
	BaseModel
	BookID      uint      `gorm:"not null;index:idx_reading_groups_book_id" json:"book_id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	StartDate   time.Time `gorm:"type:timestamp;not null" json:"start_date"`
	EndDate     time.Time `gorm:"type:timestamp;not null;index:idx_reading_groups_end_date" json:"end_date"`
	Book        Book      `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for ReadingGroup
func (ReadingGroup) TableName() string {
	return "reading_groups"
}

// ReadingGroupMember tracks one participant's progress in a reading group
type ReadingGroupMember struct {
	BaseModel
	ReadingGroupID uint         `gorm:"not null;uniqueIndex:uq_reading_group_members_group_user,priority:1" json:"reading_group_id"`
	UserID         uint         `gorm:"not null;uniqueIndex:uq_reading_group_members_group_user,priority:2" json:"user_id"`
	CurrentPage    int          `gorm:"not null;default:0" json:"current_page"`
	Memo           *string      `gorm:"type:text" json:"memo"`
	ReadingGroup   ReadingGroup `gorm:"foreignKey:ReadingGroupID;constraint:OnDelete:CASCADE" json:"-"`
	User           User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for ReadingGroupMember
func (ReadingGroupMember) TableName() string {
	return "reading_group_members"
}
