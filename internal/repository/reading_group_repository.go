package repository

import (
	"context"

	"gorm.io/gorm"

	"book-talk-api/internal/domain"
)

// ReadingGroupRow is a reading group joined with its book title and
// member count
type ReadingGroupRow struct {
	domain.ReadingGroup
	BookTitle    string
	ThumbnailURL *string
	MemberCount  int64
}

// MemberProgressRow is a group member joined with the member nickname,
// ordered for progress ranking
type MemberProgressRow struct {
	domain.ReadingGroupMember
	Nickname string
}

// ReadingGroupRepository defines data access for reading groups and
// their members
type ReadingGroupRepository interface {
	Create(ctx context.Context, group *domain.ReadingGroup) error
	FindByID(ctx context.Context, id uint) (*domain.ReadingGroup, error)
	List(ctx context.Context, limit, offset int) ([]ReadingGroupRow, error)
	Count(ctx context.Context) (int64, error)
	ListByUser(ctx context.Context, userID uint) ([]ReadingGroupRow, error)

	AddMember(ctx context.Context, member *domain.ReadingGroupMember) error
	FindMember(ctx context.Context, groupID, userID uint) (*domain.ReadingGroupMember, error)
	UpdateMember(ctx context.Context, member *domain.ReadingGroupMember) error
	ListMembersByProgress(ctx context.Context, groupID uint) ([]MemberProgressRow, error)
	CountMembers(ctx context.Context, groupID uint) (int64, error)
}

type readingGroupRepositoryImpl struct {
	db *gorm.DB
}

// NewReadingGroupRepository creates a new instance of ReadingGroupRepository
func NewReadingGroupRepository(db *gorm.DB) ReadingGroupRepository {
	return &readingGroupRepositoryImpl{db: db}
}

func (r *readingGroupRepositoryImpl) Create(ctx context.Context, group *domain.ReadingGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *readingGroupRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.ReadingGroup, error) {
	var group domain.ReadingGroup
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *readingGroupRepositoryImpl) listQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("reading_groups rg").
		Select("rg.*, b.title AS book_title, b.thumbnail_url AS thumbnail_url, "+
			"(SELECT COUNT(*) FROM reading_group_members m WHERE m.reading_group_id = rg.id) AS member_count").
		Joins("INNER JOIN books b ON b.id = rg.book_id")
}

// List returns one page of reading groups, newest first, with book info
// and member counts joined in
func (r *readingGroupRepositoryImpl) List(ctx context.Context, limit, offset int) ([]ReadingGroupRow, error) {
	var rows []ReadingGroupRow
	err := r.listQuery(ctx).
		Order("rg.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *readingGroupRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ReadingGroup{}).Count(&count).Error
	return count, err
}

// ListByUser returns the groups the user joined, newest first
func (r *readingGroupRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]ReadingGroupRow, error) {
	var rows []ReadingGroupRow
	err := r.listQuery(ctx).
		Joins("INNER JOIN reading_group_members rgm ON rgm.reading_group_id = rg.id").
		Where("rgm.user_id = ?", userID).
		Order("rg.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *readingGroupRepositoryImpl) AddMember(ctx context.Context, member *domain.ReadingGroupMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *readingGroupRepositoryImpl) FindMember(ctx context.Context, groupID, userID uint) (*domain.ReadingGroupMember, error) {
	var member domain.ReadingGroupMember
	err := r.db.WithContext(ctx).
		Where("reading_group_id = ? AND user_id = ?", groupID, userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *readingGroupRepositoryImpl) UpdateMember(ctx context.Context, member *domain.ReadingGroupMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// ListMembersByProgress returns all members ordered by pages read,
// earliest joiner breaking ties
func (r *readingGroupRepositoryImpl) ListMembersByProgress(ctx context.Context, groupID uint) ([]MemberProgressRow, error) {
	var rows []MemberProgressRow
	err := r.db.WithContext(ctx).
		Table("reading_group_members m").
		Select("m.*, u.nickname AS nickname").
		Joins("INNER JOIN users u ON u.id = m.user_id").
		Where("m.reading_group_id = ?", groupID).
		Order("m.current_page DESC, m.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *readingGroupRepositoryImpl) CountMembers(ctx context.Context, groupID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ReadingGroupMember{}).
		Where("reading_group_id = ?", groupID).
		Count(&count).Error
	return count, err
}
