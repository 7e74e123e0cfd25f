package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"book-talk-api/internal/domain"
	"book-talk-api/internal/dto"
	"book-talk-api/internal/repository"
	"book-talk-api/internal/response"
	"book-talk-api/internal/util"
)

// ReadingGroupService defines the interface for reading group logic
type ReadingGroupService interface {
	CreateGroup(ctx context.Context, userID uint, req *dto.CreateReadingGroupRequest) (*dto.ReadingGroupResponse, error)
	ListGroups(ctx context.Context, userID uint, page, limit int) (*dto.ReadingGroupListResponse, error)
	GetGroup(ctx context.Context, groupID, userID uint) (*dto.ReadingGroupResponse, error)
	JoinGroup(ctx context.Context, groupID, userID uint) error
	UpdateProgress(ctx context.Context, groupID, userID uint, req *dto.UpdateProgressRequest) error
	ListMembers(ctx context.Context, groupID, userID uint, page, limit int) (*dto.GroupMemberListResponse, error)
}

// readingGroupServiceImpl is the implementation of ReadingGroupService
type readingGroupServiceImpl struct {
	groupRepo repository.ReadingGroupRepository
	bookRepo  repository.BookRepository
	logger    *zap.Logger
}

// NewReadingGroupService creates a new instance of ReadingGroupService
func NewReadingGroupService(
	groupRepo repository.ReadingGroupRepository,
	bookRepo repository.BookRepository,
	logger *zap.Logger,
) ReadingGroupService {
	return &readingGroupServiceImpl{
		groupRepo: groupRepo,
		bookRepo:  bookRepo,
		logger:    logger,
	}
}

// CreateGroup opens a reading group for a book. The creator joins
// automatically.
func (s *readingGroupServiceImpl) CreateGroup(ctx context.Context, userID uint, req *dto.CreateReadingGroupRequest) (*dto.ReadingGroupResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "해당 도서를 찾을 수 없습니다.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "독서 모임 생성에 실패했습니다.", err.Error())
	}

	startDate, err := parseGroupDate(req.StartDate)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "시작일 형식이 올바르지 않습니다.", err.Error())
	}
	endDate, err := parseGroupDate(req.EndDate)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "종료일 형식이 올바르지 않습니다.", err.Error())
	}
	if !endDate.After(startDate) {
		return nil, response.NewAppError(response.ErrCodeValidation, "종료일은 시작일 이후여야 합니다.", "")
	}

	group := &domain.ReadingGroup{
		BookID:      req.BookID,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "독서 모임 생성에 실패했습니다.", err.Error())
	}

	if err := s.groupRepo.AddMember(ctx, &domain.ReadingGroupMember{
		ReadingGroupID: group.ID,
		UserID:         userID,
	}); err != nil {
		s.logger.Warn("failed to auto-join creator",
			zap.Uint("group_id", group.ID),
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
	}

	s.logger.Info("reading group created",
		zap.Uint("group_id", group.ID),
		zap.Uint("book_id", req.BookID),
	)

	return &dto.ReadingGroupResponse{
		GroupID:      group.ID,
		BookID:       group.BookID,
		BookTitle:    book.Title,
		ThumbnailURL: book.ThumbnailURL,
		Name:         group.Name,
		Description:  group.Description,
		StartDate:    util.FormatDate(group.StartDate),
		EndDate:      util.FormatDate(group.EndDate),
		MemberCount:  1,
		IsJoined:     true,
	}, nil
}

// ListGroups returns one page of reading groups with the caller's
// participation marked
func (s *readingGroupServiceImpl) ListGroups(ctx context.Context, userID uint, page, limit int) (*dto.ReadingGroupListResponse, error) {
	total, err := s.groupRepo.Count(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "독서 모임 목록 조회에 실패했습니다.", err.Error())
	}

	pagination := util.Paginate(page, limit, total)
	rows, err := s.groupRepo.List(ctx, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "독서 모임 목록 조회에 실패했습니다.", err.Error())
	}

	groups := make([]dto.ReadingGroupResponse, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		entry := dto.ReadingGroupResponse{
			GroupID:      r.ID,
			BookID:       r.BookID,
			BookTitle:    r.BookTitle,
			ThumbnailURL: r.ThumbnailURL,
			Name:         r.Name,
			Description:  r.Description,
			StartDate:    util.FormatDate(r.StartDate),
			EndDate:      util.FormatDate(r.EndDate),
			MemberCount:  r.MemberCount,
		}
		if userID != 0 {
			if _, err := s.groupRepo.FindMember(ctx, r.ID, userID); err == nil {
				entry.IsJoined = true
			}
		}
		groups = append(groups, entry)
	}
	return &dto.ReadingGroupListResponse{
		Groups:     groups,
		Pagination: pagination,
	}, nil
}

// GetGroup returns one reading group with the caller's rank when joined
func (s *readingGroupServiceImpl) GetGroup(ctx context.Context, groupID, userID uint) (*dto.ReadingGroupResponse, error) {
	group, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	book, err := s.bookRepo.FindByID(ctx, group.BookID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "독서 모임 조회에 실패했습니다.", err.Error())
	}

	memberCount, err := s.groupRepo.CountMembers(ctx, groupID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "독서 모임 조회에 실패했습니다.", err.Error())
	}

	resp := &dto.ReadingGroupResponse{
		GroupID:      group.ID,
		BookID:       group.BookID,
		BookTitle:    book.Title,
		ThumbnailURL: book.ThumbnailURL,
		Name:         group.Name,
		Description:  group.Description,
		StartDate:    util.FormatDate(group.StartDate),
		EndDate:      util.FormatDate(group.EndDate),
		MemberCount:  memberCount,
	}

	if userID != 0 {
		if _, err := s.groupRepo.FindMember(ctx, groupID, userID); err == nil {
			resp.IsJoined = true
			members, err := s.groupRepo.ListMembersByProgress(ctx, groupID)
			if err == nil {
				for i := range members {
					if members[i].UserID == userID {
						rank := i + 1
						resp.MyRank = &rank
						break
					}
				}
			}
		}
	}
	return resp, nil
}

// JoinGroup adds the caller as a member
func (s *readingGroupServiceImpl) JoinGroup(ctx context.Context, groupID, userID uint) error {
	if _, err := s.findGroup(ctx, groupID); err != nil {
		return err
	}

	if _, err := s.groupRepo.FindMember(ctx, groupID, userID); err == nil {
		return response.NewAppError(response.ErrCodeAlreadyExists, "이미 참여한 독서 모임입니다.", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewAppError(response.ErrCodeInternal, "독서 모임 참여에 실패했습니다.", err.Error())
	}

	err := s.groupRepo.AddMember(ctx, &domain.ReadingGroupMember{
		ReadingGroupID: groupID,
		UserID:         userID,
	})
	if err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return response.NewAppError(response.ErrCodeAlreadyExists, "이미 참여한 독서 모임입니다.", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "독서 모임 참여에 실패했습니다.", err.Error())
	}
	return nil
}

// UpdateProgress records the caller's current page, bounded by the book's
// page count when known
func (s *readingGroupServiceImpl) UpdateProgress(ctx context.Context, groupID, userID uint, req *dto.UpdateProgressRequest) error {
	group, err := s.findGroup(ctx, groupID)
	if err != nil {
		return err
	}

	member, err := s.groupRepo.FindMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeForbidden, "독서 모임에 참여한 후 진행률을 기록할 수 있습니다.", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "진행률 저장에 실패했습니다.", err.Error())
	}

	if req.CurrentPage < 0 {
		return response.NewAppError(response.ErrCodeValidation, "페이지는 0 이상이어야 합니다.", "")
	}
	book, err := s.bookRepo.FindByID(ctx, group.BookID)
	if err == nil && book.PageCount != nil && req.CurrentPage > *book.PageCount {
		return response.NewAppError(response.ErrCodeValidation, "페이지가 도서의 전체 페이지 수를 넘을 수 없습니다.", "")
	}

	member.CurrentPage = req.CurrentPage
	member.Memo = req.Memo
	if err := s.groupRepo.UpdateMember(ctx, member); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "진행률 저장에 실패했습니다.", err.Error())
	}
	return nil
}

// ListMembers returns one page of the group's members ranked by progress
func (s *readingGroupServiceImpl) ListMembers(ctx context.Context, groupID, userID uint, page, limit int) (*dto.GroupMemberListResponse, error) {
	group, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	pageCount := 0
	if book, err := s.bookRepo.FindByID(ctx, group.BookID); err == nil && book.PageCount != nil {
		pageCount = *book.PageCount
	}

	members, err := s.groupRepo.ListMembersByProgress(ctx, groupID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "참여자 목록 조회에 실패했습니다.", err.Error())
	}

	pagination := util.Paginate(page, limit, int64(len(members)))
	start := pagination.Offset
	if start > len(members) {
		start = len(members)
	}
	end := start + pagination.Limit
	if end > len(members) {
		end = len(members)
	}

	result := make([]dto.GroupMemberResponse, 0, end-start)
	for i := start; i < end; i++ {
		m := &members[i]
		result = append(result, dto.GroupMemberResponse{
			UserID:          m.UserID,
			Nickname:        m.Nickname,
			CurrentPage:     m.CurrentPage,
			ProgressPercent: progressPercent(m.CurrentPage, pageCount),
			Memo:            m.Memo,
			Rank:            i + 1,
			IsCurrentUser:   m.UserID == userID,
		})
	}
	return &dto.GroupMemberListResponse{
		Members:    result,
		Pagination: pagination,
	}, nil
}

func (s *readingGroupServiceImpl) findGroup(ctx context.Context, groupID uint) (*domain.ReadingGroup, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "해당 독서 모임을 찾을 수 없습니다.", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "독서 모임 조회에 실패했습니다.", err.Error())
	}
	return group, nil
}

// progressPercent computes reading progress capped at 100. An unknown
// page count yields zero.
func progressPercent(currentPage, pageCount int) int {
	if pageCount <= 0 {
		return 0
	}
	percent := currentPage * 100 / pageCount
	if percent > 100 {
		percent = 100
	}
	return percent
}

func parseGroupDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
