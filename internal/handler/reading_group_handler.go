package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"book-talk-api/internal/dto"
	"book-talk-api/internal/response"
	"book-talk-api/internal/service"
)

type ReadingGroupHandler struct {
	groupService service.ReadingGroupService
}

func NewReadingGroupHandler(groupService service.ReadingGroupService) *ReadingGroupHandler {
	return &ReadingGroupHandler{
		groupService: groupService,
	}
}

// CreateGroup godoc
// @Summary      독서 모임 생성
// @Description  도서를 함께 읽는 독서 모임을 개설합니다. 개설자는 자동으로 참여됩니다
// @Tags         reading-groups
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateReadingGroupRequest true "독서 모임 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.ReadingGroupResponse} "독서 모임 생성 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "도서를 찾을 수 없음"
// @Security     BearerAuth
// @Router       /reading-groups [post]
func (h *ReadingGroupHandler) CreateGroup(c *gin.Context) {
	var req dto.CreateReadingGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, group)
}

// ListGroups godoc
// @Summary      독서 모임 목록 조회
// @Description  개설된 독서 모임을 최신순으로 조회합니다
// @Tags         reading-groups
// @Produce      json
// @Param        page query int false "페이지 (기본 1)"
// @Param        limit query int false "페이지 크기 (기본 10)"
// @Success      200 {object} response.SuccessResponse{data=dto.ReadingGroupListResponse} "독서 모임 목록 조회 성공"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /reading-groups [get]
func (h *ReadingGroupHandler) ListGroups(c *gin.Context) {
	page, limit := parsePageQuery(c)

	groups, err := h.groupService.ListGroups(c.Request.Context(), currentUserID(c), page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, groups)
}

// GetGroup godoc
// @Summary      독서 모임 상세 조회
// @Description  독서 모임 상세와 내 참여 상태, 순위를 조회합니다
// @Tags         reading-groups
// @Produce      json
// @Param        groupId path int true "독서 모임 ID"
// @Success      200 {object} response.SuccessResponse{data=dto.ReadingGroupResponse} "독서 모임 조회 성공"
// @Failure      404 {object} response.ErrorResponse "독서 모임을 찾을 수 없음"
// @Router       /reading-groups/{groupId} [get]
func (h *ReadingGroupHandler) GetGroup(c *gin.Context) {
	groupID, ok := parseUintParam(c, "groupId")
	if !ok {
		return
	}

	group, err := h.groupService.GetGroup(c.Request.Context(), groupID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, group)
}

// JoinGroup godoc
// @Summary      독서 모임 참여
// @Description  독서 모임에 참여합니다
// @Tags         reading-groups
// @Produce      json
// @Param        groupId path int true "독서 모임 ID"
// @Success      201 {object} response.SuccessResponse "참여 성공"
// @Failure      404 {object} response.ErrorResponse "독서 모임을 찾을 수 없음"
// @Failure      409 {object} response.ErrorResponse "이미 참여한 모임"
// @Security     BearerAuth
// @Router       /reading-groups/{groupId}/join [post]
func (h *ReadingGroupHandler) JoinGroup(c *gin.Context) {
	groupID, ok := parseUintParam(c, "groupId")
	if !ok {
		return
	}

	if err := h.groupService.JoinGroup(c.Request.Context(), groupID, currentUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, gin.H{"message": "독서 모임에 참여했습니다."})
}

// UpdateProgress godoc
// @Summary      독서 진행률 기록
// @Description  현재 읽은 페이지를 기록합니다. 모임 참여자만 기록할 수 있습니다
// @Tags         reading-groups
// @Accept       json
// @Produce      json
// @Param        groupId path int true "독서 모임 ID"
// @Param        request body dto.UpdateProgressRequest true "진행률 기록 요청"
// @Success      200 {object} response.SuccessResponse "진행률 기록 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 페이지"
// @Failure      403 {object} response.ErrorResponse "모임 참여자가 아님"
// @Failure      404 {object} response.ErrorResponse "독서 모임을 찾을 수 없음"
// @Security     BearerAuth
// @Router       /reading-groups/{groupId}/progress [put]
func (h *ReadingGroupHandler) UpdateProgress(c *gin.Context) {
	groupID, ok := parseUintParam(c, "groupId")
	if !ok {
		return
	}

	var req dto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.groupService.UpdateProgress(c.Request.Context(), groupID, currentUserID(c), &req); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "진행률이 기록되었습니다."})
}

// ListMembers godoc
// @Summary      독서 모임 멤버 조회
// @Description  모임 멤버를 진행률 순위대로 조회합니다
// @Tags         reading-groups
// @Produce      json
// @Param        groupId path int true "독서 모임 ID"
// @Param        page query int false "페이지 (기본 1)"
// @Param        limit query int false "페이지 크기 (기본 10)"
// @Success      200 {object} response.SuccessResponse{data=dto.GroupMemberListResponse} "멤버 조회 성공"
// @Failure      404 {object} response.ErrorResponse "독서 모임을 찾을 수 없음"
// @Router       /reading-groups/{groupId}/members [get]
func (h *ReadingGroupHandler) ListMembers(c *gin.Context) {
	groupID, ok := parseUintParam(c, "groupId")
	if !ok {
		return
	}
	page, limit := parsePageQuery(c)

	members, err := h.groupService.ListMembers(c.Request.Context(), groupID, currentUserID(c), page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, members)
}
