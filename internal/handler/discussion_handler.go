package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"book-talk-api/internal/dto"
	"book-talk-api/internal/response"
	"book-talk-api/internal/service"
)

type DiscussionHandler struct {
	discussionService service.DiscussionService
}

func NewDiscussionHandler(discussionService service.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{
		discussionService: discussionService,
	}
}

// CreateDiscussion godoc
// @Summary      토론 생성
// @Description  도서에 자유(FREE) 또는 찬반(VS) 토론을 개설합니다. VS 토론은 두 선택지와 종료일이 필요합니다
// @Tags         discussions
// @Accept       json
// @Produce      json
// @Param        bookId path int true "도서 ID"
// @Param        request body dto.CreateDiscussionRequest true "토론 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.DiscussionResponse} "토론 생성 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "도서를 찾을 수 없음"
// @Security     BearerAuth
// @Router       /books/{bookId}/discussions [post]
func (h *DiscussionHandler) CreateDiscussion(c *gin.Context) {
	bookID, ok := parseUintParam(c, "bookId")
	if !ok {
		return
	}

	var req dto.CreateDiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	discussion, err := h.discussionService.CreateDiscussion(c.Request.Context(), bookID, currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, discussion)
}

// ListDiscussions godoc
// @Summary      도서 토론 목록 조회
// @Description  도서에 개설된 토론을 최신순으로 조회합니다
// @Tags         discussions
// @Produce      json
// @Param        bookId path int true "도서 ID"
// @Success      200 {object} response.SuccessResponse{data=[]dto.DiscussionResponse} "토론 목록 조회 성공"
// @Failure      404 {object} response.ErrorResponse "도서를 찾을 수 없음"
// @Router       /books/{bookId}/discussions [get]
func (h *DiscussionHandler) ListDiscussions(c *gin.Context) {
	bookID, ok := parseUintParam(c, "bookId")
	if !ok {
		return
	}

	discussions, err := h.discussionService.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, discussions)
}

// GetDiscussion godoc
// @Summary      토론 상세 조회
// @Description  토론 상세를 조회합니다. 조회수가 1 증가합니다
// @Tags         discussions
// @Produce      json
// @Param        discussionId path int true "토론 ID"
// @Success      200 {object} response.SuccessResponse{data=dto.DiscussionResponse} "토론 상세 조회 성공"
// @Failure      404 {object} response.ErrorResponse "토론을 찾을 수 없음"
// @Router       /discussions/{discussionId} [get]
func (h *DiscussionHandler) GetDiscussion(c *gin.Context) {
	discussionID, ok := parseUintParam(c, "discussionId")
	if !ok {
		return
	}

	discussion, err := h.discussionService.GetDiscussion(c.Request.Context(), discussionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, discussion)
}

// ListComments godoc
// @Summary      토론 의견 목록 조회
// @Description  토론에 달린 의견을 오래된 순으로 조회합니다
// @Tags         discussions
// @Produce      json
// @Param        discussionId path int true "토론 ID"
// @Success      200 {object} response.SuccessResponse{data=[]dto.DiscussionCommentResponse} "의견 목록 조회 성공"
// @Failure      404 {object} response.ErrorResponse "토론을 찾을 수 없음"
// @Router       /discussions/{discussionId}/comments [get]
func (h *DiscussionHandler) ListComments(c *gin.Context) {
	discussionID, ok := parseUintParam(c, "discussionId")
	if !ok {
		return
	}

	comments, err := h.discussionService.ListComments(c.Request.Context(), discussionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comments)
}

// LikeDiscussion godoc
// @Summary      토론 좋아요
// @Description  토론에 좋아요를 누릅니다. 이미 눌렀으면 상태가 유지됩니다
// @Tags         discussions
// @Produce      json
// @Param        discussionId path int true "토론 ID"
// @Success      200 {object} response.SuccessResponse{data=dto.LikeResponse} "좋아요 성공"
// @Failure      404 {object} response.ErrorResponse "토론을 찾을 수 없음"
// @Security     BearerAuth
// @Router       /discussions/{discussionId}/like [post]
func (h *DiscussionHandler) LikeDiscussion(c *gin.Context) {
	discussionID, ok := parseUintParam(c, "discussionId")
	if !ok {
		return
	}

	result, err := h.discussionService.LikeDiscussion(c.Request.Context(), discussionID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// UnlikeDiscussion godoc
// @Summary      토론 좋아요 취소
// @Description  토론 좋아요를 취소합니다
// @Tags         discussions
// @Produce      json
// @Param        discussionId path int true "토론 ID"
// @Success      200 {object} response.SuccessResponse{data=dto.LikeResponse} "좋아요 취소 성공"
// @Failure      404 {object} response.ErrorResponse "토론을 찾을 수 없음"
// @Security     BearerAuth
// @Router       /discussions/{discussionId}/like [delete]
func (h *DiscussionHandler) UnlikeDiscussion(c *gin.Context) {
	discussionID, ok := parseUintParam(c, "discussionId")
	if !ok {
		return
	}

	result, err := h.discussionService.UnlikeDiscussion(c.Request.Context(), discussionID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
