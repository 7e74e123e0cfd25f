package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"book-talk-api/internal/dto"
	"book-talk-api/internal/response"
	"book-talk-api/internal/service"
)

type DiscussionVoteHandler struct {
	voteService    service.DiscussionVoteService
	summaryService service.DiscussionSummaryService
}

func NewDiscussionVoteHandler(voteService service.DiscussionVoteService, summaryService service.DiscussionSummaryService) *DiscussionVoteHandler {
	return &DiscussionVoteHandler{
		voteService:    voteService,
		summaryService: summaryService,
	}
}

// PostMessage godoc
// @Summary      토론 의견 작성
// @Description  토론에 의견을 작성합니다. VS 토론에서는 선택지(1 또는 2)가 필요하며, 토론별 첫 의견에는 경험치가 지급됩니다
// @Tags         discussions
// @Accept       json
// @Produce      json
// @Param        discussionId path int true "토론 ID"
// @Param        request body dto.PostMessageRequest true "의견 작성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.PostMessageResponse} "의견 작성 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "토론을 찾을 수 없음"
// @Security     BearerAuth
// @Router       /discussions/{discussionId}/messages [post]
func (h *DiscussionVoteHandler) PostMessage(c *gin.Context) {
	discussionID, ok := parseUintParam(c, "discussionId")
	if !ok {
		return
	}

	var req dto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.voteService.PostMessage(c.Request.Context(), discussionID, currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// Vote godoc
// @Summary      VS 토론 투표
// @Description  VS 토론에서 한 번만 투표할 수 있습니다. 종료된 토론에는 투표할 수 없습니다
// @Tags         discussions
// @Accept       json
// @Produce      json
// @Param        discussionId path int true "토론 ID"
// @Param        request body dto.VoteRequest true "투표 요청"
// @Success      200 {object} response.SuccessResponse "투표 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청 또는 중복 투표"
// @Failure      404 {object} response.ErrorResponse "토론을 찾을 수 없음"
// @Security     BearerAuth
// @Router       /discussions/{discussionId}/vote [post]
func (h *DiscussionVoteHandler) Vote(c *gin.Context) {
	discussionID, ok := parseUintParam(c, "discussionId")
	if !ok {
		return
	}

	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.voteService.Vote(c.Request.Context(), discussionID, currentUserID(c), &req); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "투표가 완료되었습니다."})
}

// GetVoteStatus godoc
// @Summary      내 투표 상태 조회
// @Description  VS 토론에서 내가 투표했는지와 선택지를 조회합니다
// @Tags         discussions
// @Produce      json
// @Param        discussionId path int true "토론 ID"
// @Success      200 {object} response.SuccessResponse{data=dto.VoteStatusResponse} "투표 상태 조회 성공"
// @Failure      404 {object} response.ErrorResponse "토론을 찾을 수 없음"
// @Security     BearerAuth
// @Router       /discussions/{discussionId}/vote-status [get]
func (h *DiscussionVoteHandler) GetVoteStatus(c *gin.Context) {
	discussionID, ok := parseUintParam(c, "discussionId")
	if !ok {
		return
	}

	status, err := h.voteService.GetVoteStatus(c.Request.Context(), discussionID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, status)
}

// GetOpinionRatio godoc
// @Summary      투표 비율 조회
// @Description  VS 토론의 선택지별 투표 수와 백분율을 조회합니다
// @Tags         discussions
// @Produce      json
// @Param        discussionId path int true "토론 ID"
// @Success      200 {object} response.SuccessResponse{data=dto.OpinionRatioResponse} "투표 비율 조회 성공"
// @Failure      400 {object} response.ErrorResponse "VS 토론이 아님"
// @Failure      404 {object} response.ErrorResponse "토론을 찾을 수 없음"
// @Security     BearerAuth
// @Router       /discussions/{discussionId}/vote [get]
func (h *DiscussionVoteHandler) GetOpinionRatio(c *gin.Context) {
	discussionID, ok := parseUintParam(c, "discussionId")
	if !ok {
		return
	}

	ratio, err := h.voteService.GetOpinionRatio(c.Request.Context(), discussionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, ratio)
}

// GetSummary godoc
// @Summary      토론 AI 요약 조회
// @Description  종료된 VS 토론의 의견을 AI로 요약합니다. AI 호출에 실패해도 대체 문구와 함께 투표 비율을 반환합니다
// @Tags         discussions
// @Produce      json
// @Param        discussionId path int true "토론 ID"
// @Success      200 {object} response.SuccessResponse{data=dto.DiscussionSummaryResponse} "요약 조회 성공"
// @Failure      400 {object} response.ErrorResponse "종료되지 않았거나 VS 토론이 아님"
// @Failure      404 {object} response.ErrorResponse "토론을 찾을 수 없음"
// @Security     BearerAuth
// @Router       /discussions/{discussionId}/summary [get]
func (h *DiscussionVoteHandler) GetSummary(c *gin.Context) {
	discussionID, ok := parseUintParam(c, "discussionId")
	if !ok {
		return
	}

	summary, err := h.summaryService.GetSummary(c.Request.Context(), discussionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, summary)
}
