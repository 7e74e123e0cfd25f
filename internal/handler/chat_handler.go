package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"book-talk-api/internal/dto"
	"book-talk-api/internal/response"
	"book-talk-api/internal/service"
)

type ChatHandler struct {
	chatService service.AIChatService
}

func NewChatHandler(chatService service.AIChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// StartChat godoc
// @Summary      AI 북토크 시작
// @Description  도서를 주제로 AI와 새 대화를 시작합니다
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body dto.StartChatRequest true "대화 시작 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.ChatResponse} "대화 시작 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "도서를 찾을 수 없음"
// @Failure      502 {object} response.ErrorResponse "AI 응답 생성 실패"
// @Security     BearerAuth
// @Router       /ai/chats [post]
func (h *ChatHandler) StartChat(c *gin.Context) {
	var req dto.StartChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.chatService.StartChat(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// ContinueChat godoc
// @Summary      AI 북토크 이어가기
// @Description  기존 세션에 메시지를 보내고 AI 응답을 받습니다
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body dto.ContinueChatRequest true "대화 이어가기 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.ChatResponse} "대화 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "본인 세션이 아님"
// @Failure      404 {object} response.ErrorResponse "세션을 찾을 수 없음"
// @Failure      502 {object} response.ErrorResponse "AI 응답 생성 실패"
// @Security     BearerAuth
// @Router       /ai/chats/messages [post]
func (h *ChatHandler) ContinueChat(c *gin.Context) {
	var req dto.ContinueChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.chatService.ContinueChat(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
