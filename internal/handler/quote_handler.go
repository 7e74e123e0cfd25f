package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"book-talk-api/internal/dto"
	"book-talk-api/internal/response"
	"book-talk-api/internal/service"
)

type QuoteHandler struct {
	quoteService service.QuoteService
}

func NewQuoteHandler(quoteService service.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// CreateQuote godoc
// @Summary      글귀 작성
// @Description  도서에서 인상 깊은 글귀를 기록합니다. 도서별 첫 글귀에는 경험치가 지급됩니다
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        bookId path int true "도서 ID"
// @Param        request body dto.CreateQuoteRequest true "글귀 작성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.CreateQuoteResponse} "글귀 작성 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "도서를 찾을 수 없음"
// @Security     BearerAuth
// @Router       /books/{bookId}/quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	bookID, ok := parseUintParam(c, "bookId")
	if !ok {
		return
	}

	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), bookID, currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, quote)
}

// ListQuotesByBook godoc
// @Summary      도서 글귀 목록 조회
// @Description  도서에 기록된 글귀를 최신순으로 조회합니다
// @Tags         quotes
// @Produce      json
// @Param        bookId path int true "도서 ID"
// @Param        page query int false "페이지 (기본 1)"
// @Param        limit query int false "페이지 크기 (기본 10)"
// @Success      200 {object} response.SuccessResponse{data=dto.QuoteListResponse} "글귀 목록 조회 성공"
// @Failure      404 {object} response.ErrorResponse "도서를 찾을 수 없음"
// @Router       /books/{bookId}/quotes [get]
func (h *QuoteHandler) ListQuotesByBook(c *gin.Context) {
	bookID, ok := parseUintParam(c, "bookId")
	if !ok {
		return
	}
	page, limit := parsePageQuery(c)

	quotes, err := h.quoteService.ListByBook(c.Request.Context(), bookID, page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, quotes)
}

// ListPopularQuotes godoc
// @Summary      인기 글귀 조회
// @Description  좋아요가 많은 글귀를 조회합니다
// @Tags         quotes
// @Produce      json
// @Param        limit query int false "조회 개수 (기본 10)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.QuoteResponse} "인기 글귀 조회 성공"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /quotes/popular [get]
func (h *QuoteHandler) ListPopularQuotes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	quotes, err := h.quoteService.ListPopular(c.Request.Context(), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, quotes)
}

// GetQuote godoc
// @Summary      글귀 상세 조회
// @Description  글귀 하나를 조회합니다
// @Tags         quotes
// @Produce      json
// @Param        quoteId path int true "글귀 ID"
// @Success      200 {object} response.SuccessResponse{data=dto.QuoteResponse} "글귀 조회 성공"
// @Failure      404 {object} response.ErrorResponse "글귀를 찾을 수 없음"
// @Router       /quotes/{quoteId} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quoteID, ok := parseUintParam(c, "quoteId")
	if !ok {
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), quoteID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, quote)
}

// UpdateQuote godoc
// @Summary      글귀 수정
// @Description  본인이 작성한 글귀를 수정합니다
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        quoteId path int true "글귀 ID"
// @Param        request body dto.UpdateQuoteRequest true "글귀 수정 요청"
// @Success      200 {object} response.SuccessResponse "글귀 수정 성공"
// @Failure      403 {object} response.ErrorResponse "본인 글귀가 아님"
// @Failure      404 {object} response.ErrorResponse "글귀를 찾을 수 없음"
// @Security     BearerAuth
// @Router       /quotes/{quoteId} [put]
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	quoteID, ok := parseUintParam(c, "quoteId")
	if !ok {
		return
	}

	var req dto.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.quoteService.UpdateQuote(c.Request.Context(), quoteID, currentUserID(c), &req); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "글귀가 수정되었습니다."})
}

// DeleteQuote godoc
// @Summary      글귀 삭제
// @Description  본인이 작성한 글귀를 삭제합니다
// @Tags         quotes
// @Produce      json
// @Param        quoteId path int true "글귀 ID"
// @Success      200 {object} response.SuccessResponse "글귀 삭제 성공"
// @Failure      403 {object} response.ErrorResponse "본인 글귀가 아님"
// @Failure      404 {object} response.ErrorResponse "글귀를 찾을 수 없음"
// @Security     BearerAuth
// @Router       /quotes/{quoteId} [delete]
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	quoteID, ok := parseUintParam(c, "quoteId")
	if !ok {
		return
	}

	if err := h.quoteService.DeleteQuote(c.Request.Context(), quoteID, currentUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "글귀가 삭제되었습니다."})
}

// LikeQuote godoc
// @Summary      글귀 좋아요
// @Description  글귀에 좋아요를 누릅니다
// @Tags         quotes
// @Produce      json
// @Param        quoteId path int true "글귀 ID"
// @Success      200 {object} response.SuccessResponse{data=dto.LikeResponse} "좋아요 성공"
// @Failure      404 {object} response.ErrorResponse "글귀를 찾을 수 없음"
// @Security     BearerAuth
// @Router       /quotes/{quoteId}/like [post]
func (h *QuoteHandler) LikeQuote(c *gin.Context) {
	quoteID, ok := parseUintParam(c, "quoteId")
	if !ok {
		return
	}

	result, err := h.quoteService.LikeQuote(c.Request.Context(), quoteID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// UnlikeQuote godoc
// @Summary      글귀 좋아요 취소
// @Description  글귀 좋아요를 취소합니다
// @Tags         quotes
// @Produce      json
// @Param        quoteId path int true "글귀 ID"
// @Success      200 {object} response.SuccessResponse{data=dto.LikeResponse} "좋아요 취소 성공"
// @Failure      404 {object} response.ErrorResponse "글귀를 찾을 수 없음"
// @Security     BearerAuth
// @Router       /quotes/{quoteId}/like [delete]
func (h *QuoteHandler) UnlikeQuote(c *gin.Context) {
	quoteID, ok := parseUintParam(c, "quoteId")
	if !ok {
		return
	}

	result, err := h.quoteService.UnlikeQuote(c.Request.Context(), quoteID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
