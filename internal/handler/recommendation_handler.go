package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"book-talk-api/internal/response"
	"book-talk-api/internal/service"
)

type RecommendationHandler struct {
	recommendationService service.RecommendationService
}

func NewRecommendationHandler(recommendationService service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
	}
}

// GetRecommendations godoc
// @Summary      AI 도서 추천
// @Description  선호 장르와 최근 활동(북마크, 인용구, 토론)을 바탕으로 AI가 책을 추천합니다
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=dto.RecommendationResponse} "추천 목록 조회 성공"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Failure      502 {object} response.ErrorResponse "AI 추천 생성 실패"
// @Router       /books/recommendations [get]
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID := currentUserID(c)

	result, err := h.recommendationService.GetRecommendations(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
