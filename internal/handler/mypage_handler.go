package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"book-talk-api/internal/dto"
	"book-talk-api/internal/response"
	"book-talk-api/internal/service"
)

type MyPageHandler struct {
	myPageService service.MyPageService
}

func NewMyPageHandler(myPageService service.MyPageService) *MyPageHandler {
	return &MyPageHandler{
		myPageService: myPageService,
	}
}

// GetMyPage godoc
// @Summary      마이페이지 조회
// @Description  프로필, 북마크 미리보기, 활동 수를 한 번에 조회합니다
// @Tags         mypage
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.MyPageResponse} "마이페이지 조회 성공"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Security     BearerAuth
// @Router       /mypage [get]
func (h *MyPageHandler) GetMyPage(c *gin.Context) {
	result, err := h.myPageService.GetMyPage(c.Request.Context(), currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetProfile godoc
// @Summary      내 프로필 조회
// @Description  내 계정 정보와 경험치, 선호 장르를 조회합니다
// @Tags         users
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.ProfileResponse} "프로필 조회 성공"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *MyPageHandler) GetProfile(c *gin.Context) {
	profile, err := h.myPageService.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary      내 프로필 수정
// @Description  닉네임과 프로필 이미지를 수정합니다
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body dto.UpdateProfileRequest true "프로필 수정 요청"
// @Success      200 {object} response.SuccessResponse "프로필 수정 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      409 {object} response.ErrorResponse "이미 사용 중인 닉네임"
// @Security     BearerAuth
// @Router       /users/me [put]
func (h *MyPageHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.myPageService.UpdateProfile(c.Request.Context(), currentUserID(c), &req); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "프로필이 수정되었습니다."})
}

// SelectGenres godoc
// @Summary      선호 장르 선택
// @Description  선호 장르 목록을 교체합니다
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body dto.SelectGenresRequest true "선호 장르 선택 요청"
// @Success      200 {object} response.SuccessResponse "장르 선택 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Security     BearerAuth
// @Router       /users/me/genres [put]
func (h *MyPageHandler) SelectGenres(c *gin.Context) {
	var req dto.SelectGenresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.myPageService.SelectGenres(c.Request.Context(), currentUserID(c), &req); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "선호 장르가 저장되었습니다."})
}

// ListMyQuotes godoc
// @Summary      내 글귀 목록 조회
// @Description  내가 작성한 글귀를 최신순으로 조회합니다
// @Tags         mypage
// @Produce      json
// @Param        page query int false "페이지 (기본 1)"
// @Param        limit query int false "페이지 크기 (기본 10)"
// @Success      200 {object} response.SuccessResponse{data=dto.QuoteListResponse} "내 글귀 조회 성공"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Security     BearerAuth
// @Router       /users/me/quotes [get]
func (h *MyPageHandler) ListMyQuotes(c *gin.Context) {
	page, limit := parsePageQuery(c)

	quotes, err := h.myPageService.ListMyQuotes(c.Request.Context(), currentUserID(c), page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, quotes)
}

// ListMyDiscussions godoc
// @Summary      내 토론 목록 조회
// @Description  내가 개설한 토론을 최신순으로 조회합니다
// @Tags         mypage
// @Produce      json
// @Param        page query int false "페이지 (기본 1)"
// @Param        limit query int false "페이지 크기 (기본 10)"
// @Success      200 {object} response.SuccessResponse{data=dto.DiscussionListResponse} "내 토론 조회 성공"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Security     BearerAuth
// @Router       /users/me/discussions [get]
func (h *MyPageHandler) ListMyDiscussions(c *gin.Context) {
	page, limit := parsePageQuery(c)

	discussions, err := h.myPageService.ListMyDiscussions(c.Request.Context(), currentUserID(c), page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, discussions)
}
