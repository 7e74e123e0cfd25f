package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"book-talk-api/internal/dto"
	"book-talk-api/internal/response"
	"book-talk-api/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup godoc
// @Summary      회원가입
// @Description  이메일, 비밀번호, 닉네임으로 새 계정을 생성합니다
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.SignupRequest true "회원가입 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.SignupResponse} "회원가입 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      409 {object} response.ErrorResponse "이미 가입된 이메일"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, user)
}

// Login godoc
// @Summary      로그인
// @Description  이메일과 비밀번호로 로그인하고 토큰 쌍을 발급받습니다
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "로그인 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.TokenResponse} "로그인 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	tokens, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, tokens)
}

// Refresh godoc
// @Summary      토큰 재발급
// @Description  리프레시 토큰으로 새 토큰 쌍을 발급받습니다. 사용한 리프레시 토큰은 폐기됩니다
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshRequest true "토큰 재발급 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.TokenResponse} "재발급 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      401 {object} response.ErrorResponse "유효하지 않은 토큰"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, tokens)
}

// Logout godoc
// @Summary      로그아웃
// @Description  리프레시 토큰을 폐기합니다
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshRequest true "로그아웃 요청"
// @Success      200 {object} response.SuccessResponse "로그아웃 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "로그아웃되었습니다."})
}

// Withdraw godoc
// @Summary      회원 탈퇴
// @Description  계정의 모든 리프레시 토큰을 폐기하고 탈퇴 처리합니다
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.SuccessResponse "탈퇴 성공"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Security     BearerAuth
// @Router       /auth/withdraw [delete]
func (h *AuthHandler) Withdraw(c *gin.Context) {
	userID := currentUserID(c)

	if err := h.authService.Withdraw(c.Request.Context(), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "탈퇴 처리되었습니다."})
}
