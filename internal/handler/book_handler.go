package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"book-talk-api/internal/response"
	"book-talk-api/internal/service"
)

type BookHandler struct {
	bookService service.BookService
}

func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{
		bookService: bookService,
	}
}

// SearchBooks godoc
// @Summary      도서 검색
// @Description  외부 도서 API에서 키워드로 도서를 검색합니다
// @Tags         books
// @Produce      json
// @Param        query query string true "검색 키워드"
// @Param        page query int false "페이지 (기본 1)"
// @Param        limit query int false "페이지 크기 (기본 10)"
// @Success      200 {object} response.SuccessResponse{data=dto.BookSearchResponse} "도서 검색 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      502 {object} response.ErrorResponse "외부 API 오류"
// @Router       /books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	query := c.Query("query")
	page, limit := parsePageQuery(c)

	result, err := h.bookService.Search(c.Request.Context(), query, page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// ListBestsellers godoc
// @Summary      베스트셀러 목록 조회
// @Description  외부 도서 API의 베스트셀러 목록을 조회합니다
// @Tags         books
// @Produce      json
// @Param        page query int false "페이지 (기본 1)"
// @Param        limit query int false "페이지 크기 (기본 10)"
// @Success      200 {object} response.SuccessResponse{data=dto.BookSearchResponse} "베스트셀러 조회 성공"
// @Failure      502 {object} response.ErrorResponse "외부 API 오류"
// @Router       /books/bestsellers [get]
func (h *BookHandler) ListBestsellers(c *gin.Context) {
	page, limit := parsePageQuery(c)

	result, err := h.bookService.Bestsellers(c.Request.Context(), page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetBookDetail godoc
// @Summary      도서 상세 조회
// @Description  알라딘 상품 ID로 도서 상세를 조회합니다. 처음 조회하는 도서는 외부 API에서 가져와 저장합니다
// @Tags         books
// @Produce      json
// @Param        bookId path string true "알라딘 상품 ID"
// @Success      200 {object} response.SuccessResponse{data=dto.BookDetailResponse} "도서 상세 조회 성공"
// @Failure      404 {object} response.ErrorResponse "도서를 찾을 수 없음"
// @Failure      502 {object} response.ErrorResponse "외부 API 오류"
// @Router       /books/{bookId} [get]
func (h *BookHandler) GetBookDetail(c *gin.Context) {
	itemID := c.Param("bookId")
	if itemID == "" {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "잘못된 도서 ID입니다.")
		return
	}

	book, err := h.bookService.GetDetail(c.Request.Context(), itemID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, book)
}

// ListGenres godoc
// @Summary      장르 목록 조회
// @Description  등록된 모든 장르를 조회합니다
// @Tags         books
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.GenreResponse} "장르 목록 조회 성공"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /books/genres [get]
func (h *BookHandler) ListGenres(c *gin.Context) {
	genres, err := h.bookService.ListGenres(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, genres)
}
