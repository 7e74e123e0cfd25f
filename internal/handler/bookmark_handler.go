package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"book-talk-api/internal/response"
	"book-talk-api/internal/service"
)

type BookmarkHandler struct {
	bookmarkService service.BookmarkService
}

func NewBookmarkHandler(bookmarkService service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkService: bookmarkService,
	}
}

// AddBookmark godoc
// @Summary      도서 북마크 추가
// @Description  도서를 내 서재에 북마크합니다
// @Tags         bookmarks
// @Produce      json
// @Param        bookId path int true "도서 ID"
// @Success      201 {object} response.SuccessResponse "북마크 추가 성공"
// @Failure      404 {object} response.ErrorResponse "도서를 찾을 수 없음"
// @Failure      409 {object} response.ErrorResponse "이미 북마크한 도서"
// @Security     BearerAuth
// @Router       /books/{bookId}/bookmark [post]
func (h *BookmarkHandler) AddBookmark(c *gin.Context) {
	bookID, ok := parseUintParam(c, "bookId")
	if !ok {
		return
	}

	if err := h.bookmarkService.AddBookmark(c.Request.Context(), currentUserID(c), bookID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, gin.H{"message": "북마크에 추가되었습니다."})
}

// RemoveBookmark godoc
// @Summary      도서 북마크 해제
// @Description  내 서재에서 도서 북마크를 해제합니다
// @Tags         bookmarks
// @Produce      json
// @Param        bookId path int true "도서 ID"
// @Success      200 {object} response.SuccessResponse "북마크 해제 성공"
// @Failure      404 {object} response.ErrorResponse "북마크를 찾을 수 없음"
// @Security     BearerAuth
// @Router       /books/{bookId}/bookmark [delete]
func (h *BookmarkHandler) RemoveBookmark(c *gin.Context) {
	bookID, ok := parseUintParam(c, "bookId")
	if !ok {
		return
	}

	if err := h.bookmarkService.RemoveBookmark(c.Request.Context(), currentUserID(c), bookID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "북마크가 해제되었습니다."})
}

// ListBookmarks godoc
// @Summary      내 북마크 목록 조회
// @Description  내가 북마크한 도서를 최신순으로 조회합니다
// @Tags         bookmarks
// @Produce      json
// @Param        page query int false "페이지 (기본 1)"
// @Param        limit query int false "페이지 크기 (기본 10)"
// @Success      200 {object} response.SuccessResponse{data=dto.BookmarkListResponse} "북마크 목록 조회 성공"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Security     BearerAuth
// @Router       /users/me/bookmarks [get]
func (h *BookmarkHandler) ListBookmarks(c *gin.Context) {
	page, limit := parsePageQuery(c)

	bookmarks, err := h.bookmarkService.ListBookmarks(c.Request.Context(), currentUserID(c), page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, bookmarks)
}
