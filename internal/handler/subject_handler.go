package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/kinderbook/internal/response"
	"github.com/stemsi/kinderbook/internal/service"
)

type SubjectHandler struct {
	bookService *service.BookService
}

func NewSubjectHandler(bookService *service.BookService) *SubjectHandler {
	return &SubjectHandler{bookService: bookService}
}

// GetAll godoc
// GET /api/v1/subjects
func (h *SubjectHandler) GetAll(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"subjects": h.bookService.Subjects()})
}

// Scores godoc
// GET /api/v1/subjects/:name/scores
func (h *SubjectHandler) Scores(c *gin.Context) {
	name, roster, err := h.bookService.SubjectScores(c.Param("name"))
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subject": name, "scores": roster})
}
