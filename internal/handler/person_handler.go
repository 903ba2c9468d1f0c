package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/kinderbook/internal/model"
	"github.com/stemsi/kinderbook/internal/response"
	"github.com/stemsi/kinderbook/internal/service"
)

type PersonHandler struct {
	bookService *service.BookService
}

func NewPersonHandler(bookService *service.BookService) *PersonHandler {
	return &PersonHandler{bookService: bookService}
}

// List godoc
// GET /api/v1/persons
func (h *PersonHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"persons": h.bookService.Persons()})
}

// Scores godoc
// GET /api/v1/persons/:id/scores
func (h *PersonHandler) Scores(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	person, scores, err := h.bookService.PersonScores(model.PersonID(id))
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"person": person, "scores": scores})
}
