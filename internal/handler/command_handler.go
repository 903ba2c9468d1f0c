package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/kinderbook/internal/command"
	"github.com/stemsi/kinderbook/internal/model"
	"github.com/stemsi/kinderbook/internal/response"
	"github.com/stemsi/kinderbook/internal/service"
	"github.com/stemsi/kinderbook/internal/validator"
)

type CommandHandler struct {
	bookService *service.BookService
	log         zerolog.Logger
}

func NewCommandHandler(bookService *service.BookService, log zerolog.Logger) *CommandHandler {
	return &CommandHandler{
		bookService: bookService,
		log:         log.With().Str("component", "command_handler").Logger(),
	}
}

// Execute godoc
// POST /api/v1/commands
func (h *CommandHandler) Execute(c *gin.Context) {
	var req model.CommandRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res, err := h.bookService.Execute(c.Request.Context(), req.Input)
	if err != nil {
		if errors.Is(err, service.ErrSaveFailed) {
			h.log.Error().Err(err).Str("input", req.Input).Msg("Command applied but not saved")
		}
		response.FailWithError(c, err)
		return
	}

	if res.Outcomes == nil {
		res.Outcomes = []command.Outcome{}
	}
	response.Success(c, http.StatusOK, res)
}
