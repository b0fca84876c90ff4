package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

// FAQHandler answers free-text questions against the FAQ corpus.
type FAQHandler struct {
	faq ports.FAQService
}

func NewFAQHandler(faq ports.FAQService) *FAQHandler {
	return &FAQHandler{faq: faq}
}

type askRequest struct {
	Question string `json:"question" validate:"required"`
}

// Ask matches the question against the stored FAQ entries and returns
// the best answer, or the fallback message when nothing scores high
// enough.
//
// @Summary      Ask the FAQ assistant
// @Tags         faq
// @Accept       json
// @Produce      json
// @Param        body  body      askRequest  true  "Free-text question"
// @Success      200   {object}  dataEnvelope[ports.FAQAnswer]
// @Failure      400   {object}  map[string]string
// @Router       /faq/ask [post]
func (h *FAQHandler) Ask(c echo.Context) error {
	var req askRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	answer, err := h.faq.Ask(c.Request().Context(), req.Question)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataEnvelope[*ports.FAQAnswer]{Data: answer})
}
