package http

import (
	"log/slog"
	"net/http"

	"yougallery/internal/transport/http/dto/request"

	"github.com/labstack/echo/v4"
)

// CreateContactMessage godoc
// @Summary Сообщение через форму обратной связи
// @Tags contact
// @Accept json
// @Produce json
// @Param request body request.ContactRequest true "Сообщение"
// @Success 200 {object} models.ContactMessage
// @Failure 400 {object} response.ErrorResponse
// @Router /api/contact [post]
func (r *Routers) CreateContactMessage(c echo.Context) error {
	const op = "http.routers.CreateContactMessage"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.ContactRequest
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	msg, err := r.ContactService.CreateMessage(c.Request().Context(), req.Name, req.Email, req.Message)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, msg)
}

// ListContactMessages godoc
// @Summary Сообщения обратной связи, новые первыми. Только для администраторов
// @Tags contact
// @Produce json
// @Param skip query int false "Смещение"
// @Param limit query int false "Лимит (по умолчанию 100)"
// @Success 200 {array} models.ContactMessage
// @Failure 403 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/contact [get]
func (r *Routers) ListContactMessages(c echo.Context) error {
	const op = "http.routers.ListContactMessages"

	log := r.log.With(
		slog.String("op", op),
	)

	skip, limit := paging(c)

	messages, err := r.ContactService.ListMessages(c.Request().Context(), skip, limit)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, messages)
}

// MarkContactMessageRead godoc
// @Summary Отметить сообщение прочитанным
// @Tags contact
// @Produce json
// @Param id path int true "ID сообщения"
// @Success 200 {object} models.ContactMessage
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/contact/{id}/read [put]
func (r *Routers) MarkContactMessageRead(c echo.Context) error {
	const op = "http.routers.MarkContactMessageRead"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	msg, err := r.ContactService.MarkRead(c.Request().Context(), id)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, msg)
}
