package http

import (
	"log/slog"
	"net/http"

	"yougallery/internal/domain/models"
	"yougallery/internal/lib/logger/sl"
	"yougallery/internal/transport/http/dto/request"

	"github.com/labstack/echo/v4"
)

// CreateGallery godoc
// @Summary Создание галереи
// @Description Создаёт галерею и сцену по умолчанию. Пароль включает защиту.
// @Tags galleries
// @Accept json
// @Produce json
// @Param request body request.CreateGalleryRequest true "Галерея"
// @Success 200 {object} models.Gallery
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/galleries [post]
func (r *Routers) CreateGallery(c echo.Context) error {
	const op = "http.routers.CreateGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.CreateGalleryRequest
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	var password string
	if req.Password != nil {
		password = *req.Password
	}

	gallery, err := r.GalleryService.CreateGallery(c.Request().Context(), ownerID(c), req.Name, req.ShootingDate.Ptr(), password)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, gallery)
}

// ListGalleries godoc
// @Summary Галереи текущего пользователя
// @Tags galleries
// @Produce json
// @Param skip query int false "Смещение"
// @Param limit query int false "Лимит (по умолчанию 100)"
// @Success 200 {array} models.Gallery
// @Security BearerAuth
// @Router /api/galleries [get]
func (r *Routers) ListGalleries(c echo.Context) error {
	const op = "http.routers.ListGalleries"

	log := r.log.With(
		slog.String("op", op),
	)

	skip, limit := paging(c)

	galleries, err := r.GalleryService.ListGalleries(c.Request().Context(), ownerID(c), skip, limit)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, galleries)
}

// GalleryDetail godoc
// @Summary Галерея владельца со сценами и фото
// @Tags galleries
// @Produce json
// @Param id path int true "ID галереи"
// @Success 200 {object} models.GalleryDetail
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/galleries/{id} [get]
func (r *Routers) GalleryDetail(c echo.Context) error {
	const op = "http.routers.GalleryDetail"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	detail, err := r.GalleryService.GalleryDetail(c.Request().Context(), id, ownerID(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, detail)
}

// PublicGallery godoc
// @Summary Публичный просмотр галереи
// @Description Увеличивает счётчик просмотров. session_id нужен для отметок избранного у анонимов.
// @Tags galleries
// @Produce json
// @Param id path int true "ID галереи"
// @Param session_id query string false "Анонимная сессия"
// @Success 200 {object} models.GalleryDetail
// @Failure 401 {object} response.ErrorResponse "Требуется пароль"
// @Failure 404 {object} response.ErrorResponse
// @Router /api/galleries/{id}/public [get]
func (r *Routers) PublicGallery(c echo.Context) error {
	const op = "http.routers.PublicGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	detail, err := r.GalleryService.PublicGalleryDetail(c.Request().Context(), id, viewer(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, detail)
}

// UpdateGallery godoc
// @Summary Обновление галереи
// @Description Частичное обновление. password=null или "" снимает защиту, is_public всегда true.
// @Tags galleries
// @Accept json
// @Produce json
// @Param id path int true "ID галереи"
// @Param request body request.UpdateGalleryRequest true "Изменения"
// @Success 200 {object} models.Gallery
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/galleries/{id} [put]
func (r *Routers) UpdateGallery(c echo.Context) error {
	const op = "http.routers.UpdateGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	var req request.UpdateGalleryRequest
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	patch := models.GalleryPatch{
		Name:                req.Name,
		ShootingDate:        req.ShootingDate.Ptr(),
		IsPasswordProtected: req.IsPasswordProtected,
		SetPassword:         req.Password.Set,
	}
	if req.Password.Value != nil {
		patch.Password = *req.Password.Value
	}

	gallery, err := r.GalleryService.UpdateGallery(c.Request().Context(), id, ownerID(c), patch)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, gallery)
}

// DeleteGallery godoc
// @Summary Удаление галереи
// @Description Удаляет сцены, фото и их файлы в хранилище.
// @Tags galleries
// @Produce json
// @Param id path int true "ID галереи"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/galleries/{id} [delete]
func (r *Routers) DeleteGallery(c echo.Context) error {
	const op = "http.routers.DeleteGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	if err := r.GalleryService.DeleteGallery(c.Request().Context(), id, ownerID(c)); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, message("Gallery deleted successfully"))
}

// CheckPassword godoc
// @Summary Проверка пароля галереи
// @Description При успехе галерея запоминается в cookie сессии.
// @Tags galleries
// @Accept json
// @Produce json
// @Param id path int true "ID галереи"
// @Param request body request.CheckPasswordRequest true "Пароль"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} response.ErrorResponse "Неверный пароль"
// @Failure 404 {object} response.ErrorResponse "Галерея не найдена или не защищена"
// @Router /api/galleries/{id}/check-password [post]
func (r *Routers) CheckPassword(c echo.Context) error {
	const op = "http.routers.CheckPassword"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	var req request.CheckPasswordRequest
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	if err := r.GalleryService.CheckPassword(c.Request().Context(), id, req.Password); err != nil {
		return r.fail(c, log, err)
	}

	if err := grantAccess(c, id); err != nil {
		log.Warn("failed to save gallery grant", sl.Err(err))
	}

	return c.JSON(http.StatusOK, map[string]bool{"access_granted": true})
}

// GalleryFavorites godoc
// @Summary Фото галереи, отмеченные избранными
// @Tags galleries
// @Produce json
// @Param id path int true "ID галереи"
// @Success 200 {array} models.PhotoView
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/galleries/{id}/favorites [get]
func (r *Routers) GalleryFavorites(c echo.Context) error {
	const op = "http.routers.GalleryFavorites"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	photos, err := r.GalleryService.GalleryFavorites(c.Request().Context(), id, ownerID(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, photos)
}
