package http

import (
	"log/slog"
	"net/http"

	"yougallery/internal/domain/models"
	"yougallery/internal/transport/http/dto/request"

	"github.com/labstack/echo/v4"
)

// ListScenes godoc
// @Summary Сцены галереи владельца
// @Tags scenes
// @Produce json
// @Param id path int true "ID галереи"
// @Success 200 {array} models.Scene
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/galleries/{id}/scenes [get]
func (r *Routers) ListScenes(c echo.Context) error {
	const op = "http.routers.ListScenes"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	scenes, err := r.SceneService.ListScenes(c.Request().Context(), galleryID, ownerID(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, scenes)
}

// PublicScenes godoc
// @Summary Сцены публичной галереи
// @Tags scenes
// @Produce json
// @Param id path int true "ID галереи"
// @Success 200 {array} models.Scene
// @Failure 404 {object} response.ErrorResponse
// @Router /api/galleries/{id}/scenes/public [get]
func (r *Routers) PublicScenes(c echo.Context) error {
	const op = "http.routers.PublicScenes"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	scenes, err := r.SceneService.PublicScenes(c.Request().Context(), galleryID, viewer(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, scenes)
}

// CreateScene godoc
// @Summary Создание сцены
// @Description Без order_index сцена встаёт в конец.
// @Tags scenes
// @Accept json
// @Produce json
// @Param id path int true "ID галереи"
// @Param request body request.CreateSceneRequest true "Сцена"
// @Success 200 {object} models.Scene
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/galleries/{id}/scenes [post]
func (r *Routers) CreateScene(c echo.Context) error {
	const op = "http.routers.CreateScene"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	var req request.CreateSceneRequest
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	scene, err := r.SceneService.CreateScene(c.Request().Context(), galleryID, ownerID(c), req.Name, req.OrderIndex)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, scene)
}

// SceneDetail godoc
// @Summary Сцена с фотографиями
// @Tags scenes
// @Produce json
// @Param id path int true "ID сцены"
// @Success 200 {object} models.SceneDetail
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/galleries/scenes/{id} [get]
func (r *Routers) SceneDetail(c echo.Context) error {
	const op = "http.routers.SceneDetail"

	log := r.log.With(
		slog.String("op", op),
	)

	sceneID, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	detail, err := r.SceneService.SceneDetail(c.Request().Context(), sceneID, ownerID(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, detail)
}

// UpdateScene godoc
// @Summary Обновление сцены
// @Tags scenes
// @Accept json
// @Produce json
// @Param id path int true "ID сцены"
// @Param request body request.UpdateSceneRequest true "Изменения"
// @Success 200 {object} models.Scene
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/galleries/scenes/{id} [put]
func (r *Routers) UpdateScene(c echo.Context) error {
	const op = "http.routers.UpdateScene"

	log := r.log.With(
		slog.String("op", op),
	)

	sceneID, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	var req request.UpdateSceneRequest
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	scene, err := r.SceneService.UpdateScene(c.Request().Context(), sceneID, ownerID(c), models.ScenePatch{
		Name:       req.Name,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, scene)
}

// DeleteScene godoc
// @Summary Удаление сцены
// @Tags scenes
// @Produce json
// @Param id path int true "ID сцены"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/galleries/scenes/{id} [delete]
func (r *Routers) DeleteScene(c echo.Context) error {
	const op = "http.routers.DeleteScene"

	log := r.log.With(
		slog.String("op", op),
	)

	sceneID, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	if err := r.SceneService.DeleteScene(c.Request().Context(), sceneID, ownerID(c)); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, message("Scene deleted successfully"))
}

// ScenePhotos godoc
// @Summary Фото сцены владельца
// @Tags scenes
// @Produce json
// @Param id path int true "ID сцены"
// @Success 200 {array} models.PhotoView
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/galleries/scenes/{id}/photos [get]
func (r *Routers) ScenePhotos(c echo.Context) error {
	const op = "http.routers.ScenePhotos"

	log := r.log.With(
		slog.String("op", op),
	)

	sceneID, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	photos, err := r.SceneService.ScenePhotos(c.Request().Context(), sceneID, ownerID(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, photos)
}

// PublicScenePhotos godoc
// @Summary Фото сцены публичной галереи
// @Tags scenes
// @Produce json
// @Param id path int true "ID сцены"
// @Param session_id query string false "Анонимная сессия"
// @Success 200 {array} models.PhotoView
// @Failure 404 {object} response.ErrorResponse
// @Router /api/galleries/scenes/{id}/photos/public [get]
func (r *Routers) PublicScenePhotos(c echo.Context) error {
	const op = "http.routers.PublicScenePhotos"

	log := r.log.With(
		slog.String("op", op),
	)

	sceneID, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	photos, err := r.SceneService.PublicScenePhotos(c.Request().Context(), sceneID, viewer(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, photos)
}
