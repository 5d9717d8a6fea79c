package http

import (
	"io"
	"log/slog"
	"mime"
	"net/http"

	"yougallery/internal/domain/models"
	"yougallery/internal/lib/logger/sl"
	"yougallery/internal/transport/http/dto/request"
	"yougallery/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

const uploadField = "files"

// UploadPhotos godoc
// @Summary Загрузка фотографий в сцену
// @Description Каждый файл обрабатывается отдельно. 207 при частичном успехе.
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID сцены"
// @Param files formData file true "Изображения"
// @Success 200 {object} models.UploadResult
// @Success 207 {object} models.UploadResult
// @Failure 400 {object} models.UploadResult
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/galleries/scenes/{id}/photos/upload [post]
func (r *Routers) UploadPhotos(c echo.Context) error {
	const op = "http.routers.UploadPhotos"

	log := r.log.With(
		slog.String("op", op),
	)

	sceneID, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	form, err := c.MultipartForm()
	if err != nil {
		log.Warn("failed to parse multipart form", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.InvalidRequest("Expected multipart form with files"))
	}

	headers := form.File[uploadField]
	uploads := make([]models.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			log.Error("failed to open uploaded file", slog.String("filename", fh.Filename), sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.Internal())
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			log.Error("failed to read uploaded file", slog.String("filename", fh.Filename), sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.Internal())
		}

		uploads = append(uploads, models.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Data:        data,
		})
	}

	result, err := r.PhotoService.UploadPhotos(c.Request().Context(), sceneID, ownerID(c), uploads)
	if err != nil {
		return r.fail(c, log, err)
	}

	status := uploadStatus(result)
	log.Info("upload finished",
		slog.Int("uploaded", len(result.Uploaded)),
		slog.Int("failed", len(result.Failed)),
		slog.Int("status", status),
	)

	return c.JSON(status, result)
}

func uploadStatus(result models.UploadResult) int {
	switch {
	case len(result.Failed) == 0:
		return http.StatusOK
	case len(result.Uploaded) > 0:
		return http.StatusMultiStatus
	}

	for _, f := range result.Failed {
		if f.Internal {
			return http.StatusInternalServerError
		}
	}

	return http.StatusBadRequest
}

// ViewPhoto godoc
// @Summary Файл фотографии по ID
// @Tags photos
// @Produce octet-stream
// @Param id path int true "ID фото"
// @Success 200 {file} binary
// @Failure 404 {object} response.ErrorResponse
// @Router /api/photos/{id}/view [get]
func (r *Routers) ViewPhoto(c echo.Context) error {
	const op = "http.routers.ViewPhoto"

	log := r.log.With(
		slog.String("op", op),
	)

	photoID, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	file, err := r.PhotoService.ViewByID(c.Request().Context(), photoID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return sendPhoto(c, file)
}

// ViewPhotoByKey godoc
// @Summary Файл фотографии по ключу хранилища
// @Tags photos
// @Produce octet-stream
// @Param filename path string true "Ключ в хранилище"
// @Success 200 {file} binary
// @Failure 404 {object} response.ErrorResponse
// @Router /api/photos/view/{filename} [get]
func (r *Routers) ViewPhotoByKey(c echo.Context) error {
	const op = "http.routers.ViewPhotoByKey"

	log := r.log.With(
		slog.String("op", op),
	)

	file, err := r.PhotoService.ViewByKey(c.Request().Context(), c.Param("filename"))
	if err != nil {
		return r.fail(c, log, err)
	}

	return sendPhoto(c, file)
}

func sendPhoto(c echo.Context, file models.PhotoFile) error {
	h := c.Response().Header()
	h.Set(echo.HeaderContentDisposition, mime.FormatMediaType("inline", map[string]string{"filename": file.Filename}))
	h.Set("Cache-Control", "public, max-age=3600")

	return c.Blob(http.StatusOK, file.ContentType, file.Data)
}

// DeletePhoto godoc
// @Summary Удаление фотографии
// @Tags photos
// @Produce json
// @Param id path int true "ID фото"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/photos/{id} [delete]
func (r *Routers) DeletePhoto(c echo.Context) error {
	const op = "http.routers.DeletePhoto"

	log := r.log.With(
		slog.String("op", op),
	)

	photoID, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	if err := r.PhotoService.DeletePhoto(c.Request().Context(), photoID, ownerID(c)); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, message("Photo deleted successfully"))
}

// SetCover godoc
// @Summary Сделать фото обложкой галереи
// @Tags photos
// @Produce json
// @Param id path int true "ID фото"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/photos/{id}/set-cover [put]
func (r *Routers) SetCover(c echo.Context) error {
	const op = "http.routers.SetCover"

	log := r.log.With(
		slog.String("op", op),
	)

	photoID, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}

	if err := r.PhotoService.SetCover(c.Request().Context(), photoID, ownerID(c)); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, message("Photo set as gallery cover successfully"))
}

// ToggleFavorite godoc
// @Summary Переключить избранное
// @Description Для анонимов нужен session_id в теле. Пользователь из токена имеет приоритет.
// @Tags favorites
// @Accept json
// @Produce json
// @Param request body request.FavoriteRequest true "Фото и сессия"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/photos/favorites [post]
func (r *Routers) ToggleFavorite(c echo.Context) error {
	const op = "http.routers.ToggleFavorite"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.FavoriteRequest
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	v := viewer(c)
	identity := models.ResolveIdentity(v.UserID, req.SessionID)

	isFavorite, err := r.FavoriteService.ToggleFavorite(c.Request().Context(), req.PhotoID, identity)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"is_favorite": isFavorite})
}

// ListFavorites godoc
// @Summary Избранные фото посетителя
// @Description Без пользователя и session_id возвращает пустой список.
// @Tags favorites
// @Produce json
// @Param session_id query string false "Анонимная сессия"
// @Success 200 {array} models.PhotoView
// @Router /api/photos/favorites [get]
func (r *Routers) ListFavorites(c echo.Context) error {
	const op = "http.routers.ListFavorites"

	log := r.log.With(
		slog.String("op", op),
	)

	photos, err := r.FavoriteService.ListFavorites(c.Request().Context(), viewer(c).Identity())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, photos)
}
