package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"yougallery/internal/domain/models"
	"yougallery/internal/lib/logger/sl"
	"yougallery/internal/middleware"
	"yougallery/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

type AuthService interface {
	Register(ctx context.Context, email, name, password string, phone *string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.Token, error)
}

type GalleryService interface {
	CreateGallery(ctx context.Context, ownerID int64, name string, shootingDate *time.Time, password string) (models.Gallery, error)
	ListGalleries(ctx context.Context, ownerID int64, skip, limit uint64) ([]models.Gallery, error)
	GalleryDetail(ctx context.Context, galleryID, ownerID int64) (models.GalleryDetail, error)
	PublicGalleryDetail(ctx context.Context, galleryID int64, viewer models.Viewer) (models.GalleryDetail, error)
	UpdateGallery(ctx context.Context, galleryID, ownerID int64, patch models.GalleryPatch) (models.Gallery, error)
	DeleteGallery(ctx context.Context, galleryID, ownerID int64) error
	CheckPassword(ctx context.Context, galleryID int64, password string) error
	GalleryFavorites(ctx context.Context, galleryID, ownerID int64) ([]models.PhotoView, error)
}

type SceneService interface {
	ListScenes(ctx context.Context, galleryID, ownerID int64) ([]models.Scene, error)
	PublicScenes(ctx context.Context, galleryID int64, viewer models.Viewer) ([]models.Scene, error)
	CreateScene(ctx context.Context, galleryID, ownerID int64, name string, orderIndex *int) (models.Scene, error)
	SceneDetail(ctx context.Context, sceneID, ownerID int64) (models.SceneDetail, error)
	UpdateScene(ctx context.Context, sceneID, ownerID int64, patch models.ScenePatch) (models.Scene, error)
	DeleteScene(ctx context.Context, sceneID, ownerID int64) error
	ScenePhotos(ctx context.Context, sceneID, ownerID int64) ([]models.PhotoView, error)
	PublicScenePhotos(ctx context.Context, sceneID int64, viewer models.Viewer) ([]models.PhotoView, error)
}

type PhotoService interface {
	UploadPhotos(ctx context.Context, sceneID, ownerID int64, files []models.Upload) (models.UploadResult, error)
	ViewByID(ctx context.Context, photoID int64) (models.PhotoFile, error)
	ViewByKey(ctx context.Context, key string) (models.PhotoFile, error)
	DeletePhoto(ctx context.Context, photoID, ownerID int64) error
	SetCover(ctx context.Context, photoID, ownerID int64) error
}

type FavoriteService interface {
	ToggleFavorite(ctx context.Context, photoID int64, identity models.Identity) (bool, error)
	ListFavorites(ctx context.Context, identity models.Identity) ([]models.PhotoView, error)
}

type UserService interface {
	UpdateProfile(ctx context.Context, userID int64, patch models.UserPatch) (models.User, error)
	UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, userID int64) error
}

type ContactService interface {
	CreateMessage(ctx context.Context, name, email, message string) (models.ContactMessage, error)
	ListMessages(ctx context.Context, skip, limit uint64) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id int64) (models.ContactMessage, error)
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Services набор зависимостей роутеров.
type Services struct {
	Auth     AuthService
	Gallery  GalleryService
	Scene    SceneService
	Photo    PhotoService
	Favorite FavoriteService
	User     UserService
	Contact  ContactService
	Health   HealthChecker
}

type Routers struct {
	log             *slog.Logger
	AuthService     AuthService
	GalleryService  GalleryService
	SceneService    SceneService
	PhotoService    PhotoService
	FavoriteService FavoriteService
	UserService     UserService
	ContactService  ContactService
	health          HealthChecker
}

func NewRouter(log *slog.Logger, svc Services) *Routers {
	return &Routers{
		log:             log,
		AuthService:     svc.Auth,
		GalleryService:  svc.Gallery,
		SceneService:    svc.Scene,
		PhotoService:    svc.Photo,
		FavoriteService: svc.Favorite,
		UserService:     svc.User,
		ContactService:  svc.Contact,
		health:          svc.Health,
	}
}

// Mount регистрирует маршруты API в группе api.
// requireAuth отклоняет запрос без токена, optionalAuth только определяет пользователя.
func (r *Routers) Mount(api *echo.Group, requireAuth, optionalAuth echo.MiddlewareFunc) {
	api.GET("/health", r.Health)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.Register)
		authGroup.POST("/login", r.Login)
		authGroup.GET("/me", r.Me, requireAuth)
	}

	galleries := api.Group("/galleries")
	{
		galleries.POST("", r.CreateGallery, requireAuth)
		galleries.GET("", r.ListGalleries, requireAuth)

		galleries.GET("/scenes/:id", r.SceneDetail, requireAuth)
		galleries.PUT("/scenes/:id", r.UpdateScene, requireAuth)
		galleries.DELETE("/scenes/:id", r.DeleteScene, requireAuth)
		galleries.GET("/scenes/:id/photos", r.ScenePhotos, requireAuth)
		galleries.GET("/scenes/:id/photos/public", r.PublicScenePhotos, optionalAuth)
		galleries.POST("/scenes/:id/photos/upload", r.UploadPhotos, requireAuth)

		galleries.GET("/:id", r.GalleryDetail, requireAuth)
		galleries.GET("/:id/public", r.PublicGallery, optionalAuth)
		galleries.PUT("/:id", r.UpdateGallery, requireAuth)
		galleries.DELETE("/:id", r.DeleteGallery, requireAuth)
		galleries.POST("/:id/check-password", r.CheckPassword)
		galleries.GET("/:id/favorites", r.GalleryFavorites, requireAuth)

		galleries.GET("/:id/scenes", r.ListScenes, requireAuth)
		galleries.POST("/:id/scenes", r.CreateScene, requireAuth)
		galleries.GET("/:id/scenes/public", r.PublicScenes, optionalAuth)
	}

	photos := api.Group("/photos")
	{
		photos.POST("/favorites", r.ToggleFavorite, optionalAuth)
		photos.GET("/favorites", r.ListFavorites, optionalAuth)
		photos.GET("/view/:filename", r.ViewPhotoByKey)
		photos.GET("/:id/view", r.ViewPhoto)
		photos.DELETE("/:id", r.DeletePhoto, requireAuth)
		photos.PUT("/:id/set-cover", r.SetCover, requireAuth)
	}

	users := api.Group("/users", requireAuth)
	{
		users.PUT("/profile", r.UpdateProfile)
		users.PUT("/password", r.UpdatePassword)
		users.DELETE("/account", r.DeleteAccount)
	}

	contact := api.Group("/contact")
	{
		contact.POST("", r.CreateContactMessage)
		contact.GET("", r.ListContactMessages, requireAuth, middleware.RequireAdmin)
		contact.PUT("/:id/read", r.MarkContactMessageRead, requireAuth, middleware.RequireAdmin)
	}
}

// Health godoc
// @Summary Проверка состояния сервиса
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/health [get]
func (r *Routers) Health(c echo.Context) error {
	if r.health != nil {
		if err := r.health.HealthCheck(c.Request().Context()); err != nil {
			r.log.Error("health check failed", sl.Err(err))
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status":  "unhealthy",
				"message": "Database is unavailable",
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "YouGallery API is running",
	})
}

// fail переводит ошибку сервиса в HTTP-ответ. Детали 500 только в лог.
func (r *Routers) fail(c echo.Context, log *slog.Logger, err error) error {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", sl.Err(err))
		return c.JSON(status, response.Internal())
	}

	msg, ok := models.PublicMessage(err)
	if !ok {
		msg = http.StatusText(status)
	}

	if status == http.StatusUnauthorized && code == response.CodeUnauthorized {
		c.Response().Header().Set("WWW-Authenticate", "Bearer")
	}

	log.Info("request rejected", slog.Int("status", status), slog.String("reason", msg))

	return c.JSON(status, response.Error(code, msg))
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrPasswordRequired):
		return http.StatusUnauthorized, response.CodePasswordRequired
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized, response.CodeUnauthorized
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, response.CodeNotFound
	case errors.Is(err, models.ErrConflict):
		return http.StatusBadRequest, response.CodeConflict
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, response.CodeValidation
	default:
		return http.StatusInternalServerError, response.CodeInternal
	}
}

// bind разбирает тело и прогоняет валидатор. nil означает успех.
func bind(c echo.Context, req interface{}) *response.ErrorResponse {
	if err := c.Bind(req); err != nil {
		resp := response.InvalidRequest("")
		return &resp
	}

	if err := c.Validate(req); err != nil {
		resp := response.Error(response.CodeValidation, err.Error())
		return &resp
	}

	return nil
}

func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func badID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, response.InvalidRequest("Invalid id"))
}

// paging читает skip/limit. Некорректные значения заменяются нулями.
func paging(c echo.Context) (uint64, uint64) {
	skip, _ := strconv.ParseUint(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseUint(c.QueryParam("limit"), 10, 64)
	return skip, limit
}

// ownerID пользователь маршрутов под requireAuth.
func ownerID(c echo.Context) int64 {
	user, _ := middleware.CurrentUser(c)
	return user.ID
}

func message(text string) response.Message {
	return response.Message{Message: text}
}
