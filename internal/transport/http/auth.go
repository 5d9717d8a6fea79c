package http

import (
	"log/slog"
	"net/http"

	"yougallery/internal/middleware"
	"yougallery/internal/transport/http/dto/request"
	"yougallery/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// Register godoc
// @Summary Регистрация нового пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RegisterRequest true "Данные для регистрации"
// @Success 200 {object} models.User
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса или email занят"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/auth/register [post]
func (r *Routers) Register(c echo.Context) error {
	const op = "http.routers.Register"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.RegisterRequest
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	user, err := r.AuthService.Register(c.Request().Context(), req.Email, req.Name, req.Password, req.Phone)
	if err != nil {
		return r.fail(c, log, err)
	}

	log.Info("user registered", slog.Int64("user_id", user.ID))

	return c.JSON(http.StatusOK, user)
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Вход по email и паролю. Возвращает bearer-токен.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Данные для входа"
// @Success 200 {object} models.Token
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/auth/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.InvalidRequest(""))
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeValidation, "Email and password are required"))
	}

	token, err := r.AuthService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, token)
}

// Me godoc
// @Summary Текущий пользователь
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/auth/me [get]
func (r *Routers) Me(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, user)
}
