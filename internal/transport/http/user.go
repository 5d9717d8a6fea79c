package http

import (
	"log/slog"
	"net/http"

	"yougallery/internal/domain/models"
	"yougallery/internal/transport/http/dto/request"

	"github.com/labstack/echo/v4"
)

// UpdateProfile godoc
// @Summary Обновление профиля
// @Description phone=null очищает телефон.
// @Tags users
// @Accept json
// @Produce json
// @Param request body request.UpdateProfileRequest true "Изменения"
// @Success 200 {object} models.User
// @Failure 400 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/users/profile [put]
func (r *Routers) UpdateProfile(c echo.Context) error {
	const op = "http.routers.UpdateProfile"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.UpdateProfileRequest
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	user, err := r.UserService.UpdateProfile(c.Request().Context(), ownerID(c), models.UserPatch{
		Name:     req.Name,
		Phone:    req.Phone.Value,
		SetPhone: req.Phone.Set,
	})
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, user)
}

// UpdatePassword godoc
// @Summary Смена пароля
// @Tags users
// @Accept json
// @Produce json
// @Param request body request.UpdatePasswordRequest true "Текущий и новый пароль"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.ErrorResponse "Неверный текущий пароль"
// @Security BearerAuth
// @Router /api/users/password [put]
func (r *Routers) UpdatePassword(c echo.Context) error {
	const op = "http.routers.UpdatePassword"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.UpdatePasswordRequest
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	if err := r.UserService.UpdatePassword(c.Request().Context(), ownerID(c), req.CurrentPassword, req.NewPassword); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, message("Password updated successfully"))
}

// DeleteAccount godoc
// @Summary Удаление аккаунта
// @Description Удаляет пользователя, его галереи и файлы фотографий.
// @Tags users
// @Produce json
// @Success 200 {object} response.Message
// @Security BearerAuth
// @Router /api/users/account [delete]
func (r *Routers) DeleteAccount(c echo.Context) error {
	const op = "http.routers.DeleteAccount"

	log := r.log.With(
		slog.String("op", op),
	)

	if err := r.UserService.DeleteAccount(c.Request().Context(), ownerID(c)); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, message("Account deleted successfully"))
}
