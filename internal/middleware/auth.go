package middleware

import (
	"context"
	"net/http"

	"yougallery/internal/domain/models"
	"yougallery/internal/transport/http/dto/response"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// UserContextKey ключ, под которым в echo.Context лежит models.User.
const UserContextKey = "user"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

// RequireAuth пропускает только запросы с валидным bearer-токеном.
func RequireAuth(authn Authenticator) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:     UserContextKey,
		ParseTokenFunc: parseToken(authn),
		ErrorHandler: func(c echo.Context, err error) error {
			msg, ok := models.PublicMessage(err)
			if !ok {
				msg = "Could not validate credentials"
			}
			c.Response().Header().Set("WWW-Authenticate", "Bearer")
			return c.JSON(http.StatusUnauthorized, response.Error(response.CodeUnauthorized, msg))
		},
	})
}

// OptionalAuth кладёт пользователя в контекст, если токен валиден.
// Отсутствующий или плохой токен означает анонимного посетителя.
func OptionalAuth(authn Authenticator) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:             UserContextKey,
		ParseTokenFunc:         parseToken(authn),
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})
}

// RequireAdmin ставится после RequireAuth, пропускает только администраторов.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok {
			c.Response().Header().Set("WWW-Authenticate", "Bearer")
			return c.JSON(http.StatusUnauthorized, response.Error(response.CodeUnauthorized, "Not authenticated"))
		}

		if !user.IsAdmin {
			return c.JSON(http.StatusForbidden, response.Error(response.CodeForbidden, "Admin access required"))
		}

		return next(c)
	}
}

// CurrentUser пользователь, установленный RequireAuth или OptionalAuth.
func CurrentUser(c echo.Context) (models.User, bool) {
	user, ok := c.Get(UserContextKey).(models.User)
	return user, ok
}

func parseToken(authn Authenticator) func(c echo.Context, auth string) (interface{}, error) {
	return func(c echo.Context, auth string) (interface{}, error) {
		user, err := authn.Authenticate(c.Request().Context(), auth)
		if err != nil {
			return nil, err
		}
		return user, nil
	}
}
