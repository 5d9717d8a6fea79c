package http

import (
	"net/http"

	"yougallery/internal/domain/models"
	"yougallery/internal/middleware"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	SessionName = "yougallery"

	unlockedKey   = "unlocked"
	maxUnlocked   = 50
	sessionMaxAge = 24 * 60 * 60
)

// viewer собирает посетителя публичных эндпоинтов: пользователь из токена,
// session_id из query и галереи, открытые через check-password.
func viewer(c echo.Context) models.Viewer {
	v := models.Viewer{
		SessionID:         c.QueryParam("session_id"),
		UnlockedGalleries: unlockedGalleries(c),
	}
	if user, ok := middleware.CurrentUser(c); ok {
		v.UserID = user.ID
	}
	return v
}

func unlockedGalleries(c echo.Context) []int64 {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return nil
	}
	ids, _ := sess.Values[unlockedKey].([]int64)
	return ids
}

// grantAccess запоминает в подписанной cookie, что пароль галереи введён верно.
func grantAccess(c echo.Context, galleryID int64) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}

	ids, _ := sess.Values[unlockedKey].([]int64)
	for _, id := range ids {
		if id == galleryID {
			return nil
		}
	}

	ids = append(ids, galleryID)
	if len(ids) > maxUnlocked {
		ids = ids[len(ids)-maxUnlocked:]
	}
	sess.Values[unlockedKey] = ids
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return sess.Save(c.Request(), c.Response())
}
