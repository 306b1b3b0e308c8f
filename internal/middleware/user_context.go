package middleware

import (
	"hours-tracker/internal/database"
	"hours-tracker/internal/logger"
	"hours-tracker/internal/models"
	"hours-tracker/internal/validation"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const currentUserKey = "CurrentUser"

// InjectUser достаёт пользователя из сессии; устаревшую сессию (пользователя нет) очищает
func InjectUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uidRaw := sess.Get(SessionUserID); uidRaw != nil {
			uid, ok := uidRaw.(uint)
			if !ok || uid == 0 {
				sess.Clear()
				_ = sess.Save()
				c.Next()
				return
			}

			user, err := database.GetUser(c.Request.Context(), uid)
			if err != nil {
				logger.FromGin(c).Info("dropping stale session", zap.Uint("user_id", uid), zap.Error(err))
				sess.Clear()
				_ = sess.Save()
			} else {
				c.Set(currentUserKey, *user)
				l := logger.FromGin(c).With(zap.Uint("user_id", user.ID))
				c.Set(logger.GinKey, l)
				c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), l))
			}
		}

		c.Next()
	}
}

func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}

// Actor — текущий пользователь как участник операции
func Actor(c *gin.Context) validation.Actor {
	u, _ := CurrentUser(c)
	return validation.ActorFromUser(u)
}
