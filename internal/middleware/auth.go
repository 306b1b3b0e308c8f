package middleware

import (
	"net/http"

	"hours-tracker/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	SessionUserID = "user_id"
	SessionRole   = "role"
)

// HomePath — стартовый экран по роли; без роли — логин
func HomePath(role models.UserRole) string {
	switch role {
	case models.RoleStaff:
		return "/admin-home"
	case models.RoleEmployee:
		return "/employee-home"
	}
	return "/login"
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole — чужая роль не получает страницу ошибки, а уходит на свой стартовый экран
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := map[models.UserRole]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		if _, ok := roleSet[user.Role]; !ok {
			c.Redirect(http.StatusFound, HomePath(user.Role))
			c.Abort()
			return
		}
		c.Next()
	}
}

// Login кладёт пользователя в сессию
func Login(c *gin.Context, user models.User) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Set(SessionUserID, user.ID)
	sess.Set(SessionRole, string(user.Role))
	return sess.Save()
}

func Logout(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	return sess.Save()
}
