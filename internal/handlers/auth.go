package handlers

import (
	"errors"
	"net/http"
	"strings"

	"hours-tracker/internal/apperrors"
	"hours-tracker/internal/database"
	"hours-tracker/internal/logger"
	"hours-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgBadCredentials = "Usuario o contraseña incorrectos."

func ShowLogin(c *gin.Context) {
	if u, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, middleware.HomePath(u.Role))
		return
	}
	render(c, http.StatusOK, "login.html", gin.H{"error": ""})
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": msgBadCredentials})
		return
	}
	form.Username = strings.TrimSpace(form.Username)

	user, err := database.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			fail(c, err)
			return
		}
		logger.FromGin(c).Info("login failed", zap.String("username", form.Username))
		render(c, http.StatusBadRequest, "login.html", gin.H{
			"error":    msgBadCredentials,
			"username": form.Username,
		})
		return
	}

	if err := middleware.Login(c, *user); err != nil {
		fail(c, err)
		return
	}
	database.LogActivity(c.Request.Context(), user.ID, "Inició sesión", "user", user.ID)

	// логин ведёт на экран своей роли
	c.Redirect(http.StatusFound, middleware.HomePath(user.Role))
}

func Logout(c *gin.Context) {
	if u, ok := middleware.CurrentUser(c); ok {
		database.LogActivity(c.Request.Context(), u.ID, "Cerró sesión", "user", u.ID)
	}
	_ = middleware.Logout(c)
	c.Redirect(http.StatusFound, "/login")
}
