package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"hours-tracker/internal/apperrors"
	"hours-tracker/internal/logger"
	"hours-tracker/internal/metrics"
	"hours-tracker/internal/middleware"
	"hours-tracker/internal/validation"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Now — часы приложения; в тестах подменяется
var Now = time.Now

func today() time.Time {
	return validation.DateOnly(Now())
}

// render — обёртка над c.HTML, которая во все шаблоны прокидывает CurrentUser и flash-сообщения.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if u, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = u
		data["CurrentUsername"] = u.Username
		data["IsStaff"] = u.IsStaff()
	}

	sess := sessions.Default(c)
	if flashes := sess.Flashes(); len(flashes) > 0 {
		data["Flashes"] = flashes
		_ = sess.Save()
	}

	c.HTML(status, tmpl, data)
}

// renderForm — повторный показ формы с введёнными значениями и ошибками по полям
func renderForm(c *gin.Context, tmpl, form string, errs validation.Errors, data gin.H) {
	metrics.RejectedForm(form)
	logger.FromGin(c).Debug("form rejected", zap.String("form", form), zap.String("errors", errs.Error()))

	if data == nil {
		data = gin.H{}
	}
	data["errors"] = errs
	render(c, http.StatusBadRequest, tmpl, data)
}

func flash(c *gin.Context, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg)
	_ = sess.Save()
}

// idParam — положительный числовой :id; иначе 404
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.String(http.StatusNotFound, "No encontrado")
		return 0, false
	}
	return uint(id), true
}

// queryID — необязательный числовой фильтр из query string
func queryID(c *gin.Context, key string) uint {
	id, err := strconv.ParseUint(c.Query(key), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// fail — ответ на ошибку хранилища: ErrNotFound -> 404, остальное -> 500
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.String(http.StatusNotFound, "No encontrado")
	default:
		logger.FromGin(c).Error("request failed", zap.Error(err))
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Error interno")
	}
}
