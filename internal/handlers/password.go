package handlers

import (
	"net/http"

	"hours-tracker/internal/database"
	"hours-tracker/internal/middleware"
	"hours-tracker/internal/validation"

	"github.com/gin-gonic/gin"
)

func ShowPasswordChange(c *gin.Context) {
	render(c, http.StatusOK, "password_form.html", nil)
}

// ChangePassword — смена пароля с проверкой текущего
func ChangePassword(c *gin.Context) {
	var form validation.PasswordChangeForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Solicitud inválida")
		return
	}

	u, _ := middleware.CurrentUser(c)
	errs, err := database.ChangePassword(c.Request.Context(), u.ID, form)
	if err != nil {
		fail(c, err)
		return
	}
	if !errs.Empty() {
		renderForm(c, "password_form.html", "password", errs, nil)
		return
	}

	flash(c, "Contraseña actualizada")
	c.Redirect(http.StatusFound, middleware.HomePath(u.Role))
}
