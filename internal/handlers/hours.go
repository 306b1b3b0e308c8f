package handlers

import (
	"net/http"

	"hours-tracker/internal/database"
	"hours-tracker/internal/middleware"
	"hours-tracker/internal/report"
	"hours-tracker/internal/validation"

	"github.com/gin-gonic/gin"
)

//
// УЧЁТ ЧАСОВ (сотрудник)
//

func hoursFormData(c *gin.Context, form validation.TimeEntryForm) (gin.H, bool) {
	u, _ := middleware.CurrentUser(c)
	projects, err := database.ProjectsForTimeEntry(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return gin.H{
		"form":     form,
		"projects": projects,
		"today":    today().Format(validation.DateLayout),
	}, true
}

func ShowNewHours(c *gin.Context) {
	data, ok := hoursFormData(c, validation.TimeEntryForm{
		ProjectID: c.Query("project_id"),
		Date:      today().Format(validation.DateLayout),
	})
	if !ok {
		return
	}
	render(c, http.StatusOK, "hours_form.html", data)
}

func CreateHours(c *gin.Context) {
	var form validation.TimeEntryForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Solicitud inválida")
		return
	}

	_, errs, err := database.SaveTimeEntry(c.Request.Context(), middleware.Actor(c), form, today())
	if err != nil {
		fail(c, err)
		return
	}
	if !errs.Empty() {
		data, ok := hoursFormData(c, form)
		if !ok {
			return
		}
		renderForm(c, "hours_form.html", "time_entry", errs, data)
		return
	}

	flash(c, "Horas registradas")
	c.Redirect(http.StatusFound, "/hours/mine")
}

func MyHours(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	entries, err := database.EmployeeTimeEntries(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "hours_mine.html", gin.H{"entries": entries})
}

//
// ВСЕ ЧАСЫ (администратор)
//

func AdminHours(c *gin.Context) {
	ctx := c.Request.Context()
	filter := report.Filter{
		EmployeeID: queryID(c, "employee"),
		ProjectID:  queryID(c, "project"),
	}

	entries, err := database.ListTimeEntries(ctx, filter)
	if err != nil {
		fail(c, err)
		return
	}
	employees, err := database.ListEmployees(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	projects, err := database.ListProjects(ctx, database.ProjectFilter{})
	if err != nil {
		fail(c, err)
		return
	}

	render(c, http.StatusOK, "hours_admin.html", gin.H{
		"entries":          entries,
		"employees":        employees,
		"projects":         projects,
		"FilterEmployeeID": filter.EmployeeID,
		"FilterProjectID":  filter.ProjectID,
	})
}
