package handlers

import (
	"net/http"
	"strconv"

	"hours-tracker/internal/database"
	"hours-tracker/internal/middleware"
	"hours-tracker/internal/models"
	"hours-tracker/internal/validation"

	"github.com/gin-gonic/gin"
)

func projectFormFrom(p models.Project) validation.ProjectForm {
	f := validation.ProjectForm{
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate.Format(validation.DateLayout),
		Status:      string(p.Status),
		ClientID:    strconv.FormatUint(uint64(p.ClientID), 10),
	}
	if p.EndDate != nil {
		f.EndDate = p.EndDate.Format(validation.DateLayout)
	}
	if p.BudgetHours.Valid {
		f.BudgetHours = p.BudgetHours.Decimal.StringFixed(2)
	}
	for _, a := range p.Administrators {
		f.AdministratorIDs = append(f.AdministratorIDs, strconv.FormatUint(uint64(a.ID), 10))
	}
	return f
}

//
// СПИСОК ПРОЕКТОВ
//

// Список проектов + фильтры по клиенту и статусу
func ListProjects(c *gin.Context) {
	filter := database.ProjectFilter{
		ClientID: queryID(c, "client_id"),
		Status:   models.ProjectStatus(c.Query("status")),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		filter.Status = ""
	}

	projects, err := database.ListProjects(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	clients, err := database.ListClients(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	render(c, http.StatusOK, "projects_list.html", gin.H{
		"projects":       projects,
		"clients":        clients,
		"statuses":       models.ProjectStatuses,
		"FilterClientID": filter.ClientID,
		"FilterStatus":   string(filter.Status),
	})
}

//
// СОЗДАНИЕ / РЕДАКТИРОВАНИЕ
//

// projectChoices — справочники для формы проекта
func projectChoices(c *gin.Context, data gin.H) bool {
	clients, err := database.ListClients(c.Request.Context())
	if err != nil {
		fail(c, err)
		return false
	}
	staff, err := database.ListStaff(c.Request.Context())
	if err != nil {
		fail(c, err)
		return false
	}
	data["clients"] = clients
	data["staff"] = staff
	data["statuses"] = models.ProjectStatuses
	return true
}

func ShowNewProject(c *gin.Context) {
	data := gin.H{
		"form":   validation.ProjectForm{ClientID: c.Query("client_id")},
		"action": "/projects/new",
		"isNew":  true,
	}
	if !projectChoices(c, data) {
		return
	}
	render(c, http.StatusOK, "project_form.html", data)
}

func CreateProject(c *gin.Context) {
	saveProject(c, 0, "/projects/new")
}

func ShowEditProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	project, err := database.GetProject(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	data := gin.H{
		"form":    projectFormFrom(*project),
		"project": project,
		"action":  c.Request.URL.Path,
	}
	if !projectChoices(c, data) {
		return
	}
	render(c, http.StatusOK, "project_form.html", data)
}

func UpdateProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	saveProject(c, id, c.Request.URL.Path)
}

func saveProject(c *gin.Context, id uint, action string) {
	var form validation.ProjectForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Solicitud inválida")
		return
	}

	project, errs, err := database.SaveProject(c.Request.Context(), middleware.Actor(c), id, form)
	if err != nil {
		fail(c, err)
		return
	}
	if !errs.Empty() {
		data := gin.H{
			"form":   form,
			"action": action,
			"isNew":  id == 0,
		}
		if !projectChoices(c, data) {
			return
		}
		renderForm(c, "project_form.html", "project", errs, data)
		return
	}

	flash(c, "Proyecto guardado: "+project.Name)
	c.Redirect(http.StatusFound, "/projects")
}

func DeleteProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := database.DeleteProject(c.Request.Context(), middleware.Actor(c), id); err != nil {
		fail(c, err)
		return
	}
	flash(c, "Proyecto eliminado")
	c.Redirect(http.StatusFound, "/projects")
}

//
// ИСТОРИЯ
//

// ShowProjectHistory — записи журнала по проекту
func ShowProjectHistory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	project, err := database.GetProject(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	history, err := database.EntityHistory(c.Request.Context(), "project", project.ID)
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "project_history.html", gin.H{
		"project": project,
		"history": history,
	})
}
