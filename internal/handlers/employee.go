package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hours-tracker/internal/apperrors"
	"hours-tracker/internal/database"
	"hours-tracker/internal/middleware"
	"hours-tracker/internal/models"
	"hours-tracker/internal/validation"

	"github.com/gin-gonic/gin"
)

func employeeFormFrom(u models.User) validation.EmployeeForm {
	f := validation.EmployeeForm{
		Email:        u.Email,
		FirstName:    u.FirstName,
		FirstSurname: u.LastName,
	}
	if p := u.Profile; p != nil {
		f.FirstName = p.FirstName
		f.SecondName = p.SecondName
		f.FirstSurname = p.FirstSurname
		f.SecondSurname = p.SecondSurname
	}
	return f
}

//
// СОТРУДНИКИ
//

func ListEmployees(c *gin.Context) {
	employees, err := database.ListEmployees(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "employees_list.html", gin.H{"employees": employees})
}

func ShowNewEmployee(c *gin.Context) {
	render(c, http.StatusOK, "employee_form.html", gin.H{
		"form":   validation.EmployeeForm{},
		"action": "/employees/new",
		"isNew":  true,
	})
}

// CreateEmployee — логин генерируется, пароль временный (задаёт администратор)
func CreateEmployee(c *gin.Context) {
	var form validation.EmployeeForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Solicitud inválida")
		return
	}

	user, errs, err := database.CreateEmployee(c.Request.Context(), middleware.Actor(c), form)
	if err != nil {
		fail(c, err)
		return
	}
	if !errs.Empty() {
		form.Password = ""
		renderForm(c, "employee_form.html", "employee", errs, gin.H{
			"form":   form,
			"action": "/employees/new",
			"isNew":  true,
		})
		return
	}

	flash(c, "Empleado creado. Usuario: "+user.Username)
	c.Redirect(http.StatusFound, "/employees")
}

func ShowEditEmployee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	employee, err := database.GetEmployee(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "employee_form.html", gin.H{
		"form":     employeeFormFrom(*employee),
		"employee": employee,
		"action":   c.Request.URL.Path,
	})
}

func UpdateEmployee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var form validation.EmployeeForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Solicitud inválida")
		return
	}

	user, errs, err := database.UpdateEmployee(c.Request.Context(), middleware.Actor(c), id, form)
	if err != nil {
		fail(c, err)
		return
	}
	if !errs.Empty() {
		renderForm(c, "employee_form.html", "employee", errs, gin.H{
			"form":   form,
			"action": c.Request.URL.Path,
		})
		return
	}

	flash(c, "Empleado actualizado: "+user.Username)
	c.Redirect(http.StatusFound, "/employees")
}

//
// НАЗНАЧЕНИЯ
//

func assignData(c *gin.Context, employee *models.User, form validation.AssignmentForm) (gin.H, bool) {
	ctx := c.Request.Context()
	projects, err := database.AssignableProjects(ctx, employee.ID)
	if err != nil {
		fail(c, err)
		return nil, false
	}
	assignments, err := database.EmployeeAssignments(ctx, employee.ID)
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return gin.H{
		"employee":    employee,
		"projects":    projects,
		"assignments": assignments,
		"roles":       models.AssignmentRoles,
		"form":        form,
		"action":      c.Request.URL.Path,
	}, true
}

// ShowAssign — форма назначения и история назначений сотрудника
func ShowAssign(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	employee, err := database.GetEmployee(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	data, ok := assignData(c, employee, validation.AssignmentForm{Role: string(models.AssignmentDeveloper)})
	if !ok {
		return
	}
	render(c, http.StatusOK, "employee_assign.html", data)
}

func Assign(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var form validation.AssignmentForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Solicitud inválida")
		return
	}

	_, errs, err := database.CreateAssignment(c.Request.Context(), middleware.Actor(c), id, form, Now())
	if err != nil {
		fail(c, err)
		return
	}
	if !errs.Empty() {
		employee, err := database.GetEmployee(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		data, ok := assignData(c, employee, form)
		if !ok {
			return
		}
		renderForm(c, "employee_assign.html", "assignment", errs, data)
		return
	}

	flash(c, "Empleado asignado")
	c.Redirect(http.StatusFound, c.Request.URL.Path)
}

// Withdraw — снятие с проекта; запись назначения остаётся в истории
func Withdraw(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	assignment, err := database.WithdrawAssignment(c.Request.Context(), middleware.Actor(c), id, Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotAssigned) {
			flash(c, "La asignación ya estaba retirada")
			c.Redirect(http.StatusFound, "/employees")
			return
		}
		fail(c, err)
		return
	}

	flash(c, "Empleado desasignado del proyecto: "+assignment.Project.Name)
	c.Redirect(http.StatusFound, "/employees/"+strconv.FormatUint(uint64(assignment.EmployeeID), 10)+"/assign")
}
