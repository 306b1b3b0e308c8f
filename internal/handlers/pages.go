package handlers

import (
	"net/http"

	"hours-tracker/internal/database"
	"hours-tracker/internal/middleware"
	"hours-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Index — стартовый экран по роли
func Index(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, middleware.HomePath(u.Role))
}

func AdminHome(c *gin.Context) {
	ctx := c.Request.Context()

	projects, err := database.ListProjects(ctx, database.ProjectFilter{Status: models.StatusActive})
	if err != nil {
		fail(c, err)
		return
	}
	clients, err := database.ListClients(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	employees, err := database.ListEmployees(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	activity, err := database.RecentActivity(ctx, 10)
	if err != nil {
		fail(c, err)
		return
	}

	render(c, http.StatusOK, "admin_home.html", gin.H{
		"activeProjects": len(projects),
		"clientCount":    len(clients),
		"employeeCount":  len(employees),
		"activity":       activity,
	})
}

func EmployeeHome(c *gin.Context) {
	ctx := c.Request.Context()
	u, _ := middleware.CurrentUser(c)

	projects, err := database.ProjectsForTimeEntry(ctx, u.ID)
	if err != nil {
		fail(c, err)
		return
	}
	entries, err := database.EmployeeTimeEntries(ctx, u.ID)
	if err != nil {
		fail(c, err)
		return
	}

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Hours)
	}
	if len(entries) > 5 {
		entries = entries[:5]
	}

	render(c, http.StatusOK, "employee_home.html", gin.H{
		"projects":   projects,
		"entries":    entries,
		"totalHours": total,
	})
}
