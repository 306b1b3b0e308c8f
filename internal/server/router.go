package server

import (
	"net/http"

	"hours-tracker/internal/config"
	"hours-tracker/internal/handlers"
	"hours-tracker/internal/metrics"
	"hours-tracker/internal/middleware"
	"hours-tracker/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "hours_session"

func NewRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	if cfg.MetricsEnabled {
		r.Use(metrics.NewHTTPMetrics(cfg.ServiceName).Middleware())
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	r.SetHTMLTemplate(loadTemplates())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   8 * 3600,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.Use(middleware.InjectUser())

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// ГЛАВНАЯ / AUTH
	r.GET("/", handlers.Index)
	r.GET("/login", handlers.ShowLogin)
	r.POST("/login", handlers.Login)
	r.GET("/logout", handlers.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	auth.GET("/password", handlers.ShowPasswordChange)
	auth.POST("/password", handlers.ChangePassword)

	// СОТРУДНИК
	emp := auth.Group("/")
	emp.Use(middleware.RequireRole(models.RoleEmployee))

	emp.GET("/employee-home", handlers.EmployeeHome)
	emp.GET("/hours/new", handlers.ShowNewHours)
	emp.POST("/hours/new", handlers.CreateHours)
	emp.GET("/hours/mine", handlers.MyHours)

	// АДМИНИСТРАТОР
	staff := auth.Group("/")
	staff.Use(middleware.RequireRole(models.RoleStaff))

	staff.GET("/admin-home", handlers.AdminHome)

	// проекты
	staff.GET("/projects", handlers.ListProjects)
	staff.GET("/projects/new", handlers.ShowNewProject)
	staff.POST("/projects/new", handlers.CreateProject)
	staff.GET("/projects/:id/edit", handlers.ShowEditProject)
	staff.POST("/projects/:id/edit", handlers.UpdateProject)
	staff.POST("/projects/:id/delete", handlers.DeleteProject)
	staff.GET("/projects/:id/history", handlers.ShowProjectHistory)

	// клиенты
	staff.GET("/clients", handlers.ListClients)
	staff.GET("/clients/new", handlers.ShowNewClient)
	staff.POST("/clients/new", handlers.CreateClient)
	staff.GET("/clients/:id", handlers.ShowClientDetail)
	staff.GET("/clients/:id/edit", handlers.ShowEditClient)
	staff.POST("/clients/:id/edit", handlers.UpdateClient)
	staff.POST("/clients/:id/delete", handlers.DeleteClient)

	// сотрудники и назначения
	staff.GET("/employees", handlers.ListEmployees)
	staff.GET("/employees/new", handlers.ShowNewEmployee)
	staff.POST("/employees/new", handlers.CreateEmployee)
	staff.GET("/employees/:id/edit", handlers.ShowEditEmployee)
	staff.POST("/employees/:id/edit", handlers.UpdateEmployee)
	staff.GET("/employees/:id/assign", handlers.ShowAssign)
	staff.POST("/employees/:id/assign", handlers.Assign)
	staff.POST("/assignments/:id/withdraw", handlers.Withdraw)

	// часы, журнал, отчёты
	staff.GET("/admin/hours", handlers.AdminHours)
	staff.GET("/admin/activity", handlers.ListActivity)
	staff.GET("/reports", handlers.ShowReport)

	return r
}
