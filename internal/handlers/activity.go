package handlers

import (
	"net/http"

	"hours-tracker/internal/database"

	"github.com/gin-gonic/gin"
)

// ListActivity — журнал действий, новые сверху, не больше database.ActivityLimit
func ListActivity(c *gin.Context) {
	logs, err := database.RecentActivity(c.Request.Context(), database.ActivityLimit)
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "activity_list.html", gin.H{
		"logs":  logs,
		"limit": database.ActivityLimit,
	})
}
