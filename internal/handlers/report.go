package handlers

import (
	"fmt"
	"io"
	"net/http"

	"hours-tracker/internal/database"
	"hours-tracker/internal/logger"
	"hours-tracker/internal/report"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShowReport — экранный отчёт; ?export=excel|pdf отдаёт тот же отчёт файлом
func ShowReport(c *gin.Context) {
	var form report.FilterForm
	if err := c.ShouldBindQuery(&form); err != nil {
		c.String(http.StatusBadRequest, "Solicitud inválida")
		return
	}
	filter := report.ParseFilter(form)
	ctx := c.Request.Context()

	rep, err := database.BuildReport(ctx, filter, Now())
	if err != nil {
		fail(c, err)
		return
	}

	switch form.Export {
	case "excel":
		exportReport(c, rep, "xlsx", report.ExcelContentType, report.WriteExcel)
		return
	case "pdf":
		exportReport(c, rep, "pdf", report.PDFContentType, report.WritePDF)
		return
	}

	clients, err := database.ListClients(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	projects, err := database.ListProjects(ctx, database.ProjectFilter{})
	if err != nil {
		fail(c, err)
		return
	}
	employees, err := database.ListEmployees(ctx)
	if err != nil {
		fail(c, err)
		return
	}

	render(c, http.StatusOK, "report.html", gin.H{
		"report":    rep,
		"filter":    form,
		"clients":   clients,
		"projects":  projects,
		"employees": employees,
	})
}

func exportReport(c *gin.Context, rep *report.Report, ext, contentType string, write func(io.Writer, report.Report) error) {
	name := fmt.Sprintf("reporte_horas_%s.%s", rep.GeneratedAt.Format("20060102_1504"), ext)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)

	if err := write(c.Writer, *rep); err != nil {
		// заголовки уже ушли, остаётся только залогировать
		logger.FromGin(c).Error("report export failed", zap.String("format", ext), zap.Error(err))
		_ = c.Error(err)
	}
}
