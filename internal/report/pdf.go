package report

import (
	"fmt"
	"io"
	"strconv"

	"hours-tracker/internal/validation"

	"github.com/go-pdf/fpdf"
)

const PDFContentType = "application/pdf"

type column struct {
	title string
	width float64
	align string
}

// WritePDF — один документ с теми же таблицами, что и в Excel
func WritePDF(w io.Writer, r Report) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(tr("Reporte de horas"), false)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Página %d/{nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Reporte de horas"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, tr("Generado: "+r.GeneratedAt.Format(validation.DisplayDateLayout+" 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Total de horas: "+formatHours(r.TotalHours())), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	projectRows := make([][]string, 0, len(r.Projects))
	for _, p := range r.Projects {
		projectRows = append(projectRows, []string{
			p.ProjectName, p.ClientName, p.Status.Label(),
			formatNull(p.BudgetHours, ""), formatHours(p.Hours),
			formatNull(p.Variance(), ""), formatNull(p.Consumption(), "%"),
		})
	}
	table(pdf, tr, "Horas por proyecto", []column{
		{"Proyecto", 60, "L"}, {"Cliente", 50, "L"}, {"Estado", 28, "L"},
		{"Presupuesto", 32, "R"}, {"Registradas", 32, "R"}, {"Diferencia", 32, "R"}, {"Consumo", 30, "R"},
	}, projectRows)

	employeeRows := make([][]string, 0, len(r.Employees))
	for _, e := range r.Employees {
		employeeRows = append(employeeRows, []string{
			e.Username, e.FullName(), formatHours(e.Hours), strconv.FormatInt(e.Entries, 10),
		})
	}
	table(pdf, tr, "Horas por empleado", []column{
		{"Usuario", 50, "L"}, {"Nombre", 90, "L"}, {"Horas", 40, "R"}, {"Registros", 40, "R"},
	}, employeeRows)

	entryRows := make([][]string, 0, len(r.Entries))
	for _, te := range r.Entries {
		entryRows = append(entryRows, []string{
			te.Date.Format(validation.DisplayDateLayout), te.Employee.Username,
			te.Project.Client.Name, te.Project.Name, formatHours(te.Hours), te.Description,
		})
	}
	table(pdf, tr, "Registros", []column{
		{"Fecha", 24, "L"}, {"Empleado", 36, "L"}, {"Cliente", 44, "L"},
		{"Proyecto", 50, "L"}, {"Horas", 20, "R"}, {"Descripción", 90, "L"},
	}, entryRows)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

func table(pdf *fpdf.Fpdf, tr func(string) string, title string, cols []column, rows [][]string) {
	const lineH = 7

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 9, tr(title), "", 1, "L", false, 0, "")

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(217, 225, 242)
		for _, c := range cols {
			pdf.CellFormat(c.width, lineH, tr(c.title), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	if len(rows) == 0 {
		pdf.CellFormat(0, lineH, tr("Sin registros"), "1", 1, "C", false, 0, "")
	}

	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range rows {
		// перенос шапки таблицы на новую страницу
		if pdf.GetY()+lineH > pageH-bottom-15 {
			pdf.AddPage()
			header()
		}
		for i, c := range cols {
			pdf.CellFormat(c.width, lineH, tr(truncate(row[i], c.width)), "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

// грубая обрезка: ~2 мм на символ при 9pt
func truncate(s string, width float64) string {
	max := int(width / 2)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
