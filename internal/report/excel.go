package report

import (
	"fmt"
	"io"

	"hours-tracker/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetProjects  = "Proyectos"
	SheetEmployees = "Empleados"
	SheetEntries   = "Registros"

	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WriteExcel пишет книгу из трёх листов: проекты, сотрудники, сырые записи
func WriteExcel(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetProjects); err != nil {
		return err
	}
	for _, name := range []string{SheetEmployees, SheetEntries} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("new sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return err
	}

	projects := [][]interface{}{
		{"Proyecto", "Cliente", "Estado", "Horas presupuestadas", "Horas registradas", "Diferencia", "Consumo (%)"},
	}
	for _, p := range r.Projects {
		projects = append(projects, []interface{}{
			p.ProjectName,
			p.ClientName,
			p.Status.Label(),
			nullCell(p.BudgetHours),
			p.Hours.InexactFloat64(),
			nullCell(p.Variance()),
			nullCell(p.Consumption()),
		})
	}
	projects = append(projects, []interface{}{"Total", "", "", "", r.TotalHours().InexactFloat64()})

	employees := [][]interface{}{
		{"Usuario", "Nombre", "Horas", "Registros"},
	}
	for _, e := range r.Employees {
		employees = append(employees, []interface{}{e.Username, e.FullName(), e.Hours.InexactFloat64(), e.Entries})
	}

	entries := [][]interface{}{
		{"Fecha", "Empleado", "Cliente", "Proyecto", "Horas", "Descripción"},
	}
	for _, te := range r.Entries {
		entries = append(entries, []interface{}{
			te.Date.Format(validation.DisplayDateLayout),
			te.Employee.Username,
			te.Project.Client.Name,
			te.Project.Name,
			te.Hours.InexactFloat64(),
			te.Description,
		})
	}

	for sheet, rows := range map[string][][]interface{}{
		SheetProjects:  projects,
		SheetEmployees: employees,
		SheetEntries:   entries,
	} {
		if err := writeRows(f, sheet, rows, header); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	last, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 18)
}

// пустая ячейка вместо "-", чтобы в Excel считались формулы
func nullCell(d decimal.NullDecimal) interface{} {
	if !d.Valid {
		return ""
	}
	return d.Decimal.InexactFloat64()
}
