package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
)

// Column is one header cell and its width
type Column struct {
	Header string
	Width  float64
}

// Sheet is a single worksheet of rows under a bold, frozen header
type Sheet struct {
	Name    string
	Columns []Column
	Rows    [][]interface{}
}

var patientColumns = []Column{
	{"ID", 8}, {"First Name", 18}, {"Last Name", 18}, {"National ID", 16},
	{"Gender", 10}, {"Birth Date", 14}, {"Age", 8}, {"Phone", 16},
	{"Hometown", 18}, {"Address", 30}, {"Blood Type", 12},
}

var appointmentColumns = []Column{
	{"ID", 8}, {"Date", 14}, {"Time", 10}, {"Patient", 24}, {"Doctor", 24},
	{"Specialty", 20}, {"Status", 14}, {"Reason", 30},
}

// PatientSheet lays out patients with their age at asOf
func PatientSheet(patients []*entities.Patient, asOf time.Time) Sheet {
	rows := make([][]interface{}, 0, len(patients))
	for _, p := range patients {
		var age interface{}
		if n, err := p.Age(asOf); err == nil {
			age = n
		}
		rows = append(rows, []interface{}{
			p.ID, p.FirstName, p.LastName, p.NationalID, p.Gender, p.BirthDate, age,
			text(p.Phone), text(p.Hometown), text(p.Address), text(p.BloodType),
		})
	}
	return Sheet{Name: "Patients", Columns: patientColumns, Rows: rows}
}

// AppointmentSheet lays out appointments with display names
func AppointmentSheet(appointments []*entities.AppointmentDetail) Sheet {
	rows := make([][]interface{}, 0, len(appointments))
	for _, a := range appointments {
		rows = append(rows, []interface{}{
			a.ID, a.Date, a.Time, a.PatientName, a.DoctorName, a.Specialty,
			string(a.Status), text(a.Reason),
		})
	}
	return Sheet{Name: "Appointments", Columns: appointmentColumns, Rows: rows}
}

// Write renders the sheets into an .xlsx workbook
func Write(sheets ...Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range sheets {
		index, err := f.NewSheet(sheet.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet.Name, err)
		}
		if i == 0 {
			f.SetActiveSheet(index)
		}
		if err := writeSheet(f, sheet, headerStyle); err != nil {
			return nil, err
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle int) error {
	for i, col := range sheet.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet.Name, cell, col.Header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet.Name, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if col.Width > 0 {
			if err := f.SetColWidth(sheet.Name, name, name, col.Width); err != nil {
				return fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	for r, row := range sheet.Rows {
		for c, value := range row {
			if value == nil || value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet.Name, cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	return f.SetPanes(sheet.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func text(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
