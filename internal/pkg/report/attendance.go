package report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the MIME type of the generated workbook.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	sheetAttendance = "Attendance"
	sheetSummary    = "Summary"
	sheetOffDays    = "Off Days"
)

// AttendanceWorkbook renders one month of attendance into an xlsx file.
func AttendanceWorkbook(r attendance.MonthReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetAttendance); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{sheetSummary, sheetOffDays} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DCE6F1"}},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeRows(f, sheetAttendance, header, attendanceRows(r)); err != nil {
		return nil, err
	}
	if err := writeRows(f, sheetSummary, header, summaryRows(r)); err != nil {
		return nil, err
	}
	if err := writeRows(f, sheetOffDays, header, offDayRows(r.OffDays)); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetAttendance, "A", "F", 16); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

// Filename is the download name for the month, e.g. attendance-2025-03.xlsx.
func Filename(year, month int) string {
	return fmt.Sprintf("attendance-%04d-%02d.xlsx", year, month)
}

func attendanceRows(r attendance.MonthReport) [][]interface{} {
	rows := [][]interface{}{{"Date", "Day", "Punch In", "Punch Out", "Status", "Location"}}
	for _, e := range r.Entries {
		rows = append(rows, []interface{}{e.Date, e.Weekday, e.PunchIn, e.PunchOut, e.StatusLabel, e.Location})
	}
	return rows
}

func summaryRows(r attendance.MonthReport) [][]interface{} {
	s := r.Summary
	return [][]interface{}{
		{"Item", "Value"},
		{"Employee", r.EmployeeName},
		{"Employee ID", r.EmployeeID},
		{"Month", fmt.Sprintf("%s %d", time.Month(s.Month), s.Year)},
		{"Working Days", s.WorkingDays},
		{"Present", s.Present},
		{"Half Day", s.HalfDay},
		{"Absent", s.Absent},
		{"Leave", s.Leave},
	}
}

func offDayRows(offDays map[string]string) [][]interface{} {
	dates := make([]string, 0, len(offDays))
	for date := range offDays {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	rows := [][]interface{}{{"Date", "Reason"}}
	for _, date := range dates {
		rows = append(rows, []interface{}{date, offDays[date]})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, headerStyle int, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		end, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", end, headerStyle); err != nil {
			return fmt.Errorf("style %s header: %w", sheet, err)
		}
	}
	return nil
}
