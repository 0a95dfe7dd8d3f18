package attendance

import (
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/validator"
)

// ========================================
// FILTER
// ========================================

type Filter struct {
	Page      int    `json:"page" validate:"min=0"`
	Limit     int    `json:"limit" validate:"min=0,max=100"`
	Month     int    `json:"month" validate:"min=0,max=12"`
	Year      int    `json:"year" validate:"omitempty,min=2000,max=2100"`
	StartDate string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Status    string `json:"status" validate:"omitempty,oneof=present absent halfday"`
}

func (f *Filter) Validate() error {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if err := validator.Struct(f); err != nil {
		return err
	}
	if f.Month != 0 && f.Year == 0 {
		return validator.ValidationErrors{{Field: "year", Message: "year is required when month is set"}}
	}
	if f.StartDate != "" && f.EndDate != "" && f.StartDate > f.EndDate {
		return validator.ValidationErrors{{Field: "endDate", Message: "endDate must not be before startDate"}}
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type EntryResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Weekday     string `json:"weekday"`
	PunchIn     string `json:"punchIn"`
	PunchOut    string `json:"punchOut"`
	EntryTime   string `json:"entryTime"`
	Status      Status `json:"status"`
	StatusLabel string `json:"statusLabel"`
	Location    string `json:"location,omitempty"`
}

// Summary counts one calendar month.
type Summary struct {
	Year        int `json:"year"`
	Month       int `json:"month"`
	Present     int `json:"present"`
	Absent      int `json:"absent"`
	HalfDay     int `json:"halfDay"`
	Leave       int `json:"leave"`
	WorkingDays int `json:"workingDays"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Window     []int `json:"window"`
}

type ListResponse struct {
	Entries    []EntryResponse `json:"entries"`
	Summary    *Summary        `json:"summary,omitempty"`
	Pagination Pagination      `json:"pagination"`
}

// MonthReport is the data behind the attendance spreadsheet.
type MonthReport struct {
	EmployeeName string
	EmployeeID   string
	Entries      []EntryResponse
	Summary      Summary
	OffDays      map[string]string
}
