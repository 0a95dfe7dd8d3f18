package salary

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one month of salary as computed by the backend.
type Record struct {
	ID          string
	Month       int
	Year        int
	BasicSalary decimal.Decimal
	Allowances  decimal.Decimal
	Deductions  decimal.Decimal
	NetSalary   *decimal.Decimal
	PresentDays *int
	WorkingDays *int
	Status      string
	PaidAt      *time.Time
}

// Gross is basic plus allowances minus deductions.
func (r Record) Gross() decimal.Decimal {
	return r.BasicSalary.Add(r.Allowances).Sub(r.Deductions)
}

// Period is the display name of the record's month, e.g. "March 2025".
func (r Record) Period() string {
	if r.Month < 1 || r.Month > 12 {
		return fmt.Sprintf("%d", r.Year)
	}
	return fmt.Sprintf("%s %d", time.Month(r.Month), r.Year)
}
