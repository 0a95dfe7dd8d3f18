package salary

import "github.com/shopspring/decimal"

type RecordResponse struct {
	ID          string          `json:"id"`
	Period      string          `json:"period"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	BasicSalary decimal.Decimal `json:"basicSalary"`
	Allowances  decimal.Decimal `json:"allowances"`
	Deductions  decimal.Decimal `json:"deductions"`
	Gross       decimal.Decimal `json:"gross"`
	PresentDays int             `json:"presentDays"`
	WorkingDays int             `json:"workingDays"`
	Payable     decimal.Decimal `json:"payable"`
	Status      string          `json:"status"`
}

type ListResponse struct {
	Year         int              `json:"year"`
	Records      []RecordResponse `json:"records"`
	TotalPayable decimal.Decimal  `json:"totalPayable"`
}
