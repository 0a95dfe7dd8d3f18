package rest

import (
	"context"
	"net/url"
	"strconv"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/salary"
	"github.com/shopspring/decimal"
)

type salaryWire struct {
	MongoID     string           `json:"_id"`
	ID          string           `json:"id"`
	Month       flexMonth        `json:"month"`
	Year        flexInt          `json:"year"`
	BasicSalary decimal.Decimal  `json:"basicSalary"`
	Allowances  decimal.Decimal  `json:"allowances"`
	Deductions  decimal.Decimal  `json:"deductions"`
	NetSalary   *decimal.Decimal `json:"netSalary"`
	PresentDays flexInt          `json:"presentDays"`
	WorkingDays flexInt          `json:"workingDays"`
	Status      string           `json:"status"`
	PaidAt      flexTime         `json:"paidAt"`
}

func (w salaryWire) toEntity() salary.Record {
	return salary.Record{
		ID:          firstNonEmpty(w.MongoID, w.ID),
		Month:       int(w.Month),
		Year:        w.Year.Value,
		BasicSalary: w.BasicSalary,
		Allowances:  w.Allowances,
		Deductions:  w.Deductions,
		NetSalary:   w.NetSalary,
		PresentDays: w.PresentDays.Ptr(),
		WorkingDays: w.WorkingDays.Ptr(),
		Status:      w.Status,
		PaidAt:      w.PaidAt.Ptr(),
	}
}

type salaryRepository struct {
	client *Client
}

func NewSalaryRepository(client *Client) salary.SalaryRepository {
	return &salaryRepository{client: client}
}

// List implements salary.SalaryRepository.
func (r *salaryRepository) List(ctx context.Context, year int) ([]salary.Record, error) {
	query := url.Values{}
	if year != 0 {
		query.Set("year", strconv.Itoa(year))
	}

	env, err := r.client.GetJSON(ctx, "/salary", query)
	if err != nil {
		return nil, err
	}

	var wires []salaryWire
	if err := env.Decode(&wires); err != nil {
		return nil, err
	}

	records := make([]salary.Record, 0, len(wires))
	for _, w := range wires {
		record := w.toEntity()
		if year != 0 && record.Year != 0 && record.Year != year {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
