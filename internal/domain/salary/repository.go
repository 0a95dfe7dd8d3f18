package salary

import "context"

// SalaryRepository reads salary records from the backend. year 0 means every year.
type SalaryRepository interface {
	List(ctx context.Context, year int) ([]Record, error)
}
