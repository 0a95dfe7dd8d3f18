package salary

import "context"

type SalaryService interface {
	// List returns the year's records with the payable amount filled in
	List(ctx context.Context, year int) (ListResponse, error)
}
