package leave

import "context"

type LeaveService interface {
	List(ctx context.Context, page, limit int) (ListResponse, error)
	Create(ctx context.Context, req CreateRequest) (RequestResponse, error)

	// ApprovedDaysIn counts approved leave days falling on working days of one month
	ApprovedDaysIn(ctx context.Context, year, month int) (int, error)
	// ApprovedDays collects every working day under approved leave in one pass over the requests
	ApprovedDays(ctx context.Context) (ApprovedDays, error)
}
