package leave

import "context"

// LeaveRepository reads and files the employee's leave requests on the backend.
type LeaveRepository interface {
	List(ctx context.Context, page, limit int) (Page, error)
	Create(ctx context.Context, req CreateRequest) (Request, error)
}
