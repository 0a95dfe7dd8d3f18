package attendance

import "context"

// AttendanceRepository reads the signed-in employee's attendance from the backend.
type AttendanceRepository interface {
	List(ctx context.Context, filter Filter) (Page, error)
}
