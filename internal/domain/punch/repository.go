package punch

import "context"

// PunchRepository submits punches to the attendance backend.
type PunchRepository interface {
	PunchIn(ctx context.Context, s Submission) (Ack, error)

	// PunchOut updates the punch-in record when s.PunchInID is set
	PunchOut(ctx context.Context, s Submission) (Ack, error)
}
