package home

import "context"

type HomeService interface {
	// GetDashboard returns the home screen. Attendance and leave figures are
	// omitted when the backend cannot supply them
	GetDashboard(ctx context.Context) (Dashboard, error)
}
