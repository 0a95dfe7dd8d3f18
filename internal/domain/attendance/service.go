package attendance

import "context"

type AttendanceService interface {
	// List returns formatted rows, a page window and, when a month is selected, its summary
	List(ctx context.Context, filter Filter) (ListResponse, error)

	// MonthlySummary counts statuses and approved leave for one month
	MonthlySummary(ctx context.Context, year, month int) (Summary, error)

	// MonthReport collects every row of one month for export
	MonthReport(ctx context.Context, year, month int) (MonthReport, error)
}
