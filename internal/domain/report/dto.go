package report

import "context"

// AttendanceExportColumns is the fixed column order of the attendance CSV.
var AttendanceExportColumns = []string{
	"date",
	"full_name",
	"unit",
	"status",
	"check_in_time",
	"check_in_location",
	"check_out_time",
	"check_out_location",
}

// MissingCheckOutPlaceholder fills the check-out columns of records still in
// the CHECKED_IN state.
const MissingCheckOutPlaceholder = "-"

// ReportService renders the attendance collection as a CSV document.
type ReportService interface {
	ExportAttendanceCSV(ctx context.Context) ([]byte, error)
}
