package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/hadirku/hadirku-backend-go/internal/domain/attendance"
	"github.com/hadirku/hadirku-backend-go/internal/domain/report"
)

type ReportServiceImpl struct {
	attendance.AttendanceRepository
}

func NewReportService(attendanceRepository attendance.AttendanceRepository) report.ReportService {
	return &ReportServiceImpl{
		AttendanceRepository: attendanceRepository,
	}
}

// ExportAttendanceCSV implements report.ReportService. Rows follow the
// repository's ordering, most recent date first. Records still in the
// checked-in state get a placeholder in the check-out columns.
func (s *ReportServiceImpl) ExportAttendanceCSV(ctx context.Context) ([]byte, error) {
	records, err := s.AttendanceRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(report.AttendanceExportColumns); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, record := range records {
		checkOutTime := report.MissingCheckOutPlaceholder
		checkOutLocation := report.MissingCheckOutPlaceholder
		if record.CheckOutTime != nil {
			checkOutTime = record.CheckOutTime.Format("2006-01-02 15:04:05")
		}
		if record.CheckOutLocation != nil {
			checkOutLocation = *record.CheckOutLocation
		}

		row := []string{
			record.Date,
			record.UserFullName,
			record.UserUnit,
			string(record.Status),
			record.CheckInTime.Format("2006-01-02 15:04:05"),
			record.CheckInLocation,
			checkOutTime,
			checkOutLocation,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
