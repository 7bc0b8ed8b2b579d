package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hadirku/hadirku-backend-go/internal/domain/report"
	"github.com/hadirku/hadirku-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	ExportAttendance(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// ExportAttendance implements ReportHandler. Streams the whole attendance
// collection as a CSV download.
func (h *reportHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	data, err := h.reportService.ExportAttendanceCSV(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
