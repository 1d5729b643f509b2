package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maccam68/caredesk/internal/services"
	"gorm.io/gorm"
)

// ReportsHandler handles training report generation routes
type ReportsHandler struct {
	DB *gorm.DB
}

func reportFilter(c *fiber.Ctx) (services.ReportFilter, error) {
	staffID, err := parseUintQuery(c, "staffId")
	if err != nil {
		return services.ReportFilter{}, err
	}
	return services.ReportFilter{
		StaffID:  staffID,
		Category: c.Query("category"),
		FromDate: c.Query("fromDate"),
		ToDate:   c.Query("toDate"),
	}, nil
}

// Training handles GET /api/reports/training/:type
// @Summary Generate a training report
// @Description Build a staff-training, course-completion or category-summary report
// @Tags Reports
// @Produce json
// @Param type path string true "Report type" Enums(staff-training, course-completion, category-summary)
// @Param staffId query int false "Filter by staff member"
// @Param category query string false "Filter by module category"
// @Param fromDate query string false "Completion date from (YYYY-MM-DD)"
// @Param toDate query string false "Completion date to (YYYY-MM-DD)"
// @Success 200 {object} services.Report
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /reports/training/{type} [get]
func (h *ReportsHandler) Training(c *fiber.Ctx) error {
	filter, err := reportFilter(c)
	if err != nil {
		return respondError(c, err, "reports.training")
	}

	report, err := services.BuildTrainingReport(h.DB, c.Params("type"), filter)
	if err != nil {
		return respondError(c, err, "reports.training")
	}
	return c.Status(fiber.StatusOK).JSON(report)
}

// TrainingCSV handles GET /api/reports/training/:type/csv
// @Summary Download a training report as CSV
// @Tags Reports
// @Produce text/csv
// @Param type path string true "Report type" Enums(staff-training, course-completion, category-summary)
// @Param staffId query int false "Filter by staff member"
// @Param category query string false "Filter by module category"
// @Param fromDate query string false "Completion date from (YYYY-MM-DD)"
// @Param toDate query string false "Completion date to (YYYY-MM-DD)"
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /reports/training/{type}/csv [get]
func (h *ReportsHandler) TrainingCSV(c *fiber.Ctx) error {
	filter, err := reportFilter(c)
	if err != nil {
		return respondError(c, err, "reports.training.csv")
	}

	report, err := services.BuildTrainingReport(h.DB, c.Params("type"), filter)
	if err != nil {
		return respondError(c, err, "reports.training.csv")
	}

	data, err := services.ReportCSV(report)
	if err != nil {
		return respondError(c, err, "reports.training.csv")
	}

	filename := "training-report-" + report.Type + "-" + time.Now().Format("2006-01-02") + ".csv"
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).Send(data)
}

// TrainingXLSX handles GET /api/reports/training/:type/xlsx
// @Summary Download a training report as an Excel workbook
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param type path string true "Report type" Enums(staff-training, course-completion, category-summary)
// @Param staffId query int false "Filter by staff member"
// @Param category query string false "Filter by module category"
// @Param fromDate query string false "Completion date from (YYYY-MM-DD)"
// @Param toDate query string false "Completion date to (YYYY-MM-DD)"
// @Success 200 {string} string "XLSX file"
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /reports/training/{type}/xlsx [get]
func (h *ReportsHandler) TrainingXLSX(c *fiber.Ctx) error {
	filter, err := reportFilter(c)
	if err != nil {
		return respondError(c, err, "reports.training.xlsx")
	}

	report, err := services.BuildTrainingReport(h.DB, c.Params("type"), filter)
	if err != nil {
		return respondError(c, err, "reports.training.xlsx")
	}

	data, err := services.ReportXLSX(report)
	if err != nil {
		return respondError(c, err, "reports.training.xlsx")
	}

	filename := "training-report-" + report.Type + "-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).Send(data)
}
