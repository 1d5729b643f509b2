package services

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/types"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Report types selectable on the training reports endpoint.
const (
	ReportStaffTraining    = "staff-training"
	ReportCourseCompletion = "course-completion"
	ReportCategorySummary  = "category-summary"
)

// ReportFilter narrows a training report. Zero values mean no filter; the
// date range applies to allocation completion dates.
type ReportFilter struct {
	StaffID  uint   `json:"staffId"`
	Category string `json:"category"`
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
}

// Report is a generated training report: a header row and data rows.
type Report struct {
	Type    string     `json:"type"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// BuildTrainingReport generates one of the three training report types.
func BuildTrainingReport(db *gorm.DB, reportType string, filter ReportFilter) (*Report, error) {
	switch reportType {
	case ReportStaffTraining:
		return buildStaffTrainingReport(db, filter)
	case ReportCourseCompletion:
		return buildCourseCompletionReport(db, filter)
	case ReportCategorySummary:
		return buildCategorySummaryReport(db, filter)
	}
	return nil, &types.RequestError{Code: 400, Message: "unknown report type: " + reportType, Type: "reports.validation.type"}
}

type reportRow struct {
	StaffID        uint
	StaffName      string
	StaffRole      string
	ModuleID       uint
	ModuleTitle    string
	Category       string
	Mandatory      bool
	Status         models.AllocationStatus
	StartDate      string
	CompletionDate string
}

// reportRows joins allocations against staff and modules and applies the
// filter. It is the shared base for all three report shapes.
func reportRows(db *gorm.DB, filter ReportFilter) ([]reportRow, error) {
	query := db.Table("training_allocations").
		Select("training_allocations.staff_id, staff_members.name as staff_name, staff_members.role as staff_role, " +
			"training_allocations.module_id, training_modules.title as module_title, training_modules.category, " +
			"training_modules.mandatory, training_allocations.status, training_allocations.start_date, " +
			"training_allocations.completion_date").
		Joins("JOIN staff_members ON staff_members.id = training_allocations.staff_id").
		Joins("JOIN training_modules ON training_modules.id = training_allocations.module_id")

	if filter.StaffID != 0 {
		query = query.Where("training_allocations.staff_id = ?", filter.StaffID)
	}
	if filter.Category != "" {
		query = query.Where("training_modules.category = ?", filter.Category)
	}
	if filter.FromDate != "" {
		query = query.Where("training_allocations.completion_date >= ?", filter.FromDate)
	}
	if filter.ToDate != "" {
		query = query.Where("training_allocations.completion_date <= ?", filter.ToDate)
	}

	var rows []reportRow
	err := query.Order("staff_members.name, training_modules.title").Scan(&rows).Error
	return rows, err
}

func buildStaffTrainingReport(db *gorm.DB, filter ReportFilter) (*Report, error) {
	rows, err := reportRows(db, filter)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Type:    ReportStaffTraining,
		Headers: []string{"Staff Member", "Role", "Course", "Category", "Mandatory", "Status", "Start Date", "Completion Date"},
		Rows:    [][]string{},
	}
	for _, r := range rows {
		report.Rows = append(report.Rows, []string{
			r.StaffName, r.StaffRole, r.ModuleTitle, r.Category,
			yesNo(r.Mandatory), string(r.Status), r.StartDate, r.CompletionDate,
		})
	}
	return report, nil
}

func buildCourseCompletionReport(db *gorm.DB, filter ReportFilter) (*Report, error) {
	rows, err := reportRows(db, filter)
	if err != nil {
		return nil, err
	}

	type courseAgg struct {
		title     string
		category  string
		allocated int
		completed int
	}
	byModule := map[uint]*courseAgg{}
	order := []uint{}
	for _, r := range rows {
		agg, ok := byModule[r.ModuleID]
		if !ok {
			agg = &courseAgg{title: r.ModuleTitle, category: r.Category}
			byModule[r.ModuleID] = agg
			order = append(order, r.ModuleID)
		}
		agg.allocated++
		if r.Status == models.AllocationCompleted {
			agg.completed++
		}
	}

	report := &Report{
		Type:    ReportCourseCompletion,
		Headers: []string{"Course", "Category", "Allocated", "Completed", "Completion Rate"},
		Rows:    [][]string{},
	}
	for _, id := range order {
		agg := byModule[id]
		rate := 0
		if agg.allocated > 0 {
			rate = agg.completed * 100 / agg.allocated
		}
		report.Rows = append(report.Rows, []string{
			agg.title, agg.category,
			fmt.Sprintf("%d", agg.allocated),
			fmt.Sprintf("%d", agg.completed),
			fmt.Sprintf("%d%%", rate),
		})
	}
	return report, nil
}

func buildCategorySummaryReport(db *gorm.DB, filter ReportFilter) (*Report, error) {
	rows, err := reportRows(db, filter)
	if err != nil {
		return nil, err
	}

	type categoryAgg struct {
		modules   map[uint]struct{}
		allocated int
		completed int
	}
	byCategory := map[string]*categoryAgg{}
	order := []string{}
	for _, r := range rows {
		agg, ok := byCategory[r.Category]
		if !ok {
			agg = &categoryAgg{modules: map[uint]struct{}{}}
			byCategory[r.Category] = agg
			order = append(order, r.Category)
		}
		agg.modules[r.ModuleID] = struct{}{}
		agg.allocated++
		if r.Status == models.AllocationCompleted {
			agg.completed++
		}
	}

	report := &Report{
		Type:    ReportCategorySummary,
		Headers: []string{"Category", "Courses", "Allocated", "Completed", "Completion Rate"},
		Rows:    [][]string{},
	}
	for _, category := range order {
		agg := byCategory[category]
		rate := 0
		if agg.allocated > 0 {
			rate = agg.completed * 100 / agg.allocated
		}
		report.Rows = append(report.Rows, []string{
			category,
			fmt.Sprintf("%d", len(agg.modules)),
			fmt.Sprintf("%d", agg.allocated),
			fmt.Sprintf("%d", agg.completed),
			fmt.Sprintf("%d%%", rate),
		})
	}
	return report, nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// ReportCSV renders a report as CSV. Fields with commas, quotes or newlines
// are quoted per RFC 4180.
func ReportCSV(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(report.Headers); err != nil {
		return nil, err
	}
	for _, row := range report.Rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReportXLSX renders a report as an Excel workbook with a bold header row.
func ReportXLSX(report *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for col, header := range report.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range report.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
