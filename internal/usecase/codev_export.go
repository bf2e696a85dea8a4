package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"codev-directory-backend/internal/domain"
	"codev-directory-backend/internal/ranking"
	"codev-directory-backend/pkg/apperror"
	"codev-directory-backend/pkg/validation"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = map[string]string{
	"position":            "RANK",
	"full_name":           "FULL NAME",
	"username":            "USERNAME",
	"display_position":    "POSITION",
	"internal_status":     "STATUS",
	"application_status":  "APPLICATION",
	"years_of_experience": "YEARS OF EXPERIENCE",
	"valid_badge_count":   "BADGES",
	"max_level":           "HIGHEST LEVEL",
	"total_points":        "POINTS",
	"level_score":         "LEVEL SCORE",
	"active":              "ACTIVE",
}

// ExportCodevs renders the ranked, filtered directory as an XLSX or CSV file.
// Pagination is ignored; at most ExportMaxRows rows are written.
func (u *codevUsecase) ExportCodevs(ctx context.Context, req domain.CodevExportRequest) ([]byte, string, error) {
	if err := u.validate.Struct(req.Query.Filter); err != nil {
		return nil, "", apperror.Invalid("Invalid directory query", validation.FormatValidationErrors(err))
	}
	if err := u.validate.Var(req.Format, "omitempty,oneof=xlsx csv"); err != nil {
		return nil, "", apperror.BadRequest(fmt.Sprintf("unsupported export format: %s", req.Format))
	}

	columns, err := exportColumns(req.Columns)
	if err != nil {
		return nil, "", err
	}

	snapshot, err := u.snapshot(ctx)
	if err != nil {
		return nil, "", err
	}

	ranked := ranking.PrioritizedAndFilteredCodevs(snapshot, req.Query.FilterAdminAndFailed, req.Query.Filter)
	if len(ranked) > u.opts.ExportMaxRows {
		ranked = ranked[:u.opts.ExportMaxRows]
	}

	cards := make([]domain.RankedCodev, len(ranked))
	for i, p := range ranked {
		cards[i] = decorate(p, i+1)
	}

	if req.Format == "csv" {
		return exportCSV(cards, columns)
	}
	return exportExcel(cards, columns)
}

// exportColumns defaults to every column, drops duplicates and rejects unknown names.
func exportColumns(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return domain.ExportableColumns, nil
	}

	seen := make(map[string]bool, len(requested))
	columns := make([]string, 0, len(requested))
	for _, col := range requested {
		if _, ok := exportHeaders[col]; !ok {
			return nil, apperror.BadRequest(fmt.Sprintf("invalid export column: %s", col))
		}
		if !seen[col] {
			seen[col] = true
			columns = append(columns, col)
		}
	}
	return columns, nil
}

func exportExcel(cards []domain.RankedCodev, columns []string) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Codevs"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, "", fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, exportHeaders[col])
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(columns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, card := range cards {
		for colIdx, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, fieldValue(card, col))
		}
	}

	for i := range columns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	filename := fmt.Sprintf("codevs_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func exportCSV(cards []domain.RankedCodev, columns []string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write(columns)
	for _, card := range cards {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = fmt.Sprint(fieldValue(card, col))
		}
		_ = w.Write(record)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	filename := fmt.Sprintf("codevs_%s.csv", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func fieldValue(c domain.RankedCodev, field string) interface{} {
	switch field {
	case "position":
		return c.Position
	case "full_name":
		return c.FullName()
	case "username":
		return c.Username
	case "display_position":
		if c.DisplayPosition != nil {
			return *c.DisplayPosition
		}
		return ""
	case "internal_status":
		if c.InternalStatus != nil {
			return *c.InternalStatus
		}
		return ""
	case "application_status":
		return c.ApplicationStatus
	case "years_of_experience":
		if c.YearsOfExperience != nil {
			return strconv.FormatFloat(*c.YearsOfExperience, 'f', -1, 64)
		}
		return "0"
	case "valid_badge_count":
		return c.Badge.ValidBadgeCount
	case "max_level":
		return c.Badge.MaxLevel
	case "total_points":
		return c.Badge.TotalPoints
	case "level_score":
		return c.LevelScore
	case "active":
		if c.AvailabilityStatus != nil && *c.AvailabilityStatus {
			return domain.ActiveStatusActive
		}
		return domain.ActiveStatusInactive
	default:
		return ""
	}
}
