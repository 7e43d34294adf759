// Package report exports generation history as an Excel workbook for the
// admin surface.
package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"

	"qrsecure/internal/history"
)

type HistoryReader interface {
	List(ctx context.Context) ([]history.Entry, error)
}

type Service struct {
	repo HistoryReader
}

func New(repo HistoryReader) *Service {
	return &Service{repo: repo}
}

func (s *Service) HistoryWorkbook(ctx context.Context) ([]byte, error) {
	const op = "report.HistoryWorkbook"

	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "QR History"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	headers := []string{"Generated At", "Form Type", "Name", "Fields"}
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	for rowIdx, e := range entries {
		rowNum := rowIdx + 2
		fields, _ := json.Marshal(e.Fields)

		f.SetCellValue(sheet, cellName(1, rowNum), e.Timestamp.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, cellName(2, rowNum), e.FormType)
		f.SetCellValue(sheet, cellName(3, rowNum), e.FullName)
		f.SetCellValue(sheet, cellName(4, rowNum), string(fields))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
