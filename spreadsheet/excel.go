package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"bitbucket.org/mmdatafocus/stock_planner/models"
	"bitbucket.org/mmdatafocus/stock_planner/utils"
	"github.com/xuri/excelize/v2"
)

const (
	MimeTypeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	defaultSheet   = "Sheet1"
	highlightColor = "FFCCCC"
	columnWidth    = 22
)

// ExcelWorkbook reads and writes .xlsx workbooks with excelize.
type ExcelWorkbook struct{}

func NewExcelWorkbook() *ExcelWorkbook {
	return &ExcelWorkbook{}
}

func (x *ExcelWorkbook) ReadTable(data []byte, sheet string) (*models.Table, error) {
	if len(data) == 0 {
		return nil, errors.New("empty workbook")
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	if !hasSheet(f, sheet) {
		return nil, fmt.Errorf("%w: %q", utils.ErrSheetNotFound, sheet)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet %q: %v", sheet, err)
	}

	table := &models.Table{Name: sheet}
	if len(rows) == 0 {
		return table, nil
	}
	for _, h := range rows[0] {
		table.Header = append(table.Header, strings.TrimSpace(h))
	}
	table.Rows = rows[1:]
	return table, nil
}

func (x *ExcelWorkbook) WriteWorkbook(sheets []models.SheetData) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, errors.New("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}
	highlightStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{highlightColor}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, s.Name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return nil, err
		}
		if err := writeSheet(f, s, headerStyle, highlightStyle); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", s.Name, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s models.SheetData, headerStyle, highlightStyle int) error {
	header := make([]interface{}, 0, len(s.Header))
	for _, h := range s.Header {
		header = append(header, h)
	}
	if err := f.SetSheetRow(s.Name, "A1", &header); err != nil {
		return err
	}

	lastCol := len(s.Header)
	for _, row := range s.Rows {
		if len(row) > lastCol {
			lastCol = len(row)
		}
	}
	if lastCol == 0 {
		return nil
	}
	lastColName, err := excelize.ColumnNumberToName(lastCol)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.Name, "A1", lastColName+"1", headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(s.Name, "A", lastColName, columnWidth); err != nil {
		return err
	}

	for idx, row := range s.Rows {
		rowNo := idx + 2
		values := make([]interface{}, len(row))
		copy(values, row)
		if err := f.SetSheetRow(s.Name, fmt.Sprintf("A%d", rowNo), &values); err != nil {
			return err
		}
		if s.Highlight[idx] {
			if err := f.SetCellStyle(s.Name, fmt.Sprintf("A%d", rowNo), fmt.Sprintf("%s%d", lastColName, rowNo), highlightStyle); err != nil {
				return err
			}
		}
	}
	return nil
}

func hasSheet(f *excelize.File, sheet string) bool {
	for _, name := range f.GetSheetList() {
		if name == sheet {
			return true
		}
	}
	return false
}
