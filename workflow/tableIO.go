package workflow

import "bitbucket.org/mmdatafocus/stock_planner/models"

// TableReader reads one named sheet of an uploaded workbook.
type TableReader interface {
	ReadTable(data []byte, sheet string) (*models.Table, error)
}

// WorkbookWriter renders sheets into a workbook document.
type WorkbookWriter interface {
	WriteWorkbook(sheets []models.SheetData) ([]byte, error)
}
