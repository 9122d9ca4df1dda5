package reports

import (
	"bitbucket.org/mmdatafocus/stock_planner/models"
	"bitbucket.org/mmdatafocus/stock_planner/workflow"
)

// ReportSheet lays the rendered report out as a single sheet with shortage
// rows marked for highlighting.
func ReportSheet(resp *StockPlanReportResponse, layout models.SheetLayout) models.SheetData {
	sheet := models.SheetData{
		Name:      layout.Labels.ReportSheet,
		Header:    resp.Headers,
		Rows:      make([][]any, 0, len(resp.Rows)),
		Highlight: make(map[int]bool),
	}
	for i, r := range resp.Rows {
		sheet.Rows = append(sheet.Rows, []any{
			r.ProductName,
			r.CurrentQuantity,
			r.TargetQuantity,
			r.StatusLabel,
			r.RequiredOrderQuantity,
		})
		if r.Highlight {
			sheet.Highlight[i] = true
		}
	}
	if resp.Summary != "" {
		sheet.Rows = append(sheet.Rows, []any{}, []any{resp.Summary})
	}
	return sheet
}

func ExportStockPlanExcel(writer workflow.WorkbookWriter, resp *StockPlanReportResponse, layout models.SheetLayout) ([]byte, error) {
	return writer.WriteWorkbook([]models.SheetData{ReportSheet(resp, layout)})
}
