package reports

import (
	"bitbucket.org/mmdatafocus/stock_planner/models"
)

// StockPlanRow is one rendered report line with labels already localized.
type StockPlanRow struct {
	ProductName           string `json:"productName"`
	CurrentQuantity       int64  `json:"currentQuantity"`
	TargetQuantity        int64  `json:"targetQuantity"`
	Status                string `json:"status"`
	StatusLabel           string `json:"statusLabel"`
	RequiredOrderQuantity int64  `json:"requiredOrderQuantity"`
	Highlight             bool   `json:"highlight"`
}

type StockPlanReportResponse struct {
	ActivityCount int64           `json:"activityCount"`
	Headers       []string        `json:"headers"`
	Rows          []*StockPlanRow `json:"rows"`
	ShortageCount int             `json:"shortageCount"`
	Summary       string          `json:"summary,omitempty"`
}

func Headers(layout models.SheetLayout) []string {
	return []string{
		layout.Labels.ProductHeader,
		layout.Labels.CurrentHeader,
		layout.Labels.TargetHeader,
		layout.Labels.StatusHeader,
		layout.Labels.OrderHeader,
	}
}

// GetStockPlanReport renders an analysis for display. Shortage rows are
// highlighted and the summary is set only when something must be ordered.
func GetStockPlanReport(report *models.StockPlanReport, layout models.SheetLayout) *StockPlanReportResponse {
	resp := &StockPlanReportResponse{
		ActivityCount: report.ActivityCount,
		Headers:       Headers(layout),
		Rows:          make([]*StockPlanRow, 0, len(report.Results)),
		ShortageCount: report.ShortageCount,
	}
	for _, r := range report.Results {
		resp.Rows = append(resp.Rows, &StockPlanRow{
			ProductName:           r.ProductName,
			CurrentQuantity:       r.CurrentQuantity,
			TargetQuantity:        r.TargetQuantity,
			Status:                string(r.Status),
			StatusLabel:           layout.StatusLabel(r.Status),
			RequiredOrderQuantity: r.RequiredOrderQuantity,
			Highlight:             r.Status == models.StatusShortage,
		})
	}
	if report.ShortageCount > 0 {
		resp.Summary = layout.ShortageMessage(report.ShortageCount)
	}
	return resp
}
