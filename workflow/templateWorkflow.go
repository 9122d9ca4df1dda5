package workflow

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/stock_planner/config"
	"bitbucket.org/mmdatafocus/stock_planner/models"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// BuildTemplateSheets lays out the blank stock and sampling sheets for the
// catalog. Sampling rows are grouped by product with weeks in catalog order.
func BuildTemplateSheets(catalog models.Catalog, layout models.SheetLayout) []models.SheetData {
	stock := models.SheetData{
		Name:   layout.StockSheet,
		Header: []string{layout.StockProductColumn, layout.StockQuantityColumn},
		Rows:   make([][]any, 0, len(catalog.Products)),
	}
	for _, p := range catalog.Products {
		stock.Rows = append(stock.Rows, []any{p, 0})
	}

	history := models.SheetData{
		Name: layout.HistorySheet,
		Header: []string{
			layout.HistoryWeekColumn,
			layout.HistoryProductColumn,
			layout.UniversityColumn,
			layout.ClinicColumn,
		},
		Rows: make([][]any, 0, len(catalog.Products)*len(catalog.Weeks)),
	}
	for _, p := range catalog.Products {
		for _, w := range catalog.Weeks {
			history.Rows = append(history.Rows, []any{w, p, 0, 0})
		}
	}

	return []models.SheetData{stock, history}
}

func GenerateTemplate(ctx context.Context, writer WorkbookWriter, catalog models.Catalog, layout models.SheetLayout) ([]byte, error) {
	_, span := tracer.Start(ctx, "workflow.GenerateTemplate", trace.WithAttributes(
		attribute.Int("catalog.products", len(catalog.Products)),
		attribute.Int("catalog.weeks", len(catalog.Weeks)),
	))
	defer span.End()

	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	data, err := writer.WriteWorkbook(BuildTemplateSheets(catalog, layout))
	if err != nil {
		config.LogError(config.GetLogger(), "templateWorkflow.go", "GenerateTemplate", "WriteWorkbook", nil, err)
		span.RecordError(err)
		return nil, err
	}
	return data, nil
}
