package workflow

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/stock_planner/config"
	"bitbucket.org/mmdatafocus/stock_planner/models"
	"bitbucket.org/mmdatafocus/stock_planner/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RunAnalysis reads the stock and sampling sheets from an uploaded workbook
// and computes the stock plan. Every failure is returned as a
// *utils.TemplateFormatError; a report is never partially built.
func RunAnalysis(ctx context.Context, reader TableReader, data []byte, activityCount int64, catalog models.Catalog, layout models.SheetLayout) (*models.StockPlanReport, error) {
	ctx, span := tracer.Start(ctx, "workflow.RunAnalysis", trace.WithAttributes(
		attribute.Int64("analysis.activity_count", activityCount),
		attribute.Int("analysis.upload_bytes", len(data)),
	))
	defer span.End()

	report, err := runAnalysis(reader, data, activityCount, catalog, layout)
	if err != nil {
		cid, _ := utils.GetCorrelationIdFromContext(ctx)
		config.GetLogger().WithFields(logrus.Fields{
			"module":         "analysisWorkflow.go",
			"funcName":       "RunAnalysis",
			"correlation_id": cid,
		}).Debug(err.Error())
		span.RecordError(err)
		span.SetStatus(codes.Error, "template format error")
		return nil, utils.NewTemplateFormatError(err)
	}
	span.SetAttributes(
		attribute.Int("analysis.results", len(report.Results)),
		attribute.Int("analysis.shortages", report.ShortageCount),
	)
	return report, nil
}

func runAnalysis(reader TableReader, data []byte, activityCount int64, catalog models.Catalog, layout models.SheetLayout) (*models.StockPlanReport, error) {
	if len(catalog.Products) == 0 {
		return nil, utils.ErrEmptyCatalog
	}

	stockTable, err := reader.ReadTable(data, layout.StockSheet)
	if err != nil {
		return nil, err
	}
	historyTable, err := reader.ReadTable(data, layout.HistorySheet)
	if err != nil {
		return nil, err
	}

	stock, err := ParseStockTable(stockTable, layout, catalog)
	if err != nil {
		return nil, err
	}
	history, err := ParseHistoryTable(historyTable, layout, catalog)
	if err != nil {
		return nil, err
	}

	results := models.Analyze(stock, history, activityCount, catalog)
	return models.NewStockPlanReport(activityCount, results), nil
}

// ParseStockTable converts stock rows of catalog products into records.
// Rows for other products are ignored without inspecting their values.
func ParseStockTable(table *models.Table, layout models.SheetLayout, catalog models.Catalog) ([]models.StockRecord, error) {
	productIdx, err := table.ColumnIndex(layout.StockProductColumn)
	if err != nil {
		return nil, err
	}
	qtyIdx, err := table.ColumnIndex(layout.StockQuantityColumn)
	if err != nil {
		return nil, err
	}

	var records []models.StockRecord
	for i, row := range table.Rows {
		if models.IsBlankRow(row) {
			continue
		}
		product := models.Cell(row, productIdx)
		if product == "" || !catalog.Contains(product) {
			continue
		}
		qty, err := utils.ParseQuantity(models.Cell(row, qtyIdx))
		if err != nil {
			return nil, fmt.Errorf("sheet %q row %d: %w", table.Name, i+2, err)
		}
		records = append(records, models.StockRecord{
			ProductName:     product,
			CurrentQuantity: qty,
		})
	}
	return records, nil
}

// ParseHistoryTable converts sampling rows of catalog products into records.
func ParseHistoryTable(table *models.Table, layout models.SheetLayout, catalog models.Catalog) ([]models.SamplingRecord, error) {
	weekIdx, err := table.ColumnIndex(layout.HistoryWeekColumn)
	if err != nil {
		return nil, err
	}
	productIdx, err := table.ColumnIndex(layout.HistoryProductColumn)
	if err != nil {
		return nil, err
	}
	uniIdx, err := table.ColumnIndex(layout.UniversityColumn)
	if err != nil {
		return nil, err
	}
	clinicIdx, err := table.ColumnIndex(layout.ClinicColumn)
	if err != nil {
		return nil, err
	}

	var records []models.SamplingRecord
	for i, row := range table.Rows {
		if models.IsBlankRow(row) {
			continue
		}
		product := models.Cell(row, productIdx)
		if product == "" || !catalog.Contains(product) {
			continue
		}
		uni, err := parseOptionalCount(models.Cell(row, uniIdx))
		if err != nil {
			return nil, fmt.Errorf("sheet %q row %d: %w", table.Name, i+2, err)
		}
		clinic, err := parseOptionalCount(models.Cell(row, clinicIdx))
		if err != nil {
			return nil, fmt.Errorf("sheet %q row %d: %w", table.Name, i+2, err)
		}
		records = append(records, models.SamplingRecord{
			Week:            models.Cell(row, weekIdx),
			ProductName:     product,
			UniversityCount: uni,
			ClinicCount:     clinic,
		})
	}
	return records, nil
}

func parseOptionalCount(raw string) (*decimal.Decimal, error) {
	d, ok, err := utils.ParseCount(raw)
	if err != nil || !ok {
		return nil, err
	}
	return &d, nil
}
