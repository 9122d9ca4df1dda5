package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"bitbucket.org/mmdatafocus/stock_planner/config"
	"bitbucket.org/mmdatafocus/stock_planner/models"
	"bitbucket.org/mmdatafocus/stock_planner/models/reports"
	"bitbucket.org/mmdatafocus/stock_planner/spreadsheet"
	"bitbucket.org/mmdatafocus/stock_planner/utils"
	"bitbucket.org/mmdatafocus/stock_planner/web"
	"bitbucket.org/mmdatafocus/stock_planner/workflow"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const reportExportFilename = "stock_report.xlsx"

type analyzeForm struct {
	ActivityCount int64 `form:"activityCount" binding:"min=0,max=100000"`
}

type pageData struct {
	Locale           string
	Labels           models.ReportLabels
	TemplateFilename string
	ActivityCount    int64
	Report           *reports.StockPlanReportResponse
	Error            string
}

func (a *App) page() pageData {
	return pageData{
		Locale:           a.Layout.Locale,
		Labels:           a.Layout.Labels,
		TemplateFilename: a.Settings.TemplateFilename,
	}
}

// analysisMessage is the single user-facing message for a failed analysis.
func (a *App) analysisMessage(err error) string {
	var formatErr *utils.TemplateFormatError
	if errors.As(err, &formatErr) && formatErr.Cause != nil {
		return fmt.Sprintf("%s: %v", a.Layout.Labels.TemplateErrorHint, formatErr.Cause)
	}
	return fmt.Sprintf("%s: %v", a.Layout.Labels.TemplateErrorHint, err)
}

func indexHandler(a *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, web.IndexTemplate, a.page())
	}
}

func templateDownloadHandler(a *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()
		cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())

		data, err := workflow.GenerateTemplate(c.Request.Context(), a.Workbook, a.Catalog, a.Layout)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate template"})
			return
		}

		logger.WithFields(logrus.Fields{
			"products":       len(a.Catalog.Products),
			"size":           len(data),
			"correlation_id": cid,
		}).Info("[template.download]")

		attachment(c, a.Settings.TemplateFilename)
		c.Data(http.StatusOK, spreadsheet.MimeTypeXlsx, data)
	}
}

// analyzePageHandler renders the report (or one error message) below the form.
func analyzePageHandler(a *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := a.page()

		var form analyzeForm
		if err := c.ShouldBind(&form); err != nil {
			data.Error = fmt.Sprintf("%s: %v", a.Layout.Labels.ActivityCount, err)
			c.HTML(http.StatusBadRequest, web.IndexTemplate, data)
			return
		}
		data.ActivityCount = form.ActivityCount

		report, status, err := a.analyze(c, form.ActivityCount)
		if err != nil {
			data.Error = err.Error()
			c.HTML(status, web.IndexTemplate, data)
			return
		}
		data.Report = report
		c.HTML(http.StatusOK, web.IndexTemplate, data)
	}
}

func apiAnalyzeHandler(a *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form analyzeForm
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "fields": utils.ProcessValidationErrors(err)})
			return
		}
		report, status, err := a.analyze(c, form.ActivityCount)
		if err != nil {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": report})
	}
}

func apiExportHandler(a *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form analyzeForm
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "fields": utils.ProcessValidationErrors(err)})
			return
		}
		report, status, err := a.analyze(c, form.ActivityCount)
		if err != nil {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		data, err := reports.ExportStockPlanExcel(a.Workbook, report, a.Layout)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export report"})
			return
		}
		attachment(c, reportExportFilename)
		c.Data(http.StatusOK, spreadsheet.MimeTypeXlsx, data)
	}
}

func apiCatalogHandler(a *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{
			"catalog": a.Catalog,
			"layout":  a.Layout,
		}})
	}
}

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

// analyze reads the upload and runs the analysis. The returned error is
// already phrased for the user.
func (a *App) analyze(c *gin.Context, activityCount int64) (*reports.StockPlanReportResponse, int, error) {
	logger := config.GetLogger()
	ctx := c.Request.Context()
	cid, _ := utils.GetCorrelationIdFromContext(ctx)

	upload, err := readUpload(c, a.Settings.MaxUploadBytes)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	report, err := workflow.RunAnalysis(ctx, a.Workbook, upload, activityCount, a.Catalog, a.Layout)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"activity_count": activityCount,
			"size":           len(upload),
			"correlation_id": cid,
		}).Warn("[analysis.error] " + err.Error())
		return nil, http.StatusUnprocessableEntity, errors.New(a.analysisMessage(err))
	}

	logger.WithFields(logrus.Fields{
		"activity_count": activityCount,
		"results":        len(report.Results),
		"shortages":      report.ShortageCount,
		"correlation_id": cid,
	}).Info("[analysis.run]")

	return reports.GetStockPlanReport(report, a.Layout), http.StatusOK, nil
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", filename, url.PathEscape(filename)))
}
