package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"strconv"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/stock_planner/config"
	"bitbucket.org/mmdatafocus/stock_planner/middlewares"
	"bitbucket.org/mmdatafocus/stock_planner/models"
	"bitbucket.org/mmdatafocus/stock_planner/models/reports"
	"bitbucket.org/mmdatafocus/stock_planner/spreadsheet"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/xuri/excelize/v2"
)

func testSettings() *config.Settings {
	return &config.Settings{
		Port:             "8080",
		GoEnv:            "test",
		MaxUploadBytes:   1 << 20,
		TemplateFilename: "inventory_template.xlsx",
		SheetLayout:      "ko",
		CatalogPreset:    "basic",
	}
}

func testRouter(t *testing.T) (*App, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := newApp(testSettings())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	r, err := newRouter(app, nil)
	if err != nil {
		t.Fatalf("newRouter: %v", err)
	}
	return app, r
}

func downloadTemplate(t *testing.T, r *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/template", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /template status %d", w.Code)
	}
	return w
}

// filledWorkbook fills the basic catalog template:
// product 0 has 100 in stock and 10/20/30 university samples,
// product 1 has 500 in stock, product 2 is left at 0.
func filledWorkbook(t *testing.T, app *App, r *gin.Engine) []byte {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(downloadTemplate(t, r).Body.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	stock := app.Layout.StockSheet
	history := app.Layout.HistorySheet
	_ = f.SetCellValue(stock, "B2", 100)
	_ = f.SetCellValue(stock, "B3", 500)
	for w, v := range []int{10, 20, 30} {
		_ = f.SetCellValue(history, fmt.Sprintf("C%d", 2+w), v)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

func uploadRequest(t *testing.T, path, activity, filename string, data []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if err := mw.WriteField("activityCount", activity); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	if data != nil {
		part, err := mw.CreateFormFile(uploadField, filename)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		_, _ = part.Write(data)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestTemplateDownload(t *testing.T) {
	app, r := testRouter(t)
	w := downloadTemplate(t, r)

	if ct := w.Header().Get("Content-Type"); ct != spreadsheet.MimeTypeXlsx {
		t.Fatalf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="inventory_template.xlsx"`) {
		t.Fatalf("Content-Disposition = %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != app.Layout.StockSheet || sheets[1] != app.Layout.HistorySheet {
		t.Fatalf("sheets = %v", sheets)
	}
	rows, err := f.GetRows(app.Layout.HistorySheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if want := 1 + len(app.Catalog.Products)*len(app.Catalog.Weeks); len(rows) != want {
		t.Fatalf("history rows = %d, want %d", len(rows), want)
	}
}

func TestAnalyzePage_RendersHighlightedReport(t *testing.T) {
	app, r := testRouter(t)
	data := filledWorkbook(t, app, r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/analyze", "1", "filled.xlsx", data))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if got := strings.Count(body, `class="shortage"`); got != 2 {
		t.Fatalf("shortage rows = %d, want 2", got)
	}
	if !strings.Contains(body, app.Layout.ShortageMessage(2)) {
		t.Fatalf("summary missing from page")
	}
	for _, want := range []string{"<td>480</td>", "<td>380</td>", "<td>400</td>"} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %s", want)
		}
	}
	if strings.Contains(body, `class="error"`) {
		t.Fatalf("unexpected error banner")
	}
}

func TestAnalyzePage_RenamedSheetShowsOneError(t *testing.T) {
	app, r := testRouter(t)
	f, err := excelize.OpenReader(bytes.NewReader(filledWorkbook(t, app, r)))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	if err := f.SetSheetName(app.Layout.StockSheet, "Sheet9"); err != nil {
		t.Fatalf("SetSheetName: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	f.Close()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/analyze", "1", "filled.xlsx", buf.Bytes()))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d", w.Code)
	}
	body := w.Body.String()
	if strings.Count(body, `class="error"`) != 1 || !strings.Contains(body, app.Layout.Labels.TemplateErrorHint) {
		t.Fatalf("expected a single template error message")
	}
	if strings.Contains(body, "<table") {
		t.Fatalf("no report expected on failure")
	}
}

func TestAnalyzePage_RejectsBadRequests(t *testing.T) {
	app, r := testRouter(t)
	data := filledWorkbook(t, app, r)

	cases := []struct {
		name     string
		activity string
		filename string
		data     []byte
	}{
		{name: "negative activity", activity: "-1", filename: "filled.xlsx", data: data},
		{name: "non numeric activity", activity: "many", filename: "filled.xlsx", data: data},
		{name: "missing file", activity: "1"},
		{name: "wrong extension", activity: "1", filename: "filled.csv", data: data},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, uploadRequest(t, "/analyze", tc.activity, tc.filename, tc.data))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status %d, want 400", w.Code)
			}
			if strings.Contains(w.Body.String(), "<table") {
				t.Fatalf("no report expected")
			}
		})
	}
}

func TestAnalyzePage_OversizeUpload(t *testing.T) {
	app, r := testRouter(t)
	app.Settings.MaxUploadBytes = 16

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/analyze", "0", "big.xlsx", bytes.Repeat([]byte{'x'}, 64)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

func TestAPIAnalyze(t *testing.T) {
	app, r := testRouter(t)
	data := filledWorkbook(t, app, r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/api/analyze", "1", "filled.xlsx", data))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data reports.StockPlanReportResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if resp.Data.ShortageCount != 2 || len(resp.Data.Rows) != 3 {
		t.Fatalf("shortages=%d rows=%d", resp.Data.ShortageCount, len(resp.Data.Rows))
	}
	first := resp.Data.Rows[0]
	if first.ProductName != app.Catalog.Products[0] || first.TargetQuantity != 480 || first.RequiredOrderQuantity != 380 || !first.Highlight {
		t.Fatalf("first row = %+v", first)
	}
	if second := resp.Data.Rows[1]; second.Status != "OK" || second.RequiredOrderQuantity != 0 {
		t.Fatalf("second row = %+v", second)
	}
}

func TestAPIAnalyze_TemplateError(t *testing.T) {
	_, r := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/api/analyze", "1", "broken.xlsx", []byte("not a workbook")))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := resp["data"]; ok {
		t.Fatalf("no data expected on failure")
	}
	if msg, _ := resp["error"].(string); msg == "" {
		t.Fatalf("error message missing")
	}
}

func TestAPIExport(t *testing.T) {
	app, r := testRouter(t)
	data := filledWorkbook(t, app, r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/api/analyze/export", "1", "filled.xlsx", data))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(app.Layout.Labels.ReportSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) < 4 || rows[1][0] != app.Catalog.Products[0] {
		t.Fatalf("rows = %v", rows)
	}
}

func TestMiscRoutes(t *testing.T) {
	_, r := testRouter(t)

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusNoContent},
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/api/catalog", http.StatusOK},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != tc.want {
			t.Fatalf("%s %s status %d, want %d", tc.method, tc.path, w.Code, tc.want)
		}
		if w.Header().Get("X-Correlation-Id") == "" {
			t.Fatalf("%s %s missing correlation id", tc.method, tc.path)
		}
	}
}

func TestAnalyzePage_ActivityCountUpperBound(t *testing.T) {
	app, r := testRouter(t)
	data := filledWorkbook(t, app, r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/api/analyze", strconv.Itoa(models.MaxActivityCount), "filled.xlsx", data))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d at the bound: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/api/analyze", strconv.Itoa(models.MaxActivityCount+1), "filled.xlsx", data))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d above the bound, want 400", w.Code)
	}
}

func TestRouter_LogsRateLimiterErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := newApp(testSettings())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })

	r, err := newRouter(app, middlewares.NewRateLimiter(client, 10, time.Minute))
	if err != nil {
		t.Fatalf("newRouter: %v", err)
	}
	hook := logtest.NewLocal(config.GetLogger())
	t.Cleanup(func() { config.GetLogger().ReplaceHooks(make(logrus.LevelHooks)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", w.Code)
	}
	var logged bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel && e.Data["path"] == "/" {
			logged = true
		}
	}
	if !logged {
		t.Fatalf("rate limiter error was not logged")
	}
}
