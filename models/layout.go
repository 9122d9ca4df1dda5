package models

import "fmt"

// SheetLayout is the workbook contract: sheet names, column headers and the
// labels used when rendering a report. It is fixed per deployment.
type SheetLayout struct {
	Locale string `json:"locale"`

	StockSheet           string `json:"stockSheet"`
	StockProductColumn   string `json:"stockProductColumn"`
	StockQuantityColumn  string `json:"stockQuantityColumn"`
	HistorySheet         string `json:"historySheet"`
	HistoryWeekColumn    string `json:"historyWeekColumn"`
	HistoryProductColumn string `json:"historyProductColumn"`
	UniversityColumn     string `json:"universityColumn"`
	ClinicColumn         string `json:"clinicColumn"`

	Weeks []string `json:"weeks"`

	Labels ReportLabels `json:"labels"`
}

type ReportLabels struct {
	Title             string `json:"title"`
	StepDownload      string `json:"stepDownload"`
	DownloadButton    string `json:"downloadButton"`
	DownloadHint      string `json:"downloadHint"`
	StepUpload        string `json:"stepUpload"`
	ActivityCount     string `json:"activityCount"`
	UploadPrompt      string `json:"uploadPrompt"`
	AnalyzeButton     string `json:"analyzeButton"`
	ReportTitle       string `json:"reportTitle"`
	ProductHeader     string `json:"productHeader"`
	CurrentHeader     string `json:"currentHeader"`
	TargetHeader      string `json:"targetHeader"`
	StatusHeader      string `json:"statusHeader"`
	OrderHeader       string `json:"orderHeader"`
	StatusOK          string `json:"statusOk"`
	StatusShortage    string `json:"statusShortage"`
	ShortageSummary   string `json:"shortageSummary"`
	TemplateErrorHint string `json:"templateErrorHint"`
	ReportSheet       string `json:"reportSheet"`
}

var layoutKo = SheetLayout{
	Locale:               "ko",
	StockSheet:           "현재재고",
	StockProductColumn:   "제품명",
	StockQuantityColumn:  "현재수량",
	HistorySheet:         "샘플링실적",
	HistoryWeekColumn:    "주차",
	HistoryProductColumn: "제품명",
	UniversityColumn:     "대학병원샘플링",
	ClinicColumn:         "클리닉샘플링",
	Weeks:                []string{"1주차", "2주차", "3주차"},
	Labels: ReportLabels{
		Title:             "📦 제품군별 재고 관리 시스템",
		StepDownload:      "📌 단계 1: 양식 다운로드 및 작성",
		DownloadButton:    "📥 엑셀 템플릿 받기",
		DownloadHint:      "버튼을 눌러 엑셀을 받고 내용을 채워주세요.",
		StepUpload:        "📌 단계 2: 정보 입력 및 파일 업로드",
		ActivityCount:     "이번 달 예정 학회 건수 (숫자만 입력)",
		UploadPrompt:      "작성 완료된 엑셀 파일을 업로드하세요",
		AnalyzeButton:     "분석하기",
		ReportTitle:       "📊 최종 분석 리포트",
		ProductHeader:     "제품명",
		CurrentHeader:     "현재 재고",
		TargetHeader:      "적정 재고",
		StatusHeader:      "상태",
		OrderHeader:       "필요 발주량",
		StatusOK:          "✅ 정상",
		StatusShortage:    "🚨 재고 부족",
		ShortageSummary:   "총 %d개 품목의 재고가 부족합니다. 발주가 필요합니다.",
		TemplateErrorHint: "오류가 발생했습니다. 템플릿 양식(시트 이름, 컬럼명)을 확인해 주세요",
		ReportSheet:       "분석리포트",
	},
}

var layoutEn = SheetLayout{
	Locale:               "en",
	StockSheet:           "Current Stock",
	StockProductColumn:   "Product",
	StockQuantityColumn:  "Quantity",
	HistorySheet:         "Sampling History",
	HistoryWeekColumn:    "Week",
	HistoryProductColumn: "Product",
	UniversityColumn:     "University Samples",
	ClinicColumn:         "Clinic Samples",
	Weeks:                []string{"Week 1", "Week 2", "Week 3"},
	Labels: ReportLabels{
		Title:             "📦 Product Inventory Planner",
		StepDownload:      "📌 Step 1: download and fill in the template",
		DownloadButton:    "📥 Download Excel template",
		DownloadHint:      "Download the workbook and fill in current stock and sampling history.",
		StepUpload:        "📌 Step 2: enter activity and upload",
		ActivityCount:     "Conferences planned this month",
		UploadPrompt:      "Upload the completed workbook",
		AnalyzeButton:     "Analyze",
		ReportTitle:       "📊 Stock Analysis Report",
		ProductHeader:     "Product",
		CurrentHeader:     "Current Stock",
		TargetHeader:      "Target Stock",
		StatusHeader:      "Status",
		OrderHeader:       "Order Quantity",
		StatusOK:          "✅ OK",
		StatusShortage:    "🚨 Shortage",
		ShortageSummary:   "%d products are below target. An order is needed.",
		TemplateErrorHint: "Something went wrong. Check that the template's sheet and column names were not changed",
		ReportSheet:       "Report",
	},
}

func LayoutFor(locale string) (SheetLayout, error) {
	switch locale {
	case "", "ko":
		return layoutKo, nil
	case "en":
		return layoutEn, nil
	}
	return SheetLayout{}, fmt.Errorf("unknown sheet layout %q", locale)
}

func (l SheetLayout) StatusLabel(s Status) string {
	if s == StatusShortage {
		return l.Labels.StatusShortage
	}
	return l.Labels.StatusOK
}

func (l SheetLayout) ShortageMessage(count int) string {
	return fmt.Sprintf(l.Labels.ShortageSummary, count)
}
