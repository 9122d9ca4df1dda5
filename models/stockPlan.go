package models

import "github.com/shopspring/decimal"

type Status string

const (
	StatusOK       Status = "OK"
	StatusShortage Status = "SHORTAGE"
)

// Units of target stock per planned conference and per average weekly sample.
const (
	StockPerActivity = 400
	StockPerSample   = 4

	// MaxActivityCount bounds the planned conference count accepted from users.
	MaxActivityCount = 100000
)

type StockRecord struct {
	ProductName     string `json:"productName"`
	CurrentQuantity int64  `json:"currentQuantity"`
}

// SamplingRecord is one week of samples for a product. A nil count means the
// cell was blank and does not take part in that channel's mean.
type SamplingRecord struct {
	Week            string           `json:"week"`
	ProductName     string           `json:"productName"`
	UniversityCount *decimal.Decimal `json:"universityCount"`
	ClinicCount     *decimal.Decimal `json:"clinicCount"`
}

type AnalysisResult struct {
	ProductName           string          `json:"productName"`
	CurrentQuantity       int64           `json:"currentQuantity"`
	TargetQuantity        int64           `json:"targetQuantity"`
	Status                Status          `json:"status"`
	RequiredOrderQuantity int64           `json:"requiredOrderQuantity"`
	UniversityMean        decimal.Decimal `json:"universityMean"`
	ClinicMean            decimal.Decimal `json:"clinicMean"`
	SamplingWeeks         int             `json:"samplingWeeks"`
}

type StockPlanReport struct {
	ActivityCount int64             `json:"activityCount"`
	Results       []*AnalysisResult `json:"results"`
	ShortageCount int               `json:"shortageCount"`
}

func StatusOf(current, target int64) Status {
	if current >= target {
		return StatusOK
	}
	return StatusShortage
}

func RequiredOrder(current, target int64) int64 {
	if target > current {
		return target - current
	}
	return 0
}
