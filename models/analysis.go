package models

import (
	"math"

	"github.com/shopspring/decimal"
)

var maxTarget = decimal.NewFromInt(math.MaxInt64)

type channelTotals struct {
	sum   decimal.Decimal
	count int64
}

func (c *channelTotals) add(v *decimal.Decimal) {
	if v == nil {
		return
	}
	c.sum = c.sum.Add(*v)
	c.count++
}

func (c channelTotals) mean() decimal.Decimal {
	if c.count == 0 {
		return decimal.Zero
	}
	return c.sum.Div(decimal.NewFromInt(c.count))
}

// targetFromTotals evaluates
//
//	trunc(activity*400 + mean(university)*4 + mean(clinic)*4)
//
// over a common denominator so the only division is a single integer QuoRem.
// Targets beyond int64 saturate at math.MaxInt64.
func targetFromTotals(activityCount int64, university, clinic channelTotals) int64 {
	if activityCount < 0 {
		activityCount = 0
	}
	du := decimal.NewFromInt(max(university.count, 1))
	dc := decimal.NewFromInt(max(clinic.count, 1))
	perSample := decimal.NewFromInt(StockPerSample)

	activity := decimal.NewFromInt(activityCount).Mul(decimal.NewFromInt(StockPerActivity))
	num := activity.Mul(du).Mul(dc).
		Add(university.sum.Mul(perSample).Mul(dc)).
		Add(clinic.sum.Mul(perSample).Mul(du))
	q, _ := num.QuoRem(du.Mul(dc), 0)
	if q.GreaterThan(maxTarget) {
		return math.MaxInt64
	}
	return q.IntPart()
}

// TargetQuantity is the target stock level for one product. Empty count
// slices contribute a mean of zero.
func TargetQuantity(activityCount int64, universityCounts, clinicCounts []decimal.Decimal) int64 {
	var u, c channelTotals
	for i := range universityCounts {
		u.add(&universityCounts[i])
	}
	for i := range clinicCounts {
		c.add(&clinicCounts[i])
	}
	return targetFromTotals(activityCount, u, c)
}

// Analyze joins stock and sampling rows on product name and returns one
// result per catalog product that has a stock row, in catalog order.
// Products without a stock row are skipped.
func Analyze(stock []StockRecord, history []SamplingRecord, activityCount int64, catalog Catalog) []*AnalysisResult {
	current := make(map[string]int64, len(stock))
	for _, s := range stock {
		if _, seen := current[s.ProductName]; seen {
			continue
		}
		current[s.ProductName] = s.CurrentQuantity
	}

	type totals struct {
		university channelTotals
		clinic     channelTotals
		rows       int
	}
	byProduct := make(map[string]*totals)
	for i := range history {
		h := &history[i]
		t, ok := byProduct[h.ProductName]
		if !ok {
			t = &totals{}
			byProduct[h.ProductName] = t
		}
		t.university.add(h.UniversityCount)
		t.clinic.add(h.ClinicCount)
		t.rows++
	}

	results := make([]*AnalysisResult, 0, len(catalog.Products))
	for _, product := range catalog.Products {
		qty, ok := current[product]
		if !ok {
			continue
		}
		t := byProduct[product]
		if t == nil {
			t = &totals{}
		}
		target := targetFromTotals(activityCount, t.university, t.clinic)
		results = append(results, &AnalysisResult{
			ProductName:           product,
			CurrentQuantity:       qty,
			TargetQuantity:        target,
			Status:                StatusOf(qty, target),
			RequiredOrderQuantity: RequiredOrder(qty, target),
			UniversityMean:        t.university.mean(),
			ClinicMean:            t.clinic.mean(),
			SamplingWeeks:         t.rows,
		})
	}
	return results
}

func NewStockPlanReport(activityCount int64, results []*AnalysisResult) *StockPlanReport {
	shortages := 0
	for _, r := range results {
		if r.RequiredOrderQuantity > 0 {
			shortages++
		}
	}
	return &StockPlanReport{
		ActivityCount: activityCount,
		Results:       results,
		ShortageCount: shortages,
	}
}
