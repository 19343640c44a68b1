// Package analytics reshapes sales reports into chart series.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/domain"
)

// DefaultTopN is the number of best sellers shown when the caller asks for none.
const DefaultTopN = 5

var dateLayouts = []string{time.DateOnly, time.RFC3339, "2006-01", "01/02/2006"}

// Point is one labelled value of a chart series.
type Point struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// StatusCount is one bar of the order status breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Report is a sales report ready to chart. Totals are passed through from the
// server as is.
type Report struct {
	Revenue      []Point               `json:"revenue"`
	Orders       []Point               `json:"orders"`
	Statuses     []StatusCount         `json:"statuses"`
	TopProducts  []domain.ProductSales `json:"topProducts"`
	TotalRevenue decimal.Decimal       `json:"totalRevenue"`
	TotalOrders  int                   `json:"totalOrders"`
	AverageOrder decimal.Decimal       `json:"averageOrder"`
}

// Build reshapes a raw report, keeping at most topN best sellers.
func Build(a domain.Analytics, topN int) Report {
	return Report{
		Revenue:      Series(a.Revenue),
		Orders:       Series(a.Orders),
		Statuses:     Breakdown(a.StatusCounts),
		TopProducts:  Top(a.TopProducts, topN),
		TotalRevenue: a.TotalRevenue,
		TotalOrders:  a.TotalOrders,
		AverageOrder: a.AverageOrder,
	}
}

// Series orders samples chronologically. Labels that are not dates sort after
// dates, alphabetically.
func Series(values []domain.DatedValue) []Point {
	type keyed struct {
		p  Point
		at time.Time
		ok bool
	}
	rows := make([]keyed, 0, len(values))
	for _, v := range values {
		at, ok := parseDate(v.Date)
		rows = append(rows, keyed{p: Point{Label: v.Date, Value: v.Value}, at: at, ok: ok})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch {
		case a.ok && b.ok && !a.at.Equal(b.at):
			return a.at.Before(b.at)
		case a.ok != b.ok:
			return a.ok
		default:
			return a.p.Label < b.p.Label
		}
	})

	out := make([]Point, len(rows))
	for i, r := range rows {
		out[i] = r.p
	}
	return out
}

// Breakdown lists status counts, largest first.
func Breakdown(counts map[string]int) []StatusCount {
	out := make([]StatusCount, 0, len(counts))
	for s, n := range counts {
		out = append(out, StatusCount{Status: s, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out
}

// Top returns the n best sellers by quantity, then revenue. A non-positive n
// means DefaultTopN.
func Top(rows []domain.ProductSales, n int) []domain.ProductSales {
	if n <= 0 {
		n = DefaultTopN
	}
	out := make([]domain.ProductSales, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
