package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AdminSummary is the headline numbers of the admin overview.
type AdminSummary struct {
	TotalUsers    int             `json:"totalUsers"`
	TotalSellers  int             `json:"totalSellers"`
	TotalStores   int             `json:"totalStores"`
	TotalProducts int             `json:"totalProducts"`
	TotalOrders   int             `json:"totalOrders"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

func (s *AdminSummary) UnmarshalJSON(b []byte) error {
	var w struct {
		TotalUsers    FlexInt             `json:"totalUsers"`
		Users         FlexInt             `json:"users"`
		TotalSellers  FlexInt             `json:"totalSellers"`
		TotalStores   FlexInt             `json:"totalStores"`
		TotalProducts FlexInt             `json:"totalProducts"`
		TotalOrders   FlexInt             `json:"totalOrders"`
		Orders        FlexInt             `json:"orders"`
		TotalRevenue  decimal.NullDecimal `json:"totalRevenue"`
		Revenue       decimal.NullDecimal `json:"revenue"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	s.TotalUsers = int(w.TotalUsers)
	if s.TotalUsers == 0 {
		s.TotalUsers = int(w.Users)
	}
	s.TotalSellers = int(w.TotalSellers)
	s.TotalStores = int(w.TotalStores)
	s.TotalProducts = int(w.TotalProducts)
	s.TotalOrders = int(w.TotalOrders)
	if s.TotalOrders == 0 {
		s.TotalOrders = int(w.Orders)
	}
	s.TotalRevenue = w.TotalRevenue.Decimal
	if !w.TotalRevenue.Valid {
		s.TotalRevenue = w.Revenue.Decimal
	}
	return nil
}

// DatedValue is one sample of a time series as sent by the API.
type DatedValue struct {
	Date  string
	Value decimal.Decimal
}

// ProductSales is one row of a best-sellers table.
type ProductSales struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

func (p *ProductSales) UnmarshalJSON(b []byte) error {
	var w struct {
		MongoID   json.RawMessage     `json:"_id"`
		ProductID json.RawMessage     `json:"productId"`
		Product   json.RawMessage     `json:"product"`
		Name      string              `json:"name"`
		Quantity  FlexInt             `json:"quantity"`
		Sold      FlexInt             `json:"totalSold"`
		Revenue   decimal.NullDecimal `json:"revenue"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	p.ProductID = firstID(w.ProductID, w.Product, w.MongoID)
	p.Name = w.Name
	p.Quantity = int(w.Quantity)
	if p.Quantity == 0 {
		p.Quantity = int(w.Sold)
	}
	p.Revenue = w.Revenue.Decimal
	return nil
}

// Analytics is the raw sales report of the admin dashboard or a store. The
// client reshapes it for charts and never aggregates it further.
type Analytics struct {
	Revenue      []DatedValue
	Orders       []DatedValue
	StatusCounts map[string]int
	TopProducts  []ProductSales
	TotalRevenue decimal.Decimal
	TotalOrders  int
	AverageOrder decimal.Decimal
}

func (a *Analytics) UnmarshalJSON(b []byte) error {
	var w struct {
		RevenueByDate  json.RawMessage     `json:"revenueByDate"`
		SalesByDate    json.RawMessage     `json:"salesByDate"`
		DailyRevenue   json.RawMessage     `json:"dailyRevenue"`
		OrdersByDate   json.RawMessage     `json:"ordersByDate"`
		DailyOrders    json.RawMessage     `json:"dailyOrders"`
		OrdersByStatus json.RawMessage     `json:"ordersByStatus"`
		StatusCounts   json.RawMessage     `json:"statusCounts"`
		TopProducts    []ProductSales      `json:"topProducts"`
		TotalRevenue   decimal.NullDecimal `json:"totalRevenue"`
		TotalOrders    FlexInt             `json:"totalOrders"`
		AverageOrder   decimal.NullDecimal `json:"averageOrderValue"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	a.Revenue = decodeSeries(w.RevenueByDate, w.SalesByDate, w.DailyRevenue)
	a.Orders = decodeSeries(w.OrdersByDate, w.DailyOrders)
	a.StatusCounts = decodeCounts(w.OrdersByStatus, w.StatusCounts)
	a.TopProducts = w.TopProducts
	if a.TopProducts == nil {
		a.TopProducts = []ProductSales{}
	}
	a.TotalRevenue = w.TotalRevenue.Decimal
	a.TotalOrders = int(w.TotalOrders)
	a.AverageOrder = w.AverageOrder.Decimal
	return nil
}

// decodeSeries accepts a date->value object or an array of
// {date|_id, value|revenue|total|count} rows. The first non-empty candidate
// wins; the result is never nil.
func decodeSeries(candidates ...json.RawMessage) []DatedValue {
	for _, raw := range candidates {
		if isEmptyJSON(raw) {
			continue
		}

		var byDate map[string]decimal.Decimal
		if err := json.Unmarshal(raw, &byDate); err == nil {
			out := make([]DatedValue, 0, len(byDate))
			for d, v := range byDate {
				out = append(out, DatedValue{Date: d, Value: v})
			}
			return out
		}

		var rows []struct {
			Date    string              `json:"date"`
			ID      string              `json:"_id"`
			Value   decimal.NullDecimal `json:"value"`
			Revenue decimal.NullDecimal `json:"revenue"`
			Total   decimal.NullDecimal `json:"total"`
			Count   decimal.NullDecimal `json:"count"`
		}
		if err := json.Unmarshal(raw, &rows); err == nil {
			out := make([]DatedValue, 0, len(rows))
			for _, r := range rows {
				d := r.Date
				if d == "" {
					d = r.ID
				}
				v := r.Value
				for _, alt := range []decimal.NullDecimal{r.Revenue, r.Total, r.Count} {
					if !v.Valid {
						v = alt
					}
				}
				out = append(out, DatedValue{Date: d, Value: v.Decimal})
			}
			return out
		}
	}
	return []DatedValue{}
}

// decodeCounts accepts a status->count object or an array of
// {status|_id, count} rows.
func decodeCounts(candidates ...json.RawMessage) map[string]int {
	for _, raw := range candidates {
		if isEmptyJSON(raw) {
			continue
		}

		var byStatus map[string]FlexInt
		if err := json.Unmarshal(raw, &byStatus); err == nil {
			out := make(map[string]int, len(byStatus))
			for k, v := range byStatus {
				out[k] = int(v)
			}
			return out
		}

		var rows []struct {
			Status string  `json:"status"`
			ID     string  `json:"_id"`
			Count  FlexInt `json:"count"`
		}
		if err := json.Unmarshal(raw, &rows); err == nil {
			out := make(map[string]int, len(rows))
			for _, r := range rows {
				k := r.Status
				if k == "" {
					k = r.ID
				}
				out[k] += int(r.Count)
			}
			return out
		}
	}
	return map[string]int{}
}
