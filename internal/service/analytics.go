// Package service holds the pure business logic: derived financial
// aggregates, list filtering, and the order lifecycle. Everything here is
// side-effect-free and recomputed from the current snapshot on demand.
package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/restohub-rw/api/internal/domain"
	"github.com/restohub-rw/api/internal/enum"
)

var hundred = decimal.NewFromInt(100)

// BusinessTotals are the headline numbers on the owner dashboard.
type BusinessTotals struct {
	TotalRevenue decimal.Decimal
	TotalStaff   int
	ActiveUnits  int
	TotalUnits   int
}

// SummarizeBusinesses computes totals by direct summation over the snapshot.
// Pages must never cache these; they are cheap at dashboard scale.
func SummarizeBusinesses(units []domain.BusinessUnit) BusinessTotals {
	t := BusinessTotals{TotalRevenue: decimal.Zero}
	for _, u := range units {
		t.TotalRevenue = t.TotalRevenue.Add(u.Revenue)
		t.TotalStaff += u.StaffCount
		t.TotalUnits++
		if u.Status == enum.BusinessStatusActive {
			t.ActiveUnits++
		}
	}
	return t
}

// PeriodSummary is one aggregated month across all business units.
type PeriodSummary struct {
	Period        string
	Revenue       decimal.Decimal
	Expenses      decimal.Decimal
	Profit        decimal.Decimal
	Margin        decimal.Decimal // percent, 2dp
	GrowthRate    decimal.Decimal // percent vs previous period, 2dp
	OrderCount    int
	CustomerCount int
}

// SummarizeFinancials groups records by period (ascending) and derives
// margin and month-over-month growth. The first period has zero growth.
func SummarizeFinancials(records []domain.FinancialRecord) []PeriodSummary {
	byPeriod := make(map[string]*PeriodSummary)
	for _, r := range records {
		s, ok := byPeriod[r.Period]
		if !ok {
			s = &PeriodSummary{
				Period:   r.Period,
				Revenue:  decimal.Zero,
				Expenses: decimal.Zero,
				Profit:   decimal.Zero,
			}
			byPeriod[r.Period] = s
		}
		s.Revenue = s.Revenue.Add(r.Revenue)
		s.Expenses = s.Expenses.Add(r.Expenses)
		s.Profit = s.Profit.Add(r.Profit)
		s.OrderCount += r.OrderCount
		s.CustomerCount += r.CustomerCount
	}

	periods := make([]string, 0, len(byPeriod))
	for p := range byPeriod {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	out := make([]PeriodSummary, 0, len(periods))
	prevRevenue := decimal.Zero
	for i, p := range periods {
		s := *byPeriod[p]
		if s.Revenue.IsPositive() {
			s.Margin = s.Profit.Div(s.Revenue).Mul(hundred).Round(2)
		}
		if i > 0 && prevRevenue.IsPositive() {
			s.GrowthRate = s.Revenue.Sub(prevRevenue).Div(prevRevenue).Mul(hundred).Round(2)
		}
		prevRevenue = s.Revenue
		out = append(out, s)
	}
	return out
}
