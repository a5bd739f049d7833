package kpi

import (
	"sort"

	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
)

const UnknownBreakdownValue = "unknown"

// AggregateBreakdowns consolida linhas de breakdown por breakdown_value_key, ordenadas por investimento.
// ROAS fica nulo quando nenhuma linha do valor trouxe receita.
func (a *Aggregator) AggregateBreakdowns(rows []domain.RawMetricRow) []domain.BreakdownKPI {
	byKey := make(map[string]*domain.BreakdownKPI)
	hasRevenue := make(map[string]bool)
	order := make([]string, 0)

	for _, row := range rows {
		key := UnknownBreakdownValue
		if row.BreakdownValueKey != nil && *row.BreakdownValueKey != "" {
			key = *row.BreakdownValueKey
		}

		item, ok := byKey[key]
		if !ok {
			item = &domain.BreakdownKPI{BreakdownValueKey: key}
			byKey[key] = item
			order = append(order, key)
		}

		item.Impressions += row.Impressions
		item.Clicks += row.Clicks
		item.Spend += finite(row.Spend)
		item.Conversions += a.resolver.Resolve(row.ExtraMetrics, row.Conversions).Value
		if amount, ok := a.rowRevenue(row); ok {
			item.ConversionValue += amount
			hasRevenue[key] = true
		}
	}

	result := make([]domain.BreakdownKPI, 0, len(order))
	for _, key := range order {
		item := *byKey[key]
		item.CTR = ratio(float64(item.Clicks)*100, float64(item.Impressions))
		item.CPC = ratio(item.Spend, float64(item.Clicks))
		item.CPA = ratio(item.Spend, item.Conversions)
		if hasRevenue[key] {
			item.Roas = ratio(item.ConversionValue, item.Spend)
		}
		result = append(result, item)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Spend > result[j].Spend
	})

	return result
}
