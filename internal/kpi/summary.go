package kpi

import (
	"sort"

	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
)

// Summarize consolida os KPIs por campanha. O rótulo geral só é mantido quando todas as
// campanhas compartilham o mesmo; caso contrário vira Resultados.
func Summarize(kpis []domain.AggregatedKPI) domain.KPISummary {
	summary := domain.KPISummary{
		ResultLabel: domain.ResultLabelResultados,
		ByObjective: []domain.ObjectiveSummary{},
	}

	var (
		revenue      float64
		revenueSpend float64
		hasRevenue   bool
		byLabel      = make(map[domain.ResultLabel]*objectiveTotals)
		labels       = make([]domain.ResultLabel, 0)
	)

	for i, kpi := range kpis {
		summary.TotalSpend += kpi.Spend
		summary.TotalResults += kpi.ResultValue

		if i == 0 {
			summary.ResultLabel = kpi.ResultLabel
		} else if summary.ResultLabel != kpi.ResultLabel {
			summary.ResultLabel = domain.ResultLabelResultados
		}

		totals, ok := byLabel[kpi.ResultLabel]
		if !ok {
			totals = &objectiveTotals{summary: domain.ObjectiveSummary{ResultLabel: kpi.ResultLabel}}
			byLabel[kpi.ResultLabel] = totals
			labels = append(labels, kpi.ResultLabel)
		}
		totals.add(kpi)

		if kpi.Revenue != nil {
			hasRevenue = true
			revenue += *kpi.Revenue
			revenueSpend += kpi.Spend
		}
	}

	summary.AvgCostPerResult = ratio(summary.TotalSpend, summary.TotalResults)
	if hasRevenue {
		summary.TotalRevenue = domain.FiniteOrNil(revenue)
		summary.AvgRoas = ratio(revenue, revenueSpend)
	}

	for _, label := range labels {
		summary.ByObjective = append(summary.ByObjective, byLabel[label].build())
	}
	sort.SliceStable(summary.ByObjective, func(i, j int) bool {
		if summary.ByObjective[i].Spend != summary.ByObjective[j].Spend {
			return summary.ByObjective[i].Spend > summary.ByObjective[j].Spend
		}
		return summary.ByObjective[i].ResultLabel < summary.ByObjective[j].ResultLabel
	})

	return summary
}

type objectiveTotals struct {
	summary      domain.ObjectiveSummary
	revenue      float64
	revenueSpend float64
	hasRevenue   bool
}

func (t *objectiveTotals) add(kpi domain.AggregatedKPI) {
	t.summary.Campaigns++
	t.summary.Spend += kpi.Spend
	t.summary.Results += kpi.ResultValue

	if kpi.Revenue != nil {
		t.hasRevenue = true
		t.revenue += *kpi.Revenue
		t.revenueSpend += kpi.Spend
	}
}

func (t *objectiveTotals) build() domain.ObjectiveSummary {
	result := t.summary
	result.CostPerResult = ratio(result.Spend, result.Results)
	if t.hasRevenue {
		result.Revenue = domain.FiniteOrNil(t.revenue)
		result.Roas = ratio(t.revenue, t.revenueSpend)
	}
	return result
}

// TimeSeries soma os KPIs diários por data, em ordem cronológica
func TimeSeries(dailyKPIs []domain.AggregatedKPI) []domain.TimeSeriesPoint {
	byDate := make(map[string]*domain.TimeSeriesPoint)
	dates := make([]string, 0)

	for _, kpi := range dailyKPIs {
		point, ok := byDate[kpi.DateFrom]
		if !ok {
			point = &domain.TimeSeriesPoint{Date: kpi.DateFrom}
			byDate[kpi.DateFrom] = point
			dates = append(dates, kpi.DateFrom)
		}

		point.Spend += kpi.Spend
		point.Clicks += kpi.Clicks
		point.Impressions += kpi.Impressions
		point.Results += kpi.ResultValue
	}

	sort.Strings(dates)

	points := make([]domain.TimeSeriesPoint, 0, len(dates))
	for _, date := range dates {
		point := *byDate[date]
		point.CostPerResult = ratio(point.Spend, point.Results)
		points = append(points, point)
	}

	return points
}

func Overview(kpis []domain.AggregatedKPI, totalCampaigns, activeCampaigns int, dateFrom, dateTo string) domain.AccountOverview {
	overview := domain.AccountOverview{
		DateFrom:        dateFrom,
		DateTo:          dateTo,
		TotalCampaigns:  totalCampaigns,
		ActiveCampaigns: activeCampaigns,
	}

	var (
		revenue      float64
		revenueSpend float64
		hasRevenue   bool
	)

	for _, kpi := range kpis {
		overview.TotalSpend += kpi.Spend
		overview.TotalClicks += kpi.Clicks
		overview.TotalImpressions += kpi.Impressions
		overview.TotalResults += kpi.ResultValue

		if kpi.Revenue != nil {
			hasRevenue = true
			revenue += *kpi.Revenue
			revenueSpend += kpi.Spend
		}
	}

	overview.CPM = ratio(overview.TotalSpend*1000, float64(overview.TotalImpressions))
	overview.CTR = ratio(float64(overview.TotalClicks)*100, float64(overview.TotalImpressions))
	overview.CPC = ratio(overview.TotalSpend, float64(overview.TotalClicks))
	overview.AvgCostPerResult = ratio(overview.TotalSpend, overview.TotalResults)
	if hasRevenue {
		overview.TotalRevenue = domain.FiniteOrNil(revenue)
		overview.Roas = ratio(revenue, revenueSpend)
	}

	return overview
}
