package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		kpis     []domain.AggregatedKPI
		validate func(t *testing.T, summary domain.KPISummary)
	}{
		{
			name: "Sem campanhas retorna totais zerados",
			kpis: nil,
			validate: func(t *testing.T, summary domain.KPISummary) {
				assert.Equal(t, domain.ResultLabelResultados, summary.ResultLabel)
				assert.Equal(t, 0.0, summary.TotalSpend)
				assert.Nil(t, summary.AvgCostPerResult)
				assert.Nil(t, summary.TotalRevenue)
				assert.Empty(t, summary.ByObjective)
			},
		},
		{
			name: "Rótulo comum é mantido",
			kpis: []domain.AggregatedKPI{
				{ResultLabel: domain.ResultLabelLeads, Spend: 10, ResultValue: 2},
				{ResultLabel: domain.ResultLabelLeads, Spend: 30, ResultValue: 2},
			},
			validate: func(t *testing.T, summary domain.KPISummary) {
				assert.Equal(t, domain.ResultLabelLeads, summary.ResultLabel)
				assert.Equal(t, 40.0, summary.TotalSpend)
				require.NotNil(t, summary.AvgCostPerResult)
				assert.Equal(t, 10.0, *summary.AvgCostPerResult)
				require.Len(t, summary.ByObjective, 1)
				assert.Equal(t, 2, summary.ByObjective[0].Campaigns)
			},
		},
		{
			name: "Rótulos diferentes viram Resultados e ROAS considera apenas vendas",
			kpis: []domain.AggregatedKPI{
				{ResultLabel: domain.ResultLabelLeads, Spend: 100, ResultValue: 5},
				{ResultLabel: domain.ResultLabelCompras, Spend: 50, ResultValue: 2, Revenue: floatPtr(200)},
			},
			validate: func(t *testing.T, summary domain.KPISummary) {
				assert.Equal(t, domain.ResultLabelResultados, summary.ResultLabel)
				require.NotNil(t, summary.TotalRevenue)
				assert.Equal(t, 200.0, *summary.TotalRevenue)
				require.NotNil(t, summary.AvgRoas)
				assert.Equal(t, 4.0, *summary.AvgRoas)

				require.Len(t, summary.ByObjective, 2)
				assert.Equal(t, domain.ResultLabelLeads, summary.ByObjective[0].ResultLabel)
				assert.Nil(t, summary.ByObjective[0].Revenue)
				assert.Equal(t, domain.ResultLabelCompras, summary.ByObjective[1].ResultLabel)
				require.NotNil(t, summary.ByObjective[1].Roas)
				assert.Equal(t, 4.0, *summary.ByObjective[1].Roas)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, Summarize(tt.kpis))
		})
	}
}

func TestTimeSeries(t *testing.T) {
	points := TimeSeries([]domain.AggregatedKPI{
		{DateFrom: "2024-03-02", Spend: 10, ResultValue: 0},
		{DateFrom: "2024-03-01", Spend: 5, ResultValue: 1, Clicks: 3},
		{DateFrom: "2024-03-02", Spend: 20, ResultValue: 3},
	})

	require.Len(t, points, 2)
	assert.Equal(t, "2024-03-01", points[0].Date)
	assert.Equal(t, int64(3), points[0].Clicks)
	assert.Equal(t, "2024-03-02", points[1].Date)
	assert.Equal(t, 30.0, points[1].Spend)
	require.NotNil(t, points[1].CostPerResult)
	assert.Equal(t, 10.0, *points[1].CostPerResult)
}

func TestOverview(t *testing.T) {
	overview := Overview([]domain.AggregatedKPI{
		{Spend: 60, Clicks: 30, Impressions: 3000, ResultValue: 6},
		{Spend: 40, Clicks: 20, Impressions: 2000, ResultValue: 4},
	}, 5, 2, "2024-03-01", "2024-03-07")

	assert.Equal(t, 100.0, overview.TotalSpend)
	assert.Equal(t, int64(50), overview.TotalClicks)
	assert.Equal(t, 5, overview.TotalCampaigns)
	assert.Equal(t, 2, overview.ActiveCampaigns)
	require.NotNil(t, overview.CPM)
	assert.InDelta(t, 20.0, *overview.CPM, 1e-9)
	require.NotNil(t, overview.CTR)
	assert.InDelta(t, 1.0, *overview.CTR, 1e-9)
	require.NotNil(t, overview.AvgCostPerResult)
	assert.InDelta(t, 10.0, *overview.AvgCostPerResult, 1e-9)
	assert.Nil(t, overview.TotalRevenue)
	assert.Nil(t, overview.Roas)
}
