package exporting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
)

func ptr[T any](v T) *T {
	return &v
}

func TestBrazilianFormatter(t *testing.T) {
	f := newBrazilianFormatter()

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{name: "moeda com milhar", got: f.Currency(1234.56), expected: "R$ 1.234,56"},
		{name: "moeda zerada", got: f.Currency(0), expected: "R$ 0,00"},
		{name: "moeda opcional nula", got: f.OptionalCurrency(nil), expected: "N/A"},
		{name: "inteiro com milhar", got: f.Integer(1234567), expected: "1.234.567"},
		{name: "decimal inteiro", got: f.Decimal(12), expected: "12"},
		{name: "decimal fracionado", got: f.Decimal(1234.5), expected: "1.234,50"},
		{name: "percentual", got: f.Percent(ptr(1.5)), expected: "1,50%"},
		{name: "percentual nulo", got: f.Percent(nil), expected: "N/A"},
		{name: "roas com ponto", got: f.Roas(ptr(2.3456)), expected: "2.35x"},
		{name: "roas nulo", got: f.Roas(nil), expected: "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}

func sampleKPIs() []domain.AggregatedKPI {
	return []domain.AggregatedKPI{
		{
			Level:              domain.LevelCampaign,
			EntityID:           "camp-1",
			Objective:          ptr("OUTCOME_LEADS"),
			ResultLabel:        domain.ResultLabelLeads,
			PrimaryActionLabel: "Leads",
			ResultValue:        40,
			Spend:              1234.56,
			Clicks:             1500,
			Impressions:        100000,
			CostPerResult:      ptr(30.86),
			CTR:                ptr(1.5),
			CPC:                ptr(0.82),
			CPM:                ptr(12.35),
		},
		{
			Level:              domain.LevelCampaign,
			EntityID:           "camp|2",
			ResultLabel:        domain.ResultLabelCompras,
			PrimaryActionLabel: "Compras",
			ResultValue:        3,
			Spend:              100,
			Revenue:            ptr(250.0),
			Roas:               ptr(2.5),
		},
	}
}

func TestRenderCSV(t *testing.T) {
	content, err := renderCSV(sampleKPIs())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)

	assert.True(t, strings.HasPrefix(lines[0], "Campanha;Objetivo;"))
	assert.Equal(t,
		"camp-1;OUTCOME_LEADS;Leads;Leads;40;R$ 1.234,56;R$ 30,86;N/A;N/A;100.000;1.500;1,50%;R$ 0,82;R$ 12,35",
		lines[1],
	)
	assert.Contains(t, lines[2], "R$ 250,00;2.50x")
}

func TestRenderCSV_SemCampanhas(t *testing.T) {
	content, err := renderCSV(nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Len(t, lines, 1)
}

func TestRenderMarkdown(t *testing.T) {
	filters := domain.KPIFilters{
		WorkspaceID: "ws-1",
		PlatformKey: domain.PlatformMeta,
	}
	summary := domain.KPISummary{
		TotalSpend:   1334.56,
		ResultLabel:  domain.ResultLabelLeads,
		TotalResults: 43,
	}

	content := string(renderMarkdown(sampleKPIs(), summary, filters))

	assert.Contains(t, content, "# Relatório de KPIs")
	assert.Contains(t, content, "- Workspace: ws-1")
	assert.Contains(t, content, "| R$ 1.334,56 | 43 | N/A | N/A |")
	assert.Contains(t, content, "| camp-1 | OUTCOME_LEADS |")
	assert.Contains(t, content, "| camp\\|2 |")
}
