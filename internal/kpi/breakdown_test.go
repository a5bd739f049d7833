package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
)

func TestAggregator_AggregateBreakdowns(t *testing.T) {
	aggregator := newTestAggregator()

	female := breakdownRow(stringPtr("gender:female"), nil, 40)
	female.Clicks = 20
	female.Impressions = 2000
	female.ExtraMetrics = actions(ActionLead, 4.0)

	male := breakdownRow(stringPtr("gender:male"), nil, 10)
	male.Conversions = floatPtr(2)
	male.ConversionValue = floatPtr(30)

	unknown := breakdownRow(nil, nil, 60)
	femaleAgain := breakdownRow(stringPtr("gender:female"), nil, 10)
	femaleAgain.ExtraMetrics = actions(ActionLead, 1.0)

	result := aggregator.AggregateBreakdowns([]domain.RawMetricRow{female, male, unknown, femaleAgain})

	require.Len(t, result, 3)

	assert.Equal(t, UnknownBreakdownValue, result[0].BreakdownValueKey)
	assert.Nil(t, result[0].CPA)
	assert.Nil(t, result[0].CTR)

	assert.Equal(t, "gender:female", result[1].BreakdownValueKey)
	assert.Equal(t, 50.0, result[1].Spend)
	assert.Equal(t, 5.0, result[1].Conversions)
	require.NotNil(t, result[1].CTR)
	assert.InDelta(t, 1.0, *result[1].CTR, 1e-9)
	require.NotNil(t, result[1].CPA)
	assert.InDelta(t, 10.0, *result[1].CPA, 1e-9)
	assert.Nil(t, result[1].Roas, "sem receita o ROAS não se aplica")

	assert.Equal(t, "gender:male", result[2].BreakdownValueKey)
	assert.Equal(t, 2.0, result[2].Conversions)
	require.NotNil(t, result[2].Roas)
	assert.InDelta(t, 3.0, *result[2].Roas, 1e-9)
}

func TestAggregator_AggregateBreakdowns_RoasZeroComReceitaZerada(t *testing.T) {
	aggregator := newTestAggregator()

	withZero := breakdownRow(stringPtr("age:18-24"), nil, 20)
	withZero.ConversionValue = floatPtr(0)
	withoutRevenue := breakdownRow(stringPtr("age:25-34"), nil, 10)

	result := aggregator.AggregateBreakdowns([]domain.RawMetricRow{withZero, withoutRevenue})

	require.Len(t, result, 2)
	assert.Equal(t, "age:18-24", result[0].BreakdownValueKey)
	require.NotNil(t, result[0].Roas)
	assert.Equal(t, 0.0, *result[0].Roas)

	assert.Equal(t, "age:25-34", result[1].BreakdownValueKey)
	assert.Nil(t, result[1].Roas)
}
