package meta

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/traffic-manager-kpi/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
	"go.uber.org/mock/gomock"
)

var testAccount = &domain.PlatformAccount{
	ID:          "pa-1",
	WorkspaceID: "ws-1",
	PlatformKey: domain.PlatformMeta,
	ExternalID:  "act_123",
}

var (
	since = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	until = time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
)

func TestSerializeDimensionKey(t *testing.T) {
	tests := []struct {
		name     string
		values   map[string]string
		expected string
	}{
		{
			name:     "uma dimensão",
			values:   map[string]string{"gender": "female"},
			expected: "gender:female",
		},
		{
			name:     "dimensões em ordem alfabética",
			values:   map[string]string{"gender": "male", "age": "25-34"},
			expected: "age:25-34|gender:male",
		},
		{
			name:     "sem dimensões",
			values:   map[string]string{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SerializeDimensionKey(tt.values))
		})
	}
}

func TestBuildDimensionValues_EmptyBecomesUnknown(t *testing.T) {
	insight := &metadomain.Insight{PublisherPlatform: "instagram", PlatformPosition: " "}

	values := BuildDimensionValues(insight, []string{"publisher_platform", "platform_position"})

	assert.Equal(t, map[string]string{"publisher_platform": "instagram", "platform_position": "unknown"}, values)
}

func TestToMetricRow(t *testing.T) {
	campaignIDs := map[string]string{"c-ext": "c-int"}

	tests := []struct {
		name     string
		insight  metadomain.Insight
		level    string
		ok       bool
		validate func(t *testing.T, row domain.RawMetricRow)
	}{
		{
			name: "nível conta não referencia campanha",
			insight: metadomain.Insight{
				DateStart:   "2024-03-02",
				Spend:       "12.34",
				Clicks:      "7",
				Impressions: "1000",
				Reach:       "800",
			},
			level: "account",
			ok:    true,
			validate: func(t *testing.T, row domain.RawMetricRow) {
				assert.Nil(t, row.CampaignID)
				assert.Equal(t, "BRL", row.Currency)
				assert.Equal(t, 12.34, row.Spend)
				assert.Equal(t, int64(7), row.Clicks)
				assert.Equal(t, int64(1000), row.Impressions)
				require.NotNil(t, row.ExtraMetrics.Reach)
				assert.Equal(t, 800.0, *row.ExtraMetrics.Reach)
				assert.Equal(t, "ws-1", row.WorkspaceID)
				assert.Equal(t, "pa-1", row.PlatformAccountID)
			},
		},
		{
			name: "nível anúncio mapeia campanha e mantém ids externos",
			insight: metadomain.Insight{
				DateStart:       "2024-03-02",
				AccountCurrency: "USD",
				CampaignID:      "c-ext",
				AdSetID:         "as-1",
				AdID:            "ad-1",
				Actions: []metadomain.Action{
					{ActionType: "purchase", Value: "3"},
					{ActionType: "lead", Value: "abc"},
				},
				ActionValues: []metadomain.Action{{ActionType: "purchase", Value: "150.5"}},
			},
			level: "ad",
			ok:    true,
			validate: func(t *testing.T, row domain.RawMetricRow) {
				assert.Equal(t, "c-int", *row.CampaignID)
				assert.Equal(t, "as-1", *row.AdSetID)
				assert.Equal(t, "ad-1", *row.AdID)
				assert.Equal(t, "USD", row.Currency)
				assert.Equal(t, 3.0, *row.Conversions)
				assert.Equal(t, 150.5, *row.ConversionValue)
				require.Len(t, row.ExtraMetrics.Actions, 2)
				assert.Nil(t, row.ExtraMetrics.Actions[1].Value)
			},
		},
		{
			name:    "campanha desconhecida é ignorada",
			insight: metadomain.Insight{DateStart: "2024-03-02", CampaignID: "outra"},
			level:   "campaign",
			ok:      false,
		},
		{
			name:    "data inválida é ignorada",
			insight: metadomain.Insight{DateStart: "ontem"},
			level:   "account",
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, ok := ToMetricRow(&tt.insight, testAccount, tt.level, campaignIDs)

			assert.Equal(t, tt.ok, ok)
			if tt.validate != nil {
				tt.validate(t, row)
			}
		})
	}
}

func TestMetaIntegrator_ListCampaigns(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().
		GetCampaignsByAccountID(gomock.Any(), "123").
		Return([]metadomain.Campaign{
			{ID: "1", Name: "Vendas", Status: "ACTIVE", EffectiveStatus: "PAUSED", Objective: "OUTCOME_SALES"},
			{ID: "2", Name: "Sem objetivo", Status: "ACTIVE"},
		}, nil)

	campaigns, err := New(client).ListCampaigns(context.Background(), testAccount)

	require.NoError(t, err)
	require.Len(t, campaigns, 2)
	assert.Equal(t, "pa-1", campaigns[0].PlatformAccountID)
	assert.Equal(t, "PAUSED", campaigns[0].Status)
	assert.Equal(t, "OUTCOME_SALES", *campaigns[0].Objective)
	assert.Nil(t, campaigns[1].Objective)
	assert.Equal(t, "ACTIVE", campaigns[1].Status)
}

func TestMetaIntegrator_FetchMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().
		GetInsights(gomock.Any(), "123", metaclient.InsightRequest{Level: "campaign", Since: since, Until: until}).
		Return([]metadomain.Insight{
			{DateStart: "2024-03-01", CampaignID: "c-ext", Spend: "10"},
			{DateStart: "2024-03-01", CampaignID: "desconhecida", Spend: "5"},
		}, nil)

	rows, err := New(client).FetchMetrics(context.Background(), testAccount, "campaign", since, until, map[string]string{"c-ext": "c-int"})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.GranularityDay, *rows[0].Granularity)
	assert.Nil(t, rows[0].BreakdownKey)
}

func TestMetaIntegrator_FetchMetricsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().GetInsights(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := New(client).FetchMetrics(context.Background(), testAccount, "ad", since, until, nil)

	assert.ErrorContains(t, err, "timeout")
}

func TestMetaIntegrator_FetchBreakdowns(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().
		GetInsights(gomock.Any(), "123", metaclient.InsightRequest{
			Level:      "campaign",
			Since:      since,
			Until:      until,
			Breakdowns: []string{"age", "gender"},
		}).
		Return([]metadomain.Insight{
			{DateStart: "2024-03-01", CampaignID: "c-ext", Age: "25-34", Gender: "female"},
			{DateStart: "2024-03-01", CampaignID: "c-ext", Age: "65+"},
		}, nil)

	rows, err := New(client).FetchBreakdowns(context.Background(), testAccount, "age_gender", since, until, map[string]string{"c-ext": "c-int"})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "age_gender", *rows[0].BreakdownKey)
	assert.Equal(t, "age:25-34|gender:female", *rows[0].BreakdownValueKey)
	assert.Equal(t, "age:65+|gender:unknown", *rows[1].BreakdownValueKey)
	assert.Equal(t, domain.GranularityBreakdown, *rows[1].Granularity)
	assert.Equal(t, map[string]string{"age": "65+", "gender": "unknown"}, rows[1].DimensionValues)
}

func TestMetaIntegrator_FetchBreakdownsUnknownKey(t *testing.T) {
	ctrl := gomock.NewController(t)

	_, err := New(mocks.NewMockClient(ctrl)).FetchBreakdowns(context.Background(), testAccount, "region", since, until, nil)

	assert.Error(t, err)
}
