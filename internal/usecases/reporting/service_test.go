package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/cache"
	cachemocks "github.com/vfg2006/traffic-manager-kpi/infrastructure/cache/mocks"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/repository/mocks"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
	"github.com/vfg2006/traffic-manager-kpi/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	metrics   *mocks.MockMetricRepository
	campaigns *mocks.MockCampaignRepository
	accounts  *mocks.MockPlatformAccountRepository
}

func newTestService(t *testing.T, kpiCache cache.KPICache) (*Service, serviceMocks) {
	ctrl := gomock.NewController(t)
	m := serviceMocks{
		metrics:   mocks.NewMockMetricRepository(ctrl),
		campaigns: mocks.NewMockCampaignRepository(ctrl),
		accounts:  mocks.NewMockPlatformAccountRepository(ctrl),
	}

	svc := NewService(m.metrics, m.campaigns, m.accounts, kpiCache, nil, testDefaults)
	svc.now = func() time.Time { return testNow }
	return svc, m
}

func ptr[T any](v T) *T {
	return &v
}

func testFilters() domain.KPIFilters {
	return domain.KPIFilters{
		WorkspaceID: "ws-1",
		PlatformKey: domain.PlatformMeta,
		Level:       domain.LevelCampaign,
		Period:      domain.PeriodTotal,
		StartDate:   date("2024-03-01"),
		EndDate:     date("2024-03-07"),
	}
}

func leadRow(campaignID, day string, leads, spend float64, syncedAt time.Time) domain.RawMetricRow {
	granularity := domain.GranularityDay
	return domain.RawMetricRow{
		MetricDate:        date(day),
		WorkspaceID:       "ws-1",
		PlatformKey:       domain.PlatformMeta,
		PlatformAccountID: "pa-1",
		CampaignID:        ptr(campaignID),
		Granularity:       &granularity,
		Spend:             spend,
		Clicks:            10,
		Impressions:       1000,
		ExtraMetrics: domain.ExtraMetrics{
			Actions: []domain.ActionEntry{{ActionType: "lead", Value: ptr(leads)}},
		},
		SyncedAt: &syncedAt,
	}
}

func TestService_GetKPIs(t *testing.T) {
	firstSync := time.Date(2024, 3, 8, 3, 0, 0, 0, time.UTC)
	secondSync := firstSync.Add(24 * time.Hour)

	svc, m := newTestService(t, nil)

	m.accounts.EXPECT().
		ListByWorkspace(gomock.Any(), "ws-1", domain.PlatformMeta).
		Return([]*domain.PlatformAccount{{ID: "pa-1"}}, nil)

	m.metrics.EXPECT().
		ListMetrics(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query domain.MetricQuery) ([]domain.RawMetricRow, error) {
			assert.Equal(t, []string{"pa-1"}, query.PlatformAccountIDs)
			assert.Equal(t, domain.LevelCampaign, *query.Level)
			return []domain.RawMetricRow{
				leadRow("c-1", "2024-03-01", 5, 20, firstSync),
				leadRow("c-1", "2024-03-01", 8, 25, secondSync),
				leadRow("c-1", "2024-03-02", 2, 10, firstSync),
				leadRow("c-2", "2024-03-01", 4, 40, firstSync),
			}, nil
		})

	m.campaigns.EXPECT().
		GetObjectives(gomock.Any(), gomock.InAnyOrder([]string{"c-1", "c-2"})).
		Return(map[string]string{"c-1": "OUTCOME_LEADS", "c-2": "LINK_CLICKS"}, nil)

	kpis, err := svc.GetKPIs(context.Background(), testFilters())

	require.NoError(t, err)
	require.Len(t, kpis, 2)

	assert.Equal(t, "c-1", kpis[0].EntityID)
	assert.Equal(t, domain.ResultLabelLeads, kpis[0].ResultLabel)
	assert.Equal(t, 10.0, kpis[0].ResultValue)
	assert.Equal(t, 35.0, kpis[0].Spend)
	assert.Equal(t, 2, kpis[0].Rows)

	assert.Equal(t, "c-2", kpis[1].EntityID)
	assert.Equal(t, domain.ResultLabelCliques, kpis[1].ResultLabel)
}

func TestService_GetKPIs_NoAccounts(t *testing.T) {
	svc, m := newTestService(t, nil)

	m.accounts.EXPECT().ListByWorkspace(gomock.Any(), "ws-1", domain.PlatformMeta).Return(nil, nil)

	kpis, err := svc.GetKPIs(context.Background(), testFilters())

	require.NoError(t, err)
	assert.Empty(t, kpis)
}

func TestService_GetKPIs_RepositoryError(t *testing.T) {
	svc, m := newTestService(t, nil)

	m.accounts.EXPECT().ListByWorkspace(gomock.Any(), gomock.Any(), gomock.Any()).Return([]*domain.PlatformAccount{{ID: "pa-1"}}, nil)
	m.metrics.EXPECT().ListMetrics(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := svc.GetKPIs(context.Background(), testFilters())

	var reportErr *ReportError
	require.True(t, errors.As(err, &reportErr))
	assert.Equal(t, apiErrors.ErrDatabaseOperation, reportErr.Code)
}

func TestService_GetKPIs_Cache(t *testing.T) {
	t.Run("resultado em cache evita consulta ao banco", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		kpiCache := cachemocks.NewMockKPICache(ctrl)
		svc, _ := newTestService(t, kpiCache)

		kpiCache.EXPECT().
			Get(gomock.Any(), cacheKey("kpis", testFilters()), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dest any) error {
				*(dest.(*[]domain.AggregatedKPI)) = []domain.AggregatedKPI{{EntityID: "c-cache"}}
				return nil
			})

		kpis, err := svc.GetKPIs(context.Background(), testFilters())

		require.NoError(t, err)
		require.Len(t, kpis, 1)
		assert.Equal(t, "c-cache", kpis[0].EntityID)
	})

	t.Run("cache vazio grava o resultado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		kpiCache := cachemocks.NewMockKPICache(ctrl)
		svc, m := newTestService(t, kpiCache)

		kpiCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.ErrCacheMiss)
		m.accounts.EXPECT().ListByWorkspace(gomock.Any(), gomock.Any(), gomock.Any()).Return([]*domain.PlatformAccount{{ID: "pa-1"}}, nil)
		m.metrics.EXPECT().ListMetrics(gomock.Any(), gomock.Any()).Return(nil, nil)
		kpiCache.EXPECT().Set(gomock.Any(), cacheKey("kpis", testFilters()), gomock.Any()).Return(errors.New("redis indisponível"))

		kpis, err := svc.GetKPIs(context.Background(), testFilters())

		require.NoError(t, err)
		assert.Empty(t, kpis)
	})
}

func TestService_GetSummary(t *testing.T) {
	svc, m := newTestService(t, nil)
	syncedAt := time.Date(2024, 3, 8, 3, 0, 0, 0, time.UTC)

	m.accounts.EXPECT().ListByWorkspace(gomock.Any(), gomock.Any(), gomock.Any()).Return([]*domain.PlatformAccount{{ID: "pa-1"}}, nil)
	m.metrics.EXPECT().ListMetrics(gomock.Any(), gomock.Any()).Return([]domain.RawMetricRow{
		leadRow("c-1", "2024-03-01", 5, 20, syncedAt),
		leadRow("c-2", "2024-03-01", 3, 10, syncedAt),
	}, nil)
	m.campaigns.EXPECT().GetObjectives(gomock.Any(), gomock.Any()).Return(map[string]string{
		"c-1": "OUTCOME_LEADS",
		"c-2": "LEAD_GENERATION",
	}, nil)

	filters := testFilters()
	filters.Level = domain.LevelAd
	filters.Period = domain.PeriodDay

	summary, err := svc.GetSummary(context.Background(), filters)

	require.NoError(t, err)
	assert.Equal(t, 30.0, summary.TotalSpend)
	assert.Equal(t, 8.0, summary.TotalResults)
	assert.Equal(t, domain.ResultLabelLeads, summary.ResultLabel)
	require.NotNil(t, summary.AvgCostPerResult)
	assert.InDelta(t, 3.75, *summary.AvgCostPerResult, 1e-9)
}

func TestService_GetTimeSeries(t *testing.T) {
	svc, m := newTestService(t, nil)
	syncedAt := time.Date(2024, 3, 8, 3, 0, 0, 0, time.UTC)

	m.accounts.EXPECT().ListByWorkspace(gomock.Any(), gomock.Any(), gomock.Any()).Return([]*domain.PlatformAccount{{ID: "pa-1"}}, nil)
	m.metrics.EXPECT().ListMetrics(gomock.Any(), gomock.Any()).Return([]domain.RawMetricRow{
		leadRow("c-1", "2024-03-02", 2, 10, syncedAt),
		leadRow("c-1", "2024-03-01", 5, 20, syncedAt),
		leadRow("c-2", "2024-03-01", 0, 5, syncedAt),
	}, nil)
	m.campaigns.EXPECT().GetObjectives(gomock.Any(), gomock.Any()).Return(map[string]string{}, nil)

	points, err := svc.GetTimeSeries(context.Background(), testFilters())

	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-03-01", points[0].Date)
	assert.Equal(t, 25.0, points[0].Spend)
	assert.Equal(t, 5.0, points[0].Results)
	assert.Equal(t, "2024-03-02", points[1].Date)
	assert.InDelta(t, 5.0, *points[1].CostPerResult, 1e-9)
}

func TestService_GetOverview(t *testing.T) {
	svc, m := newTestService(t, nil)
	syncedAt := time.Date(2024, 3, 8, 3, 0, 0, 0, time.UTC)

	m.accounts.EXPECT().ListByWorkspace(gomock.Any(), gomock.Any(), gomock.Any()).Return([]*domain.PlatformAccount{{ID: "pa-1"}}, nil).Times(2)
	m.metrics.EXPECT().ListMetrics(gomock.Any(), gomock.Any()).Return([]domain.RawMetricRow{
		leadRow("c-1", "2024-03-01", 5, 20, syncedAt),
	}, nil)
	m.campaigns.EXPECT().GetObjectives(gomock.Any(), gomock.Any()).Return(map[string]string{"c-1": "OUTCOME_LEADS"}, nil)
	m.campaigns.EXPECT().CountCampaigns(gomock.Any(), []string{"pa-1"}).Return(4, 1, nil)

	overview, err := svc.GetOverview(context.Background(), testFilters())

	require.NoError(t, err)
	assert.Equal(t, 4, overview.TotalCampaigns)
	assert.Equal(t, 1, overview.ActiveCampaigns)
	assert.Equal(t, 20.0, overview.TotalSpend)
	assert.Equal(t, "2024-03-01", overview.DateFrom)
	assert.Equal(t, "2024-03-07", overview.DateTo)
}

func TestService_GetBreakdowns(t *testing.T) {
	svc, m := newTestService(t, nil)
	syncedAt := time.Date(2024, 3, 8, 3, 0, 0, 0, time.UTC)

	breakdownRow := func(valueKey string, spend float64, synced time.Time) domain.RawMetricRow {
		row := leadRow("c-1", "2024-03-01", 1, spend, synced)
		granularity := domain.GranularityBreakdown
		row.Granularity = &granularity
		row.BreakdownKey = ptr("gender")
		row.BreakdownValueKey = ptr(valueKey)
		return row
	}

	m.accounts.EXPECT().ListByWorkspace(gomock.Any(), gomock.Any(), gomock.Any()).Return([]*domain.PlatformAccount{{ID: "pa-1"}}, nil)
	m.metrics.EXPECT().
		ListBreakdowns(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query domain.MetricQuery) ([]domain.RawMetricRow, error) {
			assert.Equal(t, "c-1", *query.CampaignID)
			assert.Equal(t, "gender", *query.BreakdownKey)
			assert.Nil(t, query.Level)
			return []domain.RawMetricRow{
				breakdownRow("gender:female", 10, syncedAt),
				breakdownRow("gender:female", 12, syncedAt.Add(time.Hour)),
				breakdownRow("gender:male", 30, syncedAt),
			}, nil
		})

	breakdowns, err := svc.GetBreakdowns(context.Background(), testFilters(), "c-1", "gender")

	require.NoError(t, err)
	require.Len(t, breakdowns, 2)
	assert.Equal(t, "gender:male", breakdowns[0].BreakdownValueKey)
	assert.Equal(t, "gender:female", breakdowns[1].BreakdownValueKey)
	assert.Equal(t, 12.0, breakdowns[1].Spend)
}

func TestService_GetBreakdowns_RequiresParams(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.GetBreakdowns(context.Background(), testFilters(), "", "gender")

	assert.ErrorIs(t, err, ErrInvalidFilters)
}

func TestService_ResolveFiltersUsesClock(t *testing.T) {
	svc, _ := newTestService(t, nil)

	filters, err := svc.ResolveFilters("ws-1", FilterParams{Days: "1"})

	require.NoError(t, err)
	assert.Equal(t, date("2024-03-14"), filters.StartDate)
	assert.Equal(t, date("2024-03-14"), filters.EndDate)
}
