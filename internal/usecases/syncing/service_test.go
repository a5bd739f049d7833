package syncing

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/repository"
	repomocks "github.com/vfg2006/traffic-manager-kpi/infrastructure/repository/mocks"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

func day(value string) time.Time {
	parsed, _ := time.Parse(time.DateOnly, value)
	return parsed
}

func testAccount() *domain.PlatformAccount {
	return &domain.PlatformAccount{
		ID:          "pa-1",
		WorkspaceID: "ws-1",
		PlatformKey: domain.PlatformMeta,
		ExternalID:  "act_123",
		Active:      true,
	}
}

type syncMocks struct {
	source    *mocks.MockMetricSource
	tx        *mocks.MockTransactor
	metrics   *repomocks.MockMetricRepository
	campaigns *repomocks.MockCampaignRepository
}

func newTestService(t *testing.T, breakdowns []string, batchDays int) (*Service, syncMocks) {
	ctrl := gomock.NewController(t)
	m := syncMocks{
		source:    mocks.NewMockMetricSource(ctrl),
		tx:        mocks.NewMockTransactor(ctrl),
		metrics:   repomocks.NewMockMetricRepository(ctrl),
		campaigns: repomocks.NewMockCampaignRepository(ctrl),
	}

	svc := NewService(m.source, m.tx, m.campaigns, breakdowns, batchDays)
	svc.metricRepoFor = func(postgres.Queryer) repository.MetricRepository { return m.metrics }
	return svc, m
}

// expectTransaction executa a função recebida e devolve o erro dela, como o commit/rollback real
func expectTransaction(m syncMocks) *gomock.Call {
	return m.tx.EXPECT().
		RunInTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sql.Tx) error) error {
			return fn(nil)
		})
}

func TestSplitDateRange(t *testing.T) {
	tests := []struct {
		name      string
		since     string
		until     string
		batchDays int
		expected  [][2]string
	}{
		{
			name:      "intervalo menor que o lote",
			since:     "2024-03-01",
			until:     "2024-03-03",
			batchDays: 7,
			expected:  [][2]string{{"2024-03-01", "2024-03-03"}},
		},
		{
			name:      "intervalo dividido com sobra",
			since:     "2024-03-01",
			until:     "2024-03-10",
			batchDays: 4,
			expected: [][2]string{
				{"2024-03-01", "2024-03-04"},
				{"2024-03-05", "2024-03-08"},
				{"2024-03-09", "2024-03-10"},
			},
		},
		{
			name:      "um único dia",
			since:     "2024-03-01",
			until:     "2024-03-01",
			batchDays: 1,
			expected:  [][2]string{{"2024-03-01", "2024-03-01"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches := splitDateRange(day(tt.since), day(tt.until), tt.batchDays)
			require.Len(t, batches, len(tt.expected))
			for i, batch := range batches {
				assert.Equal(t, tt.expected[i][0], batch.since.Format(time.DateOnly))
				assert.Equal(t, tt.expected[i][1], batch.until.Format(time.DateOnly))
			}
		})
	}
}

func TestService_SyncPlatformAccount(t *testing.T) {
	campaignIDs := map[string]string{"111": "camp-1"}
	objective := "OUTCOME_LEADS"
	campaigns := []*domain.Campaign{{ExternalID: "111", Objective: &objective, Status: "ACTIVE"}}
	row := domain.RawMetricRow{WorkspaceID: "ws-1", PlatformAccountID: "pa-1"}

	tests := []struct {
		name       string
		breakdowns []string
		batchDays  int
		since      string
		until      string
		setup      func(m syncMocks)
		validate   func(t *testing.T, result *domain.SyncResult, err error)
	}{
		{
			name:       "deve gravar campanhas, níveis e breakdowns",
			breakdowns: []string{"age"},
			batchDays:  7,
			since:      "2024-03-01",
			until:      "2024-03-03",
			setup: func(m syncMocks) {
				var fetches []any
				for _, level := range []string{"account", "campaign", "adset", "ad"} {
					fetches = append(fetches, m.source.EXPECT().
						FetchMetrics(gomock.Any(), gomock.Any(), level, day("2024-03-01"), day("2024-03-03"), campaignIDs).
						Return([]domain.RawMetricRow{row, row}, nil))
				}

				// campanhas são gravadas antes de qualquer busca de métricas
				gomock.InOrder(append([]any{
					m.source.EXPECT().ListCampaigns(gomock.Any(), gomock.Any()).Return(campaigns, nil),
					m.campaigns.EXPECT().UpsertCampaigns(gomock.Any(), campaigns).Return(campaignIDs, nil),
				}, fetches...)...)

				expectTransaction(m).Times(1)
				m.metrics.EXPECT().InsertMetrics(gomock.Any(), gomock.Len(2)).Return(int64(2), nil).Times(4)

				m.source.EXPECT().
					FetchBreakdowns(gomock.Any(), gomock.Any(), "age", day("2024-03-01"), day("2024-03-03"), campaignIDs).
					Return([]domain.RawMetricRow{row}, nil)
				m.metrics.EXPECT().InsertBreakdowns(gomock.Any(), gomock.Len(1)).Return(int64(1), nil)
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, "pa-1", result.PlatformAccountID)
				assert.Equal(t, 1, result.Campaigns)
				assert.Equal(t, int64(8), result.MetricRows)
				assert.Equal(t, int64(1), result.BreakdownRows)
				assert.Equal(t, 1, result.Batches)
			},
		},
		{
			name:      "deve dividir o intervalo em lotes e pular níveis vazios",
			batchDays: 2,
			since:     "2024-03-01",
			until:     "2024-03-04",
			setup: func(m syncMocks) {
				m.source.EXPECT().ListCampaigns(gomock.Any(), gomock.Any()).Return(nil, nil)
				m.source.EXPECT().
					FetchMetrics(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), map[string]string{}).
					Return(nil, nil).
					Times(8)
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 0, result.Campaigns)
				assert.Equal(t, 2, result.Batches)
				assert.Zero(t, result.MetricRows)
			},
		},
		{
			name:      "deve falhar quando a listagem de campanhas falha",
			batchDays: 7,
			since:     "2024-03-01",
			until:     "2024-03-01",
			setup: func(m syncMocks) {
				m.source.EXPECT().ListCampaigns(gomock.Any(), gomock.Any()).Return(nil, errors.New("token expirado"))
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				assert.Nil(t, result)
				assert.ErrorContains(t, err, "erro ao listar campanhas")
			},
		},
		{
			name:      "deve interromper no primeiro erro de gravação",
			batchDays: 7,
			since:     "2024-03-01",
			until:     "2024-03-01",
			setup: func(m syncMocks) {
				m.source.EXPECT().ListCampaigns(gomock.Any(), gomock.Any()).Return(campaigns, nil)
				m.campaigns.EXPECT().UpsertCampaigns(gomock.Any(), campaigns).Return(campaignIDs, nil)
				m.source.EXPECT().
					FetchMetrics(gomock.Any(), gomock.Any(), "account", gomock.Any(), gomock.Any(), campaignIDs).
					Return([]domain.RawMetricRow{row}, nil)
				m.source.EXPECT().
					FetchMetrics(gomock.Any(), gomock.Any(), gomock.Not("account"), gomock.Any(), gomock.Any(), campaignIDs).
					Return(nil, nil).
					Times(3)
				expectTransaction(m)
				m.metrics.EXPECT().InsertMetrics(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("conexão perdida"))
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				require.Error(t, err)
				assert.ErrorContains(t, err, "nível account")
				require.NotNil(t, result)
				assert.Equal(t, 0, result.Batches)
			},
		},
		{
			name:       "deve descartar as métricas do lote quando o breakdown falha na mesma transação",
			breakdowns: []string{"age"},
			batchDays:  7,
			since:      "2024-03-01",
			until:      "2024-03-01",
			setup: func(m syncMocks) {
				m.source.EXPECT().ListCampaigns(gomock.Any(), gomock.Any()).Return(campaigns, nil)
				m.campaigns.EXPECT().UpsertCampaigns(gomock.Any(), campaigns).Return(campaignIDs, nil)
				m.source.EXPECT().
					FetchMetrics(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), campaignIDs).
					Return([]domain.RawMetricRow{row}, nil).
					Times(4)
				m.source.EXPECT().
					FetchBreakdowns(gomock.Any(), gomock.Any(), "age", gomock.Any(), gomock.Any(), campaignIDs).
					Return([]domain.RawMetricRow{row}, nil)

				expectTransaction(m).Times(1)
				m.metrics.EXPECT().InsertMetrics(gomock.Any(), gomock.Len(1)).Return(int64(1), nil).Times(4)
				m.metrics.EXPECT().InsertBreakdowns(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("violação de constraint"))
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				assert.ErrorContains(t, err, "breakdown age")
				require.NotNil(t, result)
				assert.Zero(t, result.MetricRows)
				assert.Zero(t, result.BreakdownRows)
				assert.Equal(t, 0, result.Batches)
			},
		},
		{
			name:      "deve parar no primeiro lote com erro sem buscar os seguintes",
			batchDays: 1,
			since:     "2024-03-01",
			until:     "2024-03-03",
			setup: func(m syncMocks) {
				m.source.EXPECT().ListCampaigns(gomock.Any(), gomock.Any()).Return(nil, nil)
				m.source.EXPECT().
					FetchMetrics(gomock.Any(), gomock.Any(), gomock.Any(), day("2024-03-01"), day("2024-03-01"), gomock.Any()).
					Return(nil, nil).
					Times(4)
				m.source.EXPECT().
					FetchMetrics(gomock.Any(), gomock.Any(), "account", day("2024-03-02"), day("2024-03-02"), gomock.Any()).
					Return(nil, errors.New("rate limit"))
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				assert.ErrorContains(t, err, "rate limit")
				require.NotNil(t, result)
				assert.Equal(t, 1, result.Batches)
			},
		},
		{
			name:      "deve rejeitar intervalo invertido",
			batchDays: 7,
			since:     "2024-03-05",
			until:     "2024-03-01",
			setup:     func(m syncMocks) {},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				assert.Nil(t, result)
				assert.ErrorContains(t, err, "intervalo de sincronização inválido")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t, tt.breakdowns, tt.batchDays)
			tt.setup(m)

			result, err := svc.SyncPlatformAccount(context.Background(), testAccount(), day(tt.since), day(tt.until))
			tt.validate(t, result, err)
		})
	}
}

func TestService_SyncPlatformAccount_SemExternalID(t *testing.T) {
	svc, _ := newTestService(t, nil, 7)

	_, err := svc.SyncPlatformAccount(context.Background(), &domain.PlatformAccount{ID: "pa-1"}, day("2024-03-01"), day("2024-03-01"))
	assert.ErrorContains(t, err, "external_id")
}
