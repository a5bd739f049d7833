package syncing

import (
	"context"
	"database/sql"
	"time"

	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
)

// MetricSource define a origem das campanhas e métricas de uma plataforma
type MetricSource interface {
	// ListCampaigns lista as campanhas da conta com objetivo e status
	ListCampaigns(ctx context.Context, account *domain.PlatformAccount) ([]*domain.Campaign, error)

	// FetchMetrics busca as linhas diárias de um nível (account, campaign, adset, ad)
	FetchMetrics(ctx context.Context, account *domain.PlatformAccount, level string, since, until time.Time, campaignIDs map[string]string) ([]domain.RawMetricRow, error)

	// FetchBreakdowns busca as linhas de campanha quebradas por dimensão
	FetchBreakdowns(ctx context.Context, account *domain.PlatformAccount, breakdownKey string, since, until time.Time, campaignIDs map[string]string) ([]domain.RawMetricRow, error)
}

// Syncer sincroniza uma conta de plataforma para as tabelas de métricas
type Syncer interface {
	SyncPlatformAccount(ctx context.Context, account *domain.PlatformAccount, since, until time.Time) (*domain.SyncResult, error)
}

// Transactor executa fn numa transação, com commit apenas quando fn não retorna erro
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error
}
