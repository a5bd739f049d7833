package syncing

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-manager-kpi/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/integrator/meta"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/repository"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
	"github.com/vfg2006/traffic-manager-kpi/pkg/metrics"
)

const defaultBatchDays = 7

// Service grava cada lote numa transação; metricRepoFor abre o repositório sobre ela
type Service struct {
	source        MetricSource
	transactor    Transactor
	campaignRepo  repository.CampaignRepository
	metricRepoFor func(postgres.Queryer) repository.MetricRepository
	levels        []string
	breakdowns    []string
	batchDays     int
}

func NewService(
	source MetricSource,
	transactor Transactor,
	campaignRepo repository.CampaignRepository,
	breakdowns []string,
	batchDays int,
) *Service {
	if batchDays <= 0 {
		batchDays = defaultBatchDays
	}

	return &Service{
		source:        source,
		transactor:    transactor,
		campaignRepo:  campaignRepo,
		metricRepoFor: repository.NewMetricRepository,
		levels:        meta.Levels,
		breakdowns:    breakdowns,
		batchDays:     batchDays,
	}
}

// SyncPlatformAccount grava campanhas, métricas diárias e breakdowns do intervalo [since, until].
// As linhas são sempre inseridas como nova versão, nunca atualizadas.
func (s *Service) SyncPlatformAccount(ctx context.Context, account *domain.PlatformAccount, since, until time.Time) (*domain.SyncResult, error) {
	if account == nil || account.ExternalID == "" {
		return nil, fmt.Errorf("conta de plataforma sem external_id")
	}
	if until.Before(since) {
		return nil, fmt.Errorf("intervalo de sincronização inválido: %s a %s",
			since.Format(time.DateOnly), until.Format(time.DateOnly))
	}

	startTime := time.Now()
	result := &domain.SyncResult{PlatformAccountID: account.ID}

	logger := logrus.WithFields(logrus.Fields{
		"platform_account_id": account.ID,
		"external_id":         account.ExternalID,
		"since":               since.Format(time.DateOnly),
		"until":               until.Format(time.DateOnly),
	})
	logger.Info("Iniciando sincronização da conta")

	campaignIDs, err := s.syncCampaigns(ctx, account)
	if err != nil {
		metrics.Get().MetricSyncErrorsTotal.Inc()
		return nil, err
	}
	result.Campaigns = len(campaignIDs)

	for _, batch := range splitDateRange(since, until, s.batchDays) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := s.syncBatch(ctx, account, batch, campaignIDs, result); err != nil {
			metrics.Get().MetricSyncErrorsTotal.Inc()
			logger.WithError(err).Error("Erro ao sincronizar lote de métricas")
			return result, err
		}
		result.Batches++
	}

	result.Duration = time.Since(startTime)

	logger.WithFields(logrus.Fields{
		"campaigns":      result.Campaigns,
		"metric_rows":    result.MetricRows,
		"breakdown_rows": result.BreakdownRows,
		"batches":        result.Batches,
		"duration":       result.Duration.String(),
	}).Info("Sincronização da conta concluída")

	return result, nil
}

func (s *Service) syncCampaigns(ctx context.Context, account *domain.PlatformAccount) (map[string]string, error) {
	campaigns, err := s.source.ListCampaigns(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar campanhas: %w", err)
	}

	if len(campaigns) == 0 {
		return map[string]string{}, nil
	}

	campaignIDs, err := s.campaignRepo.UpsertCampaigns(ctx, campaigns)
	if err != nil {
		return nil, fmt.Errorf("erro ao gravar campanhas: %w", err)
	}

	return campaignIDs, nil
}

type fetchedRows struct {
	label string
	rows  []domain.RawMetricRow
}

// syncBatch busca todos os níveis e breakdowns do lote e grava tudo numa única transação
func (s *Service) syncBatch(ctx context.Context, account *domain.PlatformAccount, batch dateRange, campaignIDs map[string]string, result *domain.SyncResult) error {
	var levelRows, breakdownRows []fetchedRows

	for _, level := range s.levels {
		rows, err := s.source.FetchMetrics(ctx, account, level, batch.since, batch.until, campaignIDs)
		if err != nil {
			return fmt.Errorf("erro ao buscar métricas do nível %s: %w", level, err)
		}
		if len(rows) > 0 {
			levelRows = append(levelRows, fetchedRows{label: level, rows: rows})
		}
	}

	for _, breakdownKey := range s.breakdowns {
		rows, err := s.source.FetchBreakdowns(ctx, account, breakdownKey, batch.since, batch.until, campaignIDs)
		if err != nil {
			return fmt.Errorf("erro ao buscar breakdown %s: %w", breakdownKey, err)
		}
		if len(rows) > 0 {
			breakdownRows = append(breakdownRows, fetchedRows{label: breakdownKey, rows: rows})
		}
	}

	if len(levelRows) == 0 && len(breakdownRows) == 0 {
		return nil
	}

	var insertedMetrics, insertedBreakdowns int64
	err := s.transactor.RunInTransaction(ctx, func(tx *sql.Tx) error {
		repo := s.metricRepoFor(tx)

		for _, item := range levelRows {
			inserted, err := repo.InsertMetrics(ctx, item.rows)
			if err != nil {
				return fmt.Errorf("erro ao gravar métricas do nível %s: %w", item.label, err)
			}
			insertedMetrics += inserted
		}

		for _, item := range breakdownRows {
			inserted, err := repo.InsertBreakdowns(ctx, item.rows)
			if err != nil {
				return fmt.Errorf("erro ao gravar breakdown %s: %w", item.label, err)
			}
			insertedBreakdowns += inserted
		}

		return nil
	})
	if err != nil {
		return err
	}

	result.MetricRows += insertedMetrics
	result.BreakdownRows += insertedBreakdowns
	metrics.Get().MetricSyncRowsTotal.WithLabelValues("performance_metrics").Add(float64(insertedMetrics))
	metrics.Get().MetricSyncRowsTotal.WithLabelValues("performance_metric_breakdowns").Add(float64(insertedBreakdowns))

	return nil
}

type dateRange struct {
	since time.Time
	until time.Time
}

// splitDateRange divide [since, until] em lotes de no máximo batchDays dias
func splitDateRange(since, until time.Time, batchDays int) []dateRange {
	var batches []dateRange

	for start := since; !start.After(until); start = start.AddDate(0, 0, batchDays) {
		end := start.AddDate(0, 0, batchDays-1)
		if end.After(until) {
			end = until
		}
		batches = append(batches, dateRange{since: start, until: end})
	}

	return batches
}
