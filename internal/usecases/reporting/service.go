package reporting

import (
	"context"
	"errors"
	"time"

	"github.com/vfg2006/traffic-manager-kpi/infrastructure/cache"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/repository"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
	"github.com/vfg2006/traffic-manager-kpi/internal/kpi"
	"github.com/vfg2006/traffic-manager-kpi/pkg/apiErrors"
	"github.com/vfg2006/traffic-manager-kpi/pkg/log"
	"github.com/vfg2006/traffic-manager-kpi/pkg/metrics"
)

type Reporter interface {
	GetKPIs(ctx context.Context, filters domain.KPIFilters) ([]domain.AggregatedKPI, error)
	GetSummary(ctx context.Context, filters domain.KPIFilters) (*domain.KPISummary, error)
	GetTimeSeries(ctx context.Context, filters domain.KPIFilters) ([]domain.TimeSeriesPoint, error)
	GetOverview(ctx context.Context, filters domain.KPIFilters) (*domain.AccountOverview, error)
	GetBreakdowns(ctx context.Context, filters domain.KPIFilters, campaignID, breakdownKey string) ([]domain.BreakdownKPI, error)
	ResolveFilters(workspaceID string, params FilterParams) (domain.KPIFilters, error)
}

type Service struct {
	metricRepo   repository.MetricRepository
	campaignRepo repository.CampaignRepository
	accountRepo  repository.PlatformAccountRepository
	cache        cache.KPICache
	aggregator   *kpi.Aggregator
	defaults     FilterDefaults
	now          func() time.Time
}

func NewService(
	metricRepo repository.MetricRepository,
	campaignRepo repository.CampaignRepository,
	accountRepo repository.PlatformAccountRepository,
	kpiCache cache.KPICache,
	aggregator *kpi.Aggregator,
	defaults FilterDefaults,
) *Service {
	if kpiCache == nil {
		kpiCache = cache.NoopCache{}
	}
	if aggregator == nil {
		aggregator = kpi.NewAggregator(nil, nil, nil)
	}

	return &Service{
		metricRepo:   metricRepo,
		campaignRepo: campaignRepo,
		accountRepo:  accountRepo,
		cache:        kpiCache,
		aggregator:   aggregator,
		defaults:     defaults,
		now:          time.Now,
	}
}

func (s *Service) ResolveFilters(workspaceID string, params FilterParams) (domain.KPIFilters, error) {
	return ResolveFilters(workspaceID, params, s.defaults, s.now())
}

func (s *Service) GetKPIs(ctx context.Context, filters domain.KPIFilters) ([]domain.AggregatedKPI, error) {
	key := cacheKey("kpis", filters)

	var cached []domain.AggregatedKPI
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	accountIDs, err := s.platformAccountIDs(ctx, filters)
	if err != nil {
		return nil, err
	}
	if len(accountIDs) == 0 {
		return []domain.AggregatedKPI{}, nil
	}

	result, err := s.aggregate(ctx, filters, accountIDs)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, key, result)
	return result, nil
}

func (s *Service) GetSummary(ctx context.Context, filters domain.KPIFilters) (*domain.KPISummary, error) {
	filters.Level = domain.LevelCampaign
	filters.Period = domain.PeriodTotal

	kpis, err := s.GetKPIs(ctx, filters)
	if err != nil {
		return nil, err
	}

	summary := kpi.Summarize(kpis)
	return &summary, nil
}

func (s *Service) GetTimeSeries(ctx context.Context, filters domain.KPIFilters) ([]domain.TimeSeriesPoint, error) {
	filters.Level = domain.LevelCampaign
	filters.Period = domain.PeriodDay

	kpis, err := s.GetKPIs(ctx, filters)
	if err != nil {
		return nil, err
	}

	return kpi.TimeSeries(kpis), nil
}

func (s *Service) GetOverview(ctx context.Context, filters domain.KPIFilters) (*domain.AccountOverview, error) {
	filters.Level = domain.LevelCampaign
	filters.Period = domain.PeriodTotal
	filters.CampaignID = nil

	key := cacheKey("overview", filters)

	var cached domain.AccountOverview
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	kpis, err := s.GetKPIs(ctx, filters)
	if err != nil {
		return nil, err
	}

	accountIDs, err := s.platformAccountIDs(ctx, filters)
	if err != nil {
		return nil, err
	}

	var total, active int
	if len(accountIDs) > 0 {
		total, active, err = s.campaignRepo.CountCampaigns(ctx, accountIDs)
		if err != nil {
			return nil, NewReportError(err, apiErrors.ErrDatabaseOperation, "erro ao contar campanhas")
		}
	}

	overview := kpi.Overview(kpis, total, active, filters.StartDate.Format(time.DateOnly), filters.EndDate.Format(time.DateOnly))

	s.toCache(ctx, key, overview)
	return &overview, nil
}

func (s *Service) GetBreakdowns(ctx context.Context, filters domain.KPIFilters, campaignID, breakdownKey string) ([]domain.BreakdownKPI, error) {
	if campaignID == "" || breakdownKey == "" {
		return nil, NewReportError(ErrInvalidFilters, apiErrors.ErrInvalidKPIFilter, "campanha e breakdown são obrigatórios")
	}

	filters.CampaignID = &campaignID
	key := cacheKey("breakdowns:"+breakdownKey, filters)

	var cached []domain.BreakdownKPI
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	accountIDs, err := s.platformAccountIDs(ctx, filters)
	if err != nil {
		return nil, err
	}
	if len(accountIDs) == 0 {
		return []domain.BreakdownKPI{}, nil
	}

	started := time.Now()
	rows, err := s.metricRepo.ListBreakdowns(ctx, domain.MetricQuery{
		WorkspaceID:        filters.WorkspaceID,
		PlatformAccountIDs: accountIDs,
		StartDate:          filters.StartDate,
		EndDate:            filters.EndDate,
		CampaignID:         &campaignID,
		BreakdownKey:       &breakdownKey,
	})
	if err != nil {
		return nil, NewReportError(err, apiErrors.ErrDatabaseOperation, "erro ao buscar breakdowns")
	}

	deduplicated := kpi.DeduplicateByEntity(rows)
	result := s.aggregator.AggregateBreakdowns(deduplicated)

	metrics.Get().RecordAggregation("breakdown", len(rows), len(rows)-len(deduplicated), time.Since(started))

	s.toCache(ctx, key, result)
	return result, nil
}

func (s *Service) aggregate(ctx context.Context, filters domain.KPIFilters, accountIDs []string) ([]domain.AggregatedKPI, error) {
	started := time.Now()
	level := filters.Level

	rows, err := s.metricRepo.ListMetrics(ctx, domain.MetricQuery{
		WorkspaceID:        filters.WorkspaceID,
		PlatformAccountIDs: accountIDs,
		StartDate:          filters.StartDate,
		EndDate:            filters.EndDate,
		Level:              &level,
		CampaignID:         filters.CampaignID,
	})
	if err != nil {
		return nil, NewReportError(err, apiErrors.ErrDatabaseOperation, "erro ao buscar métricas")
	}

	deduplicated := kpi.DeduplicateByEntity(rows)

	objectives := map[string]string{}
	if campaignIDs := distinctCampaignIDs(deduplicated); len(campaignIDs) > 0 {
		objectives, err = s.campaignRepo.GetObjectives(ctx, campaignIDs)
		if err != nil {
			return nil, NewReportError(err, apiErrors.ErrDatabaseOperation, "erro ao buscar objetivos das campanhas")
		}
	}

	result := s.aggregator.Aggregate(deduplicated, level, filters.Period, objectives, filters.PlatformKey)

	metrics.Get().RecordAggregation(string(level), len(rows), len(rows)-len(deduplicated), time.Since(started))

	log.ForContext(ctx).WithFields(log.Fields{
		"workspace_id": filters.WorkspaceID,
		"level":        level,
		"period":       filters.Period,
		"rows":         len(rows),
		"duplicates":   len(rows) - len(deduplicated),
		"groups":       len(result),
	}).Debug("KPIs agregados")

	return result, nil
}

func (s *Service) platformAccountIDs(ctx context.Context, filters domain.KPIFilters) ([]string, error) {
	accounts, err := s.accountRepo.ListByWorkspace(ctx, filters.WorkspaceID, filters.PlatformKey)
	if err != nil {
		return nil, NewReportError(err, apiErrors.ErrDatabaseOperation, "erro ao buscar contas da plataforma")
	}

	ids := make([]string, 0, len(accounts))
	for _, account := range accounts {
		ids = append(ids, account.ID)
	}
	return ids, nil
}

func (s *Service) fromCache(ctx context.Context, key string, dest any) bool {
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}

	if !errors.Is(err, cache.ErrCacheMiss) {
		log.ForContext(ctx).WithError(err).Warn("Falha ao ler KPIs do cache")
	}
	return false
}

func (s *Service) toCache(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		log.ForContext(ctx).WithError(err).Warn("Falha ao gravar KPIs no cache")
	}
}

func cacheKey(operation string, filters domain.KPIFilters) string {
	campaignID := ""
	if filters.CampaignID != nil {
		campaignID = *filters.CampaignID
	}

	return cache.Key(
		operation,
		filters.WorkspaceID,
		filters.PlatformKey,
		string(filters.Level),
		string(filters.Period),
		filters.StartDate.Format(time.DateOnly),
		filters.EndDate.Format(time.DateOnly),
		campaignID,
	)
}

func distinctCampaignIDs(rows []domain.RawMetricRow) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)

	for _, row := range rows {
		if row.CampaignID == nil {
			continue
		}
		if _, ok := seen[*row.CampaignID]; ok {
			continue
		}
		seen[*row.CampaignID] = struct{}{}
		ids = append(ids, *row.CampaignID)
	}

	return ids
}

var _ Reporter = (*Service)(nil)
