package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/repository"
	"github.com/vfg2006/traffic-manager-kpi/internal/config"
	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/reporting"
)

type KPIWarmupConfig struct {
	CronSchedule string
	Days         int
	Enabled      bool
}

// KPIWarmupService pré-calcula os KPIs de campanha e o resumo de cada workspace,
// deixando o resultado no cache usado pela API
type KPIWarmupService struct {
	scheduler             *gocron.Scheduler
	config                KPIWarmupConfig
	accountRepo           repository.PlatformAccountRepository
	reporter              reporting.Reporter
	syncRunning           bool
	syncMutex             sync.Mutex
	lastWarmupStartedAt   time.Time
	lastWarmupCompletedAt time.Time
	lastWarmupWorkspaces  int
}

func NewKPIWarmupService(
	accountRepo repository.PlatformAccountRepository,
	reporter reporting.Reporter,
	appConfig *config.Config,
) *KPIWarmupService {
	warmupConfig := KPIWarmupConfig{
		CronSchedule: appConfig.KPIWarmup.CronSchedule,
		Days:         appConfig.KPIWarmup.Days,
		Enabled:      appConfig.KPIWarmup.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": warmupConfig.CronSchedule,
		"days":          warmupConfig.Days,
		"enabled":       warmupConfig.Enabled,
	}).Info("Configuração do pré-cálculo de KPIs carregada")

	return &KPIWarmupService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      warmupConfig,
		accountRepo: accountRepo,
		reporter:    reporter,
	}
}

func (s *KPIWarmupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Pré-cálculo de KPIs desabilitado por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.warmupAll(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar pré-cálculo de KPIs: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de pré-cálculo de KPIs")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *KPIWarmupService) warmupAll(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Pré-cálculo de KPIs já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastWarmupStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	workspaces, err := s.accountRepo.ListActiveWorkspaces(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar workspaces para pré-cálculo de KPIs")
		return
	}

	warmed := 0
	for _, workspaceID := range workspaces {
		if err := s.warmupWorkspace(ctx, workspaceID); err != nil {
			logrus.WithFields(logrus.Fields{
				"workspace_id": workspaceID,
				"error":        err.Error(),
			}).Error("Erro no pré-cálculo de KPIs do workspace")
			continue
		}
		warmed++
	}

	s.syncMutex.Lock()
	s.lastWarmupCompletedAt = time.Now()
	s.lastWarmupWorkspaces = warmed
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"workspaces": len(workspaces),
		"warmed":     warmed,
	}).Info("Pré-cálculo de KPIs concluído")
}

func (s *KPIWarmupService) warmupWorkspace(ctx context.Context, workspaceID string) error {
	params := reporting.FilterParams{}
	if s.config.Days > 0 {
		params.Days = strconv.Itoa(s.config.Days)
	}

	filters, err := s.reporter.ResolveFilters(workspaceID, params)
	if err != nil {
		return err
	}

	if _, err := s.reporter.GetKPIs(ctx, filters); err != nil {
		return err
	}
	if _, err := s.reporter.GetSummary(ctx, filters); err != nil {
		return err
	}

	return nil
}

func (s *KPIWarmupService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Pré-cálculo de KPIs já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	go s.warmupAll(context.WithoutCancel(ctx))
	return true
}

func (s *KPIWarmupService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"warmup_enabled":           s.config.Enabled,
		"warmup_cron":              s.config.CronSchedule,
		"warmup_days":              s.config.Days,
		"warmup_running":           s.syncRunning,
		"last_warmup_started_at":   s.lastWarmupStartedAt,
		"last_warmup_completed_at": s.lastWarmupCompletedAt,
		"last_warmup_workspaces":   s.lastWarmupWorkspaces,
	}
}
