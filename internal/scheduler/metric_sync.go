package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/repository"
	"github.com/vfg2006/traffic-manager-kpi/internal/config"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/syncing"
)

// MetricSyncConfig representa a configuração do agendador de sincronização de métricas
type MetricSyncConfig struct {
	CronSchedule      string
	LookbackDays      int
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// MetricSyncService gerencia o agendamento da sincronização das contas de plataforma
type MetricSyncService struct {
	scheduler           *gocron.Scheduler
	config              MetricSyncConfig
	accountRepo         repository.PlatformAccountRepository
	syncer              syncing.Syncer
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncErrors      int
}

func NewMetricSyncService(
	accountRepo repository.PlatformAccountRepository,
	syncer syncing.Syncer,
	appConfig *config.Config,
) *MetricSyncService {
	syncConfig := MetricSyncConfig{
		CronSchedule:      appConfig.MetricSync.CronSchedule,
		LookbackDays:      appConfig.MetricSync.LookbackDays,
		MaxConcurrentJobs: appConfig.MetricSync.MaxConcurrentJobs,
		SyncEnabled:       appConfig.MetricSync.Enabled,
	}
	if syncConfig.LookbackDays <= 0 {
		syncConfig.LookbackDays = 1
	}
	if syncConfig.MaxConcurrentJobs <= 0 {
		syncConfig.MaxConcurrentJobs = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"lookback_days":       syncConfig.LookbackDays,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização de métricas carregada")

	return &MetricSyncService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      syncConfig,
		accountRepo: accountRepo,
		syncer:      syncer,
		now:         time.Now,
	}
}

// Start inicia o agendador
func (s *MetricSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de métricas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de métricas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllAccounts(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de métricas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de métricas")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllAccounts sincroniza todas as contas Meta ativas na janela de lookback
func (s *MetricSyncService) syncAllAccounts(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de métricas já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	startTime := time.Now()

	accounts, err := s.accountRepo.ListActive(ctx, domain.PlatformMeta)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar contas para sincronização de métricas")
		return
	}
	if len(accounts) == 0 {
		logrus.Info("Nenhuma conta ativa encontrada para sincronização de métricas")
		return
	}

	since, until := s.lookbackWindow()
	logrus.WithFields(logrus.Fields{
		"accounts":   len(accounts),
		"start_date": since.Format(time.DateOnly),
		"end_date":   until.Format(time.DateOnly),
	}).Info("Iniciando sincronização de métricas")

	failures := s.processAccounts(ctx, accounts, since, until)

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = s.now()
	s.lastSyncErrors = failures
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"accounts": len(accounts),
		"failures": failures,
	}).Info("Sincronização de métricas concluída")
}

// lookbackWindow retorna [hoje - LookbackDays, ontem]
func (s *MetricSyncService) lookbackWindow() (time.Time, time.Time) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -s.config.LookbackDays), today.AddDate(0, 0, -1)
}

// processAccounts sincroniza as contas em paralelo e devolve a quantidade de falhas
func (s *MetricSyncService) processAccounts(ctx context.Context, accounts []*domain.PlatformAccount, since, until time.Time) int {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0

	for _, account := range accounts {
		if account.ExternalID == "" {
			logrus.WithField("platform_account_id", account.ID).Warn("Conta sem external_id. Pulando.")
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *domain.PlatformAccount) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			if _, err := s.syncer.SyncPlatformAccount(ctx, acc, since, until); err != nil {
				logrus.WithFields(logrus.Fields{
					"platform_account_id": acc.ID,
					"external_id":         acc.ExternalID,
					"error":               err.Error(),
				}).Error("Erro ao sincronizar conta")

				mu.Lock()
				failures++
				mu.Unlock()
			}
		}(account)
	}

	wg.Wait()
	return failures
}

// TriggerManualSync inicia manualmente uma sincronização. Retorna false se já houver uma em andamento.
func (s *MetricSyncService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de métricas já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de métricas")
	go s.syncAllAccounts(context.WithoutCancel(ctx))
	return true
}

// GetStatus retorna o status atual do agendador
func (s *MetricSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_failures":     s.lastSyncErrors,
	}
}
