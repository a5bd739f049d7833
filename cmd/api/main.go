package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/cache"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/integrator/meta"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/migration"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/repository"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/storage"
	"github.com/vfg2006/traffic-manager-kpi/internal/api"
	"github.com/vfg2006/traffic-manager-kpi/internal/api/handler"
	"github.com/vfg2006/traffic-manager-kpi/internal/config"
	"github.com/vfg2006/traffic-manager-kpi/internal/kpi"
	"github.com/vfg2006/traffic-manager-kpi/internal/scheduler"
	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/exporting"
	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/reporting"
	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/syncing"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.RunMigrations {
		if _, err := migration.Up(pgConn.DB); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações")
		}
	}

	metricRepo := repository.NewMetricRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	platformAccountRepo := repository.NewPlatformAccountRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	kpiCache, closeCache := newKPICache(ctx, cfg)
	defer closeCache()

	aggregator := kpi.NewAggregator(
		kpi.NewResolver(kpi.Precedence{
			Primary:  cfg.KPI.PrimaryActions,
			Fallback: cfg.KPI.FallbackActions,
		}),
		kpi.DefaultClassifier(),
		cfg.KPI.RevenueActions,
	)

	authenticator := authenticating.NewService(userRepo, cfg)

	reportService := reporting.NewService(
		metricRepo,
		campaignRepo,
		platformAccountRepo,
		kpiCache,
		aggregator,
		reporting.FilterDefaults{DefaultDays: cfg.KPI.DefaultDays, MaxDays: cfg.KPI.MaxDays},
	)

	exportService := exporting.NewService(reportService, newUploader(ctx, cfg))

	metaClient := metaclient.NewClient(cfg)
	if err := metaClient.CheckToken(ctx); err != nil {
		// A API de KPIs continua servindo o que já foi sincronizado
		logrus.WithError(err).Error("Token da Meta inválido, a sincronização vai falhar até ser corrigido")
	}
	metaIntegrator := meta.New(metaClient)

	syncService := syncing.NewService(
		metaIntegrator,
		pgConn,
		campaignRepo,
		cfg.Meta.Breakdowns,
		cfg.Meta.SyncBatchDays,
	)

	metricSyncService := scheduler.NewMetricSyncService(platformAccountRepo, syncService, cfg)
	kpiWarmupService := scheduler.NewKPIWarmupService(platformAccountRepo, reportService, cfg)

	if err := metricSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de métricas")
	} else {
		logrus.Info("Agendador de sincronização de métricas iniciado com sucesso")
	}

	if err := kpiWarmupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de pré-cálculo de KPIs")
	} else {
		logrus.Info("Agendador de pré-cálculo de KPIs iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Reporter:      reportService,
		Exporter:      exportService,
		Authenticator: authenticator,
		Database:      pgConn,
		CronJobs: handler.CronJobServices{
			handler.CronJobTypeMetricSync: metricSyncService,
			handler.CronJobTypeKPIWarmup:  kpiWarmupService,
		},
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// newKPICache usa o Redis quando habilitado. Sem Redis as consultas vão sempre ao banco.
func newKPICache(ctx context.Context, cfg *config.Config) (cache.KPICache, func() error) {
	noop := func() error { return nil }

	if !cfg.Redis.Enabled {
		logrus.Info("Cache de KPIs desabilitado")
		return cache.NoopCache{}, noop
	}

	redisCache, closeFn, err := cache.NewRedisCache(ctx, cfg.Redis.URL, cfg.Redis.TTL)
	if err != nil {
		logrus.WithError(err).Warn("Redis indisponível, seguindo sem cache de KPIs")
		return cache.NoopCache{}, noop
	}

	return redisCache, closeFn
}

func newUploader(ctx context.Context, cfg *config.Config) storage.Uploader {
	if !cfg.Report.S3Enabled {
		return nil
	}

	uploader, err := storage.NewS3Uploader(ctx, storage.S3Config{
		Bucket:       cfg.Report.Bucket,
		Region:       cfg.Report.Region,
		Endpoint:     cfg.Report.Endpoint,
		UsePathStyle: cfg.Report.UsePathStyle,
		PublicURL:    cfg.Report.PublicURL,
	})
	if err != nil {
		logrus.WithError(err).Warn("Storage de relatórios indisponível, exportações serão devolvidas na resposta")
		return nil
	}

	return uploader
}
