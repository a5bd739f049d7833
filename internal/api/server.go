package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-manager-kpi/internal/api/handler"
	"github.com/vfg2006/traffic-manager-kpi/internal/api/handler/router"
	"github.com/vfg2006/traffic-manager-kpi/internal/config"
	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/exporting"
	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/reporting"
	"github.com/vfg2006/traffic-manager-kpi/pkg/middleware"
)

const defaultShutdownTimeout = 15 * time.Second

type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

// Services agrupa as dependências expostas pela API
type Services struct {
	Reporter      reporting.Reporter
	Exporter      exporting.Exporter
	Authenticator authenticating.Authenticator
	CronJobs      handler.CronJobServices
	Database      handler.Pinger
}

func NewHandler(cfg *config.Config, services Services) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(services.Database)...),
		router.WithRoutes(handler.Metrics()...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.KPIs(services.Reporter, services.Authenticator)...),
		router.WithRoutes(handler.Reports(services.Reporter, services.Exporter, services.Authenticator)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(cfg *config.Config, services Services) (*Server, error) {
	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": s.shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
