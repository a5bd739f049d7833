package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/traffic-manager-kpi/internal/api/handler/router"
	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/exporting"
	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/reporting"
	"github.com/vfg2006/traffic-manager-kpi/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func KPIs(service reporting.Reporter, authorizer WorkspaceAuthorizer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/workspaces/:workspace_id/kpis",
			Method:      http.MethodGet,
			Handler:     GetKPIs(service, authorizer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/workspaces/:workspace_id/kpis/summary",
			Method:      http.MethodGet,
			Handler:     GetKPISummary(service, authorizer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/workspaces/:workspace_id/kpis/timeseries",
			Method:      http.MethodGet,
			Handler:     GetKPITimeSeries(service, authorizer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/workspaces/:workspace_id/kpis/overview",
			Method:      http.MethodGet,
			Handler:     GetKPIOverview(service, authorizer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/workspaces/:workspace_id/campaigns/:campaign_id/breakdowns/:breakdown_key",
			Method:      http.MethodGet,
			Handler:     GetCampaignBreakdowns(service, authorizer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Reports(service reporting.Reporter, exporter exporting.Exporter, authorizer WorkspaceAuthorizer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/workspaces/:workspace_id/reports/export",
			Method:      http.MethodGet,
			Handler:     ExportReport(service, exporter, authorizer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
