package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/integrator/meta"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/reporting"
	"github.com/vfg2006/traffic-manager-kpi/pkg/apiErrors"
)

type KPIResponse struct {
	Filters domain.KPIFilters      `json:"filters"`
	Data    []domain.AggregatedKPI `json:"data"`
}

type SummaryResponse struct {
	Filters domain.KPIFilters  `json:"filters"`
	Summary *domain.KPISummary `json:"summary"`
}

type TimeSeriesResponse struct {
	Filters domain.KPIFilters        `json:"filters"`
	Points  []domain.TimeSeriesPoint `json:"points"`
}

type OverviewResponse struct {
	Filters  domain.KPIFilters       `json:"filters"`
	Overview *domain.AccountOverview `json:"overview"`
}

type BreakdownResponse struct {
	Filters      domain.KPIFilters     `json:"filters"`
	CampaignID   string                `json:"campaign_id"`
	BreakdownKey string                `json:"breakdown_key"`
	Data         []domain.BreakdownKPI `json:"data"`
}

func filterParamsFromQuery(r *http.Request) reporting.FilterParams {
	query := r.URL.Query()
	return reporting.FilterParams{
		Platform:   query.Get("platform"),
		Level:      query.Get("level"),
		Period:     query.Get("period"),
		StartDate:  query.Get("start_date"),
		EndDate:    query.Get("end_date"),
		Days:       query.Get("days"),
		CampaignID: query.Get("campaign_id"),
	}
}

// resolveRequestFilters valida o acesso ao workspace e resolve os filtros da query
func resolveRequestFilters(w http.ResponseWriter, r *http.Request, service reporting.Reporter, authorizer WorkspaceAuthorizer) (domain.KPIFilters, bool) {
	workspaceID := httprouter.ParamsFromContext(r.Context()).ByName("workspace_id")
	if strings.TrimSpace(workspaceID) == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Workspace não informado", nil)
		return domain.KPIFilters{}, false
	}

	if !authorizeWorkspace(w, r, authorizer, workspaceID) {
		return domain.KPIFilters{}, false
	}

	filters, err := service.ResolveFilters(workspaceID, filterParamsFromQuery(r))
	if err != nil {
		handleReportError(w, r, err)
		return domain.KPIFilters{}, false
	}

	return filters, true
}

func GetKPIs(service reporting.Reporter, authorizer WorkspaceAuthorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, ok := resolveRequestFilters(w, r, service, authorizer)
		if !ok {
			return
		}

		kpis, err := service.GetKPIs(r.Context(), filters)
		if err != nil {
			handleReportError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, KPIResponse{Filters: filters, Data: kpis})
	}
}

func GetKPISummary(service reporting.Reporter, authorizer WorkspaceAuthorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, ok := resolveRequestFilters(w, r, service, authorizer)
		if !ok {
			return
		}

		summary, err := service.GetSummary(r.Context(), filters)
		if err != nil {
			handleReportError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, SummaryResponse{Filters: filters, Summary: summary})
	}
}

func GetKPITimeSeries(service reporting.Reporter, authorizer WorkspaceAuthorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, ok := resolveRequestFilters(w, r, service, authorizer)
		if !ok {
			return
		}

		points, err := service.GetTimeSeries(r.Context(), filters)
		if err != nil {
			handleReportError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, TimeSeriesResponse{Filters: filters, Points: points})
	}
}

func GetKPIOverview(service reporting.Reporter, authorizer WorkspaceAuthorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, ok := resolveRequestFilters(w, r, service, authorizer)
		if !ok {
			return
		}

		overview, err := service.GetOverview(r.Context(), filters)
		if err != nil {
			handleReportError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, OverviewResponse{Filters: filters, Overview: overview})
	}
}

// GetCampaignBreakdowns retorna os KPIs de uma campanha agrupados pelo valor do breakdown
func GetCampaignBreakdowns(service reporting.Reporter, authorizer WorkspaceAuthorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())
		campaignID := params.ByName("campaign_id")
		breakdownKey := params.ByName("breakdown_key")

		if _, ok := meta.LookupBreakdown(breakdownKey); !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidKPIFilter, "Breakdown inválido: "+breakdownKey, nil)
			return
		}

		filters, ok := resolveRequestFilters(w, r, service, authorizer)
		if !ok {
			return
		}

		data, err := service.GetBreakdowns(r.Context(), filters, campaignID, breakdownKey)
		if err != nil {
			handleReportError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, BreakdownResponse{
			Filters:      filters,
			CampaignID:   campaignID,
			BreakdownKey: breakdownKey,
			Data:         data,
		})
	}
}
