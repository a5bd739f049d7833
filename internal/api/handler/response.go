package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/reporting"
	"github.com/vfg2006/traffic-manager-kpi/pkg/apiErrors"
	"github.com/vfg2006/traffic-manager-kpi/pkg/log"
	"github.com/vfg2006/traffic-manager-kpi/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// WorkspaceAuthorizer decide se as claims podem acessar um workspace
type WorkspaceAuthorizer interface {
	CanAccessWorkspace(claims *domain.Claims, workspaceID string) bool
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// handleReportError converte erros do reporting no código de API correspondente
func handleReportError(w http.ResponseWriter, r *http.Request, err error) {
	var reportErr *reporting.ReportError
	if errors.As(err, &reportErr) {
		if apiErrors.StatusFor(reportErr.Code) >= http.StatusInternalServerError {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao processar consulta de KPI")
		}
		apiErrors.WriteError(w, reportErr.Code, reportErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, reporting.ErrInvalidFilters):
		apiErrors.WriteError(w, apiErrors.ErrInvalidKPIFilter, err.Error(), nil)
	case errors.Is(err, reporting.ErrWorkspaceNotFound):
		apiErrors.WriteError(w, apiErrors.ErrWorkspaceNotFound, err.Error(), nil)
	default:
		log.ForContext(r.Context()).WithError(err).Error("Erro inesperado na consulta de KPI")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao consultar KPIs", nil)
	}
}

// authorizeWorkspace responde KPI_002 quando o usuário não pode ver o workspace.
// O mesmo código é usado para workspace inexistente para não revelar quais existem.
func authorizeWorkspace(w http.ResponseWriter, r *http.Request, authorizer WorkspaceAuthorizer, workspaceID string) bool {
	log.AddRequestField(r.Context(), log.FieldWorkspaceID, workspaceID)

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return false
	}

	if !authorizer.CanAccessWorkspace(claims, workspaceID) {
		log.ForContext(r.Context()).Warn("Acesso negado ao workspace")
		apiErrors.WriteError(w, apiErrors.ErrWorkspaceNotFound, "Workspace não encontrado", nil)
		return false
	}

	return true
}
