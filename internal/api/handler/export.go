package handler

import (
	"fmt"
	"net/http"

	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/exporting"
	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/reporting"
	"github.com/vfg2006/traffic-manager-kpi/pkg/log"
)

// ExportReport gera o relatório de campanhas. Com storage habilitado devolve a URL em JSON,
// senão devolve o arquivo como anexo.
func ExportReport(service reporting.Reporter, exporter exporting.Exporter, authorizer WorkspaceAuthorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := exporting.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			handleReportError(w, r, err)
			return
		}

		filters, ok := resolveRequestFilters(w, r, service, authorizer)
		if !ok {
			return
		}

		report, err := exporter.Export(r.Context(), filters, format)
		if err != nil {
			handleReportError(w, r, err)
			return
		}

		if report.Uploaded() {
			writeJSON(w, r, http.StatusOK, report)
			return
		}

		w.Header().Set("Content-Type", report.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(report.Content); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar relatório")
		}
	}
}
