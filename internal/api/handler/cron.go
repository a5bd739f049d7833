package handler

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/traffic-manager-kpi/pkg/apiErrors"
	"github.com/vfg2006/traffic-manager-kpi/pkg/log"
)

const (
	CronJobTypeMetricSync = "metric-sync"
	CronJobTypeKPIWarmup  = "kpi-warmup"
	CronJobTypeAll        = "all"
)

// CronJob é um agendador que pode ser disparado manualmente
type CronJob interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// CronJobServices mapeia o tipo da cron para o seu serviço
type CronJobServices map[string]CronJob

func (s CronJobServices) types() []string {
	types := make([]string, 0, len(s))
	for name := range s {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		started := map[string]bool{}

		if cronType == CronJobTypeAll {
			for name, job := range services {
				started[name] = job.TriggerManualSync(r.Context())
			}
		} else {
			job, ok := services[cronType]
			if !ok || job == nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest,
					"Tipo de cron job inválido. Valores aceitos: "+strings.Join(append(services.types(), CronJobTypeAll), ", "), nil)
				return
			}
			started[cronType] = job.TriggerManualSync(r.Context())
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"type":    cronType,
			"started": started,
		}).Info("Execução manual de cron job solicitada")

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
			"started": started,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services))
		for name, job := range services {
			status[name] = job.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
