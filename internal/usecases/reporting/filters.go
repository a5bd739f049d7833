package reporting

import (
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
	"github.com/vfg2006/traffic-manager-kpi/pkg/apiErrors"
	"github.com/vfg2006/traffic-manager-kpi/pkg/utils"
)

// FilterParams são os parâmetros de consulta ainda não validados
type FilterParams struct {
	Platform   string
	Level      string
	Period     string
	StartDate  string
	EndDate    string
	Days       string
	CampaignID string
}

type FilterDefaults struct {
	DefaultDays int
	MaxDays     int
}

// ResolveFilters valida os parâmetros e aplica os padrões: plataforma meta, nível campaign,
// período total e janela de DefaultDays dias encerrada ontem. Datas explícitas têm prioridade
// sobre days.
func ResolveFilters(workspaceID string, params FilterParams, defaults FilterDefaults, now time.Time) (domain.KPIFilters, error) {
	if strings.TrimSpace(workspaceID) == "" {
		return domain.KPIFilters{}, NewReportError(ErrWorkspaceNotFound, apiErrors.ErrWorkspaceNotFound, "workspace não informado")
	}

	filters := domain.KPIFilters{
		WorkspaceID: workspaceID,
		PlatformKey: domain.PlatformMeta,
		Level:       domain.LevelCampaign,
		Period:      domain.PeriodTotal,
	}

	if platform := strings.ToLower(strings.TrimSpace(params.Platform)); platform != "" {
		if platform != domain.PlatformMeta && platform != domain.PlatformGoogleAds {
			return filters, NewReportError(ErrInvalidFilters, apiErrors.ErrInvalidKPIFilter, "plataforma inválida: "+params.Platform)
		}
		filters.PlatformKey = platform
	}

	if params.Level != "" {
		level, ok := domain.ParseGroupingLevel(strings.ToLower(params.Level))
		if !ok {
			return filters, NewReportError(ErrInvalidFilters, apiErrors.ErrInvalidKPIFilter, "nível inválido: "+params.Level)
		}
		filters.Level = level
	}

	if params.Period != "" {
		period, ok := domain.ParsePeriod(strings.ToLower(params.Period))
		if !ok {
			return filters, NewReportError(ErrInvalidFilters, apiErrors.ErrInvalidKPIFilter, "período inválido: "+params.Period)
		}
		filters.Period = period
	}

	if campaignID := strings.TrimSpace(params.CampaignID); campaignID != "" {
		filters.CampaignID = &campaignID
	}

	startDate, endDate, err := resolveDateRange(params, defaults, now)
	if err != nil {
		return filters, err
	}
	filters.StartDate = startDate
	filters.EndDate = endDate

	return filters, nil
}

func resolveDateRange(params FilterParams, defaults FilterDefaults, now time.Time) (time.Time, time.Time, error) {
	maxDays := defaults.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	days := parseDays(params.Days, defaults.DefaultDays, maxDays)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	endDate := today.AddDate(0, 0, -1)

	if params.EndDate != "" {
		parsed, err := utils.ParseDate(params.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, NewReportError(ErrInvalidFilters, apiErrors.ErrInvalidFormat, "end_date deve estar no formato YYYY-MM-DD")
		}
		endDate = *parsed
	}

	startDate := endDate.AddDate(0, 0, -(days - 1))
	if params.StartDate != "" {
		parsed, err := utils.ParseDate(params.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, NewReportError(ErrInvalidFilters, apiErrors.ErrInvalidFormat, "start_date deve estar no formato YYYY-MM-DD")
		}
		startDate = *parsed
	}

	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, NewReportError(ErrInvalidFilters, apiErrors.ErrInvalidKPIFilter, "start_date posterior a end_date")
	}

	if span := int(endDate.Sub(startDate).Hours()/24) + 1; span > maxDays {
		return time.Time{}, time.Time{}, NewReportError(ErrInvalidFilters, apiErrors.ErrInvalidKPIFilter,
			"intervalo máximo é de "+strconv.Itoa(maxDays)+" dias")
	}

	return startDate, endDate, nil
}

// parseDays usa o padrão para valores ausentes ou não positivos e limita ao máximo
func parseDays(value string, defaultDays, maxDays int) int {
	if defaultDays <= 0 {
		defaultDays = 7
	}

	days, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || days <= 0 {
		days = defaultDays
	}

	return min(days, maxDays)
}
