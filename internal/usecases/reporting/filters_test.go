package reporting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
	"github.com/vfg2006/traffic-manager-kpi/pkg/apiErrors"
)

var (
	testDefaults = FilterDefaults{DefaultDays: 7, MaxDays: 90}
	testNow      = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
)

func date(value string) time.Time {
	parsed, _ := time.Parse(time.DateOnly, value)
	return parsed
}

func TestResolveFilters(t *testing.T) {
	tests := []struct {
		name     string
		params   FilterParams
		validate func(t *testing.T, filters domain.KPIFilters, err error)
	}{
		{
			name:   "padrões",
			params: FilterParams{},
			validate: func(t *testing.T, filters domain.KPIFilters, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.PlatformMeta, filters.PlatformKey)
				assert.Equal(t, domain.LevelCampaign, filters.Level)
				assert.Equal(t, domain.PeriodTotal, filters.Period)
				assert.Equal(t, date("2024-03-08"), filters.StartDate)
				assert.Equal(t, date("2024-03-14"), filters.EndDate)
				assert.Nil(t, filters.CampaignID)
			},
		},
		{
			name:   "days acima do máximo é limitado",
			params: FilterParams{Days: "365"},
			validate: func(t *testing.T, filters domain.KPIFilters, err error) {
				require.NoError(t, err)
				assert.Equal(t, date("2023-12-16"), filters.StartDate)
			},
		},
		{
			name:   "days inválido usa o padrão",
			params: FilterParams{Days: "abc"},
			validate: func(t *testing.T, filters domain.KPIFilters, err error) {
				require.NoError(t, err)
				assert.Equal(t, date("2024-03-08"), filters.StartDate)
			},
		},
		{
			name:   "days zero usa o padrão",
			params: FilterParams{Days: "0"},
			validate: func(t *testing.T, filters domain.KPIFilters, err error) {
				require.NoError(t, err)
				assert.Equal(t, date("2024-03-08"), filters.StartDate)
			},
		},
		{
			name:   "datas explícitas têm prioridade",
			params: FilterParams{StartDate: "2024-02-01", EndDate: "2024-02-29", Days: "3"},
			validate: func(t *testing.T, filters domain.KPIFilters, err error) {
				require.NoError(t, err)
				assert.Equal(t, date("2024-02-01"), filters.StartDate)
				assert.Equal(t, date("2024-02-29"), filters.EndDate)
			},
		},
		{
			name:   "somente end_date usa a janela de days",
			params: FilterParams{EndDate: "2024-02-10", Days: "10"},
			validate: func(t *testing.T, filters domain.KPIFilters, err error) {
				require.NoError(t, err)
				assert.Equal(t, date("2024-02-01"), filters.StartDate)
			},
		},
		{
			name:   "nível, período e plataforma informados",
			params: FilterParams{Platform: "GOOGLE_ADS", Level: "adset", Period: "week", CampaignID: "c-1"},
			validate: func(t *testing.T, filters domain.KPIFilters, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.PlatformGoogleAds, filters.PlatformKey)
				assert.Equal(t, domain.LevelAdSet, filters.Level)
				assert.Equal(t, domain.PeriodWeek, filters.Period)
				assert.Equal(t, "c-1", *filters.CampaignID)
			},
		},
		{
			name:   "nível inválido",
			params: FilterParams{Level: "region"},
			validate: func(t *testing.T, filters domain.KPIFilters, err error) {
				assertReportError(t, err, apiErrors.ErrInvalidKPIFilter)
			},
		},
		{
			name:   "período inválido",
			params: FilterParams{Period: "year"},
			validate: func(t *testing.T, filters domain.KPIFilters, err error) {
				assertReportError(t, err, apiErrors.ErrInvalidKPIFilter)
			},
		},
		{
			name:   "plataforma inválida",
			params: FilterParams{Platform: "tiktok"},
			validate: func(t *testing.T, filters domain.KPIFilters, err error) {
				assertReportError(t, err, apiErrors.ErrInvalidKPIFilter)
			},
		},
		{
			name:   "data em formato inválido",
			params: FilterParams{StartDate: "01/03/2024"},
			validate: func(t *testing.T, filters domain.KPIFilters, err error) {
				assertReportError(t, err, apiErrors.ErrInvalidFormat)
			},
		},
		{
			name:   "início depois do fim",
			params: FilterParams{StartDate: "2024-03-10", EndDate: "2024-03-01"},
			validate: func(t *testing.T, filters domain.KPIFilters, err error) {
				assertReportError(t, err, apiErrors.ErrInvalidKPIFilter)
			},
		},
		{
			name:   "intervalo maior que o máximo",
			params: FilterParams{StartDate: "2023-01-01", EndDate: "2024-03-01"},
			validate: func(t *testing.T, filters domain.KPIFilters, err error) {
				assertReportError(t, err, apiErrors.ErrInvalidKPIFilter)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters, err := ResolveFilters("ws-1", tt.params, testDefaults, testNow)
			tt.validate(t, filters, err)
		})
	}
}

func TestResolveFilters_MissingWorkspace(t *testing.T) {
	_, err := ResolveFilters(" ", FilterParams{}, testDefaults, testNow)

	assert.ErrorIs(t, err, ErrWorkspaceNotFound)
}

func assertReportError(t *testing.T, err error, code string) {
	t.Helper()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFilters)

	var reportErr *ReportError
	require.True(t, errors.As(err, &reportErr))
	assert.Equal(t, code, reportErr.Code)
}
