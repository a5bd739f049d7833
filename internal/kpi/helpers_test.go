package kpi

import (
	"time"

	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
)

func stringPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func granularityPtr(g domain.Granularity) *domain.Granularity {
	return &g
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func actions(pairs ...any) domain.ExtraMetrics {
	extra := domain.ExtraMetrics{}
	for i := 0; i+1 < len(pairs); i += 2 {
		entry := domain.ActionEntry{ActionType: pairs[i].(string)}
		if v, ok := pairs[i+1].(float64); ok {
			entry.Value = floatPtr(v)
		}
		extra.Actions = append(extra.Actions, entry)
	}
	return extra
}

func campaignRow(campaignID string, date time.Time, spend float64, extra domain.ExtraMetrics) domain.RawMetricRow {
	return domain.RawMetricRow{
		MetricDate:        date,
		WorkspaceID:       "ws-1",
		PlatformKey:       domain.PlatformMeta,
		PlatformAccountID: "pa-1",
		CampaignID:        stringPtr(campaignID),
		Granularity:       granularityPtr(domain.GranularityDay),
		Currency:          "BRL",
		Spend:             spend,
		ExtraMetrics:      extra,
	}
}
