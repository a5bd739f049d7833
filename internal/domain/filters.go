package domain

import "time"

const (
	PlatformMeta      = "meta"
	PlatformGoogleAds = "google_ads"
)

// KPIFilters são os filtros já validados de uma consulta de KPI
type KPIFilters struct {
	WorkspaceID string        `json:"workspace_id"`
	PlatformKey string        `json:"platform_key"`
	Level       GroupingLevel `json:"level"`
	Period      Period        `json:"period"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	CampaignID  *string       `json:"campaign_id,omitempty"`
}

// MetricQuery descreve a busca de linhas brutas no banco
type MetricQuery struct {
	WorkspaceID        string
	PlatformAccountIDs []string
	StartDate          time.Time
	EndDate            time.Time
	Level              *GroupingLevel
	CampaignID         *string
	BreakdownKey       *string
}
