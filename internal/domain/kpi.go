package domain

type ResultLabel string

const (
	ResultLabelLeads        ResultLabel = "Leads"
	ResultLabelConversas    ResultLabel = "Conversas"
	ResultLabelCliques      ResultLabel = "Cliques"
	ResultLabelEngajamentos ResultLabel = "Engajamentos"
	ResultLabelViews        ResultLabel = "Views"
	ResultLabelCompras      ResultLabel = "Compras"
	ResultLabelResultados   ResultLabel = "Resultados"
)

// GroupingLevel identifica o nível da linha pela presença de campaign_id, ad_set_id e ad_id
type GroupingLevel string

const (
	LevelAccount  GroupingLevel = "account"
	LevelCampaign GroupingLevel = "campaign"
	LevelAdSet    GroupingLevel = "ad_set"
	LevelAd       GroupingLevel = "ad"
)

func ParseGroupingLevel(value string) (GroupingLevel, bool) {
	switch GroupingLevel(value) {
	case LevelAccount, LevelCampaign, LevelAdSet, LevelAd:
		return GroupingLevel(value), true
	case "adset":
		return LevelAdSet, true
	}
	return "", false
}

type Period string

const (
	PeriodTotal Period = "total"
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

func ParsePeriod(value string) (Period, bool) {
	switch Period(value) {
	case PeriodTotal, PeriodDay, PeriodWeek, PeriodMonth:
		return Period(value), true
	}
	return "", false
}

// ResolvedConversion é o resultado principal escolhido para uma linha.
// ActionType é nil quando apenas o contador genérico foi usado.
type ResolvedConversion struct {
	Value      float64 `json:"value"`
	ActionType *string `json:"action_type"`
}

type ConversationMetrics struct {
	Started     *float64 `json:"started"`
	Connections *float64 `json:"connections"`
}

// AggregatedKPI consolida as linhas de uma entidade em um período
type AggregatedKPI struct {
	Level              GroupingLevel `json:"level"`
	EntityID           string        `json:"entity_id"`
	WorkspaceID        string        `json:"workspace_id"`
	PlatformAccountID  string        `json:"platform_account_id"`
	CampaignID         *string       `json:"campaign_id"`
	AdSetID            *string       `json:"ad_set_id"`
	AdID               *string       `json:"ad_id"`
	Objective          *string       `json:"objective"`
	DateFrom           string        `json:"date_from"`
	DateTo             string        `json:"date_to"`
	ResultLabel        ResultLabel   `json:"result_label"`
	PrimaryActionType  *string       `json:"primary_action_type"`
	PrimaryActionLabel string        `json:"primary_action_label"`
	ResultValue        float64       `json:"result_value"`
	Spend              float64       `json:"spend"`
	Clicks             int64         `json:"clicks"`
	Impressions        int64         `json:"impressions"`
	CostPerResult      *float64      `json:"cost_per_result"`
	Revenue            *float64      `json:"revenue"`
	Roas               *float64      `json:"roas"`
	CTR                *float64      `json:"ctr"`
	CPC                *float64      `json:"cpc"`
	CPM                *float64      `json:"cpm"`
	Rows               int           `json:"rows"`
}

type BreakdownKPI struct {
	BreakdownValueKey string   `json:"breakdown_value_key"`
	Impressions       int64    `json:"impressions"`
	Clicks            int64    `json:"clicks"`
	Conversions       float64  `json:"conversions"`
	Spend             float64  `json:"spend"`
	ConversionValue   float64  `json:"conversion_value"`
	CTR               *float64 `json:"ctr"`
	CPC               *float64 `json:"cpc"`
	CPA               *float64 `json:"cpa"`
	Roas              *float64 `json:"roas"`
}

type ObjectiveSummary struct {
	ResultLabel   ResultLabel `json:"result_label"`
	Campaigns     int         `json:"campaigns"`
	Spend         float64     `json:"spend"`
	Results       float64     `json:"results"`
	CostPerResult *float64    `json:"cost_per_result"`
	Revenue       *float64    `json:"revenue"`
	Roas          *float64    `json:"roas"`
}

type KPISummary struct {
	TotalSpend       float64            `json:"total_spend"`
	ResultLabel      ResultLabel        `json:"result_label"`
	TotalResults     float64            `json:"total_results"`
	AvgCostPerResult *float64           `json:"avg_cost_per_result"`
	TotalRevenue     *float64           `json:"total_revenue"`
	AvgRoas          *float64           `json:"avg_roas"`
	ByObjective      []ObjectiveSummary `json:"by_objective"`
}

type TimeSeriesPoint struct {
	Date          string   `json:"date"`
	Spend         float64  `json:"spend"`
	Clicks        int64    `json:"clicks"`
	Impressions   int64    `json:"impressions"`
	Results       float64  `json:"results"`
	CostPerResult *float64 `json:"cost_per_result"`
}

type AccountOverview struct {
	DateFrom         string   `json:"date_from"`
	DateTo           string   `json:"date_to"`
	TotalSpend       float64  `json:"total_spend"`
	TotalClicks      int64    `json:"total_clicks"`
	TotalImpressions int64    `json:"total_impressions"`
	TotalResults     float64  `json:"total_results"`
	CPM              *float64 `json:"cpm"`
	CTR              *float64 `json:"ctr"`
	CPC              *float64 `json:"cpc"`
	AvgCostPerResult *float64 `json:"avg_cost_per_result"`
	TotalRevenue     *float64 `json:"total_revenue"`
	Roas             *float64 `json:"roas"`
	ActiveCampaigns  int      `json:"active_campaigns"`
	TotalCampaigns   int      `json:"total_campaigns"`
}
