package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Granularity string

const (
	GranularityDay       Granularity = "day"
	GranularityBreakdown Granularity = "breakdown"
)

// RawMetricRow representa uma observação de performance gravada pela sincronização de uma plataforma.
// Re-sincronizações gravam uma nova linha com SyncedAt mais recente em vez de alterar a existente.
type RawMetricRow struct {
	MetricDate        time.Time         `json:"metric_date"`
	WorkspaceID       string            `json:"workspace_id"`
	PlatformKey       string            `json:"platform_key"`
	PlatformAccountID string            `json:"platform_account_id"`
	CampaignID        *string           `json:"campaign_id"`
	AdSetID           *string           `json:"ad_set_id"`
	AdID              *string           `json:"ad_id"`
	Granularity       *Granularity      `json:"granularity"`
	BreakdownKey      *string           `json:"breakdown_key,omitempty"`
	BreakdownValueKey *string           `json:"breakdown_value_key"`
	DimensionValues   map[string]string `json:"dimension_values,omitempty"`
	Currency          string            `json:"currency"`
	Spend             float64           `json:"spend"`
	Clicks            int64             `json:"clicks"`
	Impressions       int64             `json:"impressions"`
	Conversions       *float64          `json:"conversions"`
	ConversionValue   *float64          `json:"conversion_value"`
	ExtraMetrics      ExtraMetrics      `json:"extra_metrics"`
	SyncedAt          *time.Time        `json:"synced_at"`
}

// ActionEntry é um item das listas actions/action_values da plataforma.
// Value é nil quando o valor recebido não é numérico.
type ActionEntry struct {
	ActionType string   `json:"action_type"`
	Value      *float64 `json:"value"`
}

// ExtraMetrics guarda o payload específico da plataforma (coluna extra_metrics)
type ExtraMetrics struct {
	Actions              []ActionEntry `json:"actions"`
	ActionValues         []ActionEntry `json:"action_values"`
	Reach                *float64      `json:"reach,omitempty"`
	Frequency            *float64      `json:"frequency,omitempty"`
	UniqueClicks         *float64      `json:"unique_clicks,omitempty"`
	InlineLinkClicks     *float64      `json:"inline_link_clicks,omitempty"`
	InlinePostEngagement *float64      `json:"inline_post_engagement,omitempty"`
}

// UnmarshalJSON aceita qualquer formato: estruturas inesperadas viram listas vazias e nunca retornam erro
func (e *ExtraMetrics) UnmarshalJSON(data []byte) error {
	*e = ExtraMetrics{}

	var raw map[string]jsoniter.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil
	}

	e.Actions = decodeActionList(firstPresent(raw, "actions"))
	e.ActionValues = decodeActionList(firstPresent(raw, "action_values", "actionValues"))
	e.Reach = decodeNumber(raw["reach"])
	e.Frequency = decodeNumber(raw["frequency"])
	e.UniqueClicks = decodeNumber(raw["unique_clicks"])
	e.InlineLinkClicks = decodeNumber(raw["inline_link_clicks"])
	e.InlinePostEngagement = decodeNumber(raw["inline_post_engagement"])

	return nil
}

// ParseExtraMetrics decodifica o conteúdo da coluna extra_metrics
func ParseExtraMetrics(data []byte) ExtraMetrics {
	var extra ExtraMetrics
	if len(data) == 0 {
		return extra
	}

	_ = extra.UnmarshalJSON(data)
	return extra
}

func firstPresent(raw map[string]jsoniter.RawMessage, keys ...string) jsoniter.RawMessage {
	for _, key := range keys {
		if value, ok := raw[key]; ok {
			return value
		}
	}
	return nil
}

func decodeActionList(data jsoniter.RawMessage) []ActionEntry {
	if len(data) == 0 {
		return nil
	}

	var items []jsoniter.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}

	entries := make([]ActionEntry, 0, len(items))
	for _, item := range items {
		var fields map[string]jsoniter.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			continue
		}

		var actionType string
		if err := json.Unmarshal(firstPresent(fields, "action_type", "actionType"), &actionType); err != nil || actionType == "" {
			continue
		}

		entries = append(entries, ActionEntry{
			ActionType: actionType,
			Value:      decodeNumber(fields["value"]),
		})
	}

	return entries
}

// decodeNumber converte número ou string numérica; qualquer outra coisa vira nil
func decodeNumber(data jsoniter.RawMessage) *float64 {
	if len(data) == 0 {
		return nil
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil
	}

	switch v := value.(type) {
	case float64:
		return FiniteOrNil(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		return FiniteOrNil(parsed)
	}

	return nil
}

// FiniteOrNil devolve nil para NaN e infinito
func FiniteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
