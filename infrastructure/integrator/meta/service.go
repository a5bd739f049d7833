package meta

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/traffic-manager-kpi/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
)

const (
	unknownDimensionValue = "unknown"
	defaultCurrency       = "BRL"
	purchaseAction        = "purchase"
)

// Levels são os níveis de insight sincronizados, do mais agregado ao mais detalhado
var Levels = []string{"account", "campaign", "adset", "ad"}

type BreakdownConfig struct {
	Key        string
	Breakdowns []string
	Dimensions []string
}

var breakdownConfigs = map[string]BreakdownConfig{
	"age":                {Key: "age", Breakdowns: []string{"age"}, Dimensions: []string{"age"}},
	"gender":             {Key: "gender", Breakdowns: []string{"gender"}, Dimensions: []string{"gender"}},
	"age_gender":         {Key: "age_gender", Breakdowns: []string{"age", "gender"}, Dimensions: []string{"age", "gender"}},
	"country":            {Key: "country", Breakdowns: []string{"country"}, Dimensions: []string{"country"}},
	"device_platform":    {Key: "device_platform", Breakdowns: []string{"device_platform"}, Dimensions: []string{"device_platform"}},
	"publisher_platform": {Key: "publisher_platform", Breakdowns: []string{"publisher_platform", "platform_position"}, Dimensions: []string{"publisher_platform", "platform_position"}},
	"impression_device":  {Key: "impression_device", Breakdowns: []string{"impression_device"}, Dimensions: []string{"impression_device"}},
}

func LookupBreakdown(key string) (BreakdownConfig, bool) {
	config, ok := breakdownConfigs[key]
	return config, ok
}

type MetaIntegrator struct {
	Client metaclient.Client
}

func New(client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{Client: client}
}

// ListCampaigns busca as campanhas da conta na Meta e as converte para o domínio.
// PlatformAccountID recebe o id interno da conta.
func (s *MetaIntegrator) ListCampaigns(ctx context.Context, account *domain.PlatformAccount) ([]*domain.Campaign, error) {
	campaigns, err := s.Client.GetCampaignsByAccountID(ctx, externalAccountID(account))
	if err != nil {
		return nil, errors.Wrap(err, "meta: falha ao listar campanhas")
	}

	result := make([]*domain.Campaign, 0, len(campaigns))
	for _, campaign := range campaigns {
		result = append(result, toDomainCampaign(campaign, account.ID))
	}

	logrus.WithFields(logrus.Fields{
		"platform_account_id": account.ID,
		"total":               len(result),
	}).Debug("meta: campanhas carregadas")

	return result, nil
}

// FetchMetrics busca os insights diários de um nível e gera as linhas de performance_metrics.
// campaignIDs mapeia o id externo da campanha para o id interno.
func (s *MetaIntegrator) FetchMetrics(ctx context.Context, account *domain.PlatformAccount, level string, since, until time.Time, campaignIDs map[string]string) ([]domain.RawMetricRow, error) {
	insights, err := s.Client.GetInsights(ctx, externalAccountID(account), metaclient.InsightRequest{
		Level: level,
		Since: since,
		Until: until,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "meta: falha ao buscar insights do nível %s", level)
	}

	granularity := domain.GranularityDay
	rows := make([]domain.RawMetricRow, 0, len(insights))
	for i := range insights {
		row, ok := ToMetricRow(&insights[i], account, level, campaignIDs)
		if !ok {
			continue
		}
		row.Granularity = &granularity
		rows = append(rows, row)
	}

	return rows, nil
}

// FetchBreakdowns busca os insights de campanha quebrados pelas dimensões do breakdown
func (s *MetaIntegrator) FetchBreakdowns(ctx context.Context, account *domain.PlatformAccount, breakdownKey string, since, until time.Time, campaignIDs map[string]string) ([]domain.RawMetricRow, error) {
	config, ok := LookupBreakdown(breakdownKey)
	if !ok {
		return nil, errors.Errorf("meta: breakdown desconhecido: %s", breakdownKey)
	}

	insights, err := s.Client.GetInsights(ctx, externalAccountID(account), metaclient.InsightRequest{
		Level:      "campaign",
		Since:      since,
		Until:      until,
		Breakdowns: config.Breakdowns,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "meta: falha ao buscar breakdown %s", breakdownKey)
	}

	granularity := domain.GranularityBreakdown
	rows := make([]domain.RawMetricRow, 0, len(insights))
	for i := range insights {
		row, ok := ToMetricRow(&insights[i], account, "campaign", campaignIDs)
		if !ok {
			continue
		}

		dimensions := BuildDimensionValues(&insights[i], config.Dimensions)
		valueKey := SerializeDimensionKey(dimensions)
		key := config.Key

		row.Granularity = &granularity
		row.BreakdownKey = &key
		row.BreakdownValueKey = &valueKey
		row.DimensionValues = dimensions
		rows = append(rows, row)
	}

	return rows, nil
}

// ToMetricRow converte um insight em linha de métrica. Retorna false quando a campanha
// referenciada não existe localmente.
func ToMetricRow(insight *metadomain.Insight, account *domain.PlatformAccount, level string, campaignIDs map[string]string) (domain.RawMetricRow, bool) {
	metricDate, err := time.Parse(time.DateOnly, insight.DateStart)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"date_start": insight.DateStart,
			"level":      level,
		}).Warn("meta: insight com data inválida ignorado")
		return domain.RawMetricRow{}, false
	}

	row := domain.RawMetricRow{
		MetricDate:        metricDate,
		WorkspaceID:       account.WorkspaceID,
		PlatformKey:       domain.PlatformMeta,
		PlatformAccountID: account.ID,
		Currency:          insight.AccountCurrency,
		Spend:             parseFloat(insight.Spend),
		Clicks:            parseInt(insight.Clicks),
		Impressions:       parseInt(insight.Impressions),
		ExtraMetrics:      toExtraMetrics(insight),
	}
	if row.Currency == "" {
		row.Currency = defaultCurrency
	}

	if level != "account" {
		internalID, ok := campaignIDs[insight.CampaignID]
		if !ok {
			logrus.WithFields(logrus.Fields{
				"campaign_id": insight.CampaignID,
				"level":       level,
			}).Warn("meta: insight de campanha não encontrada localmente ignorado")
			return domain.RawMetricRow{}, false
		}
		row.CampaignID = &internalID
	}
	if level == "adset" || level == "ad" {
		row.AdSetID = optionalString(insight.AdSetID)
	}
	if level == "ad" {
		row.AdID = optionalString(insight.AdID)
	}

	conversions, conversionValue := purchaseTotals(insight)
	row.Conversions = &conversions
	row.ConversionValue = &conversionValue

	return row, true
}

// BuildDimensionValues troca valores vazios por "unknown"
func BuildDimensionValues(insight *metadomain.Insight, dimensions []string) map[string]string {
	values := make(map[string]string, len(dimensions))
	for _, dimension := range dimensions {
		value := strings.TrimSpace(insight.Dimension(dimension))
		if value == "" {
			value = unknownDimensionValue
		}
		values[dimension] = value
	}
	return values
}

// SerializeDimensionKey gera "dim:valor|dim:valor" com as dimensões em ordem alfabética
func SerializeDimensionKey(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+":"+values[key])
	}
	return strings.Join(parts, "|")
}

func purchaseTotals(insight *metadomain.Insight) (float64, float64) {
	var count, value float64
	for _, action := range insight.Actions {
		if action.ActionType == purchaseAction {
			count = parseFloat(action.Value)
			break
		}
	}
	for _, action := range insight.ActionValues {
		if action.ActionType == purchaseAction {
			value = parseFloat(action.Value)
			break
		}
	}
	return count, value
}

func toExtraMetrics(insight *metadomain.Insight) domain.ExtraMetrics {
	return domain.ExtraMetrics{
		Actions:              toActionEntries(insight.Actions),
		ActionValues:         toActionEntries(insight.ActionValues),
		Reach:                parseOptionalFloat(insight.Reach),
		Frequency:            parseOptionalFloat(insight.Frequency),
		UniqueClicks:         parseOptionalFloat(insight.UniqueClicks),
		InlineLinkClicks:     parseOptionalFloat(insight.InlineLinkClicks),
		InlinePostEngagement: parseOptionalFloat(insight.InlinePostEngagement),
	}
}

func toActionEntries(actions []metadomain.Action) []domain.ActionEntry {
	entries := make([]domain.ActionEntry, 0, len(actions))
	for _, action := range actions {
		if action.ActionType == "" {
			continue
		}
		entries = append(entries, domain.ActionEntry{
			ActionType: action.ActionType,
			Value:      parseOptionalFloat(action.Value),
		})
	}
	return entries
}

func toDomainCampaign(campaign metadomain.Campaign, platformAccountID string) *domain.Campaign {
	status := campaign.EffectiveStatus
	if status == "" {
		status = campaign.Status
	}

	return &domain.Campaign{
		PlatformAccountID: platformAccountID,
		ExternalID:        campaign.ID,
		Name:              campaign.Name,
		Objective:         optionalString(campaign.Objective),
		Status:            status,
	}
}

func externalAccountID(account *domain.PlatformAccount) string {
	return strings.TrimPrefix(account.ExternalID, "act_")
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func parseOptionalFloat(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return domain.FiniteOrNil(parsed)
}

func parseFloat(value string) float64 {
	if parsed := parseOptionalFloat(value); parsed != nil {
		return *parsed
	}
	return 0
}

func parseInt(value string) int64 {
	return int64(parseFloat(value))
}
