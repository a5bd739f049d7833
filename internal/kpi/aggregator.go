package kpi

import (
	"math"
	"sort"
	"time"

	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
)

func DefaultRevenueActions() []string {
	return []string{ActionOmniPurchase, ActionPurchase, ActionPixelPurchase}
}

type Aggregator struct {
	resolver       *Resolver
	classifier     *Classifier
	revenueActions []string
}

func NewAggregator(resolver *Resolver, classifier *Classifier, revenueActions []string) *Aggregator {
	if resolver == nil {
		resolver = DefaultResolver()
	}
	if classifier == nil {
		classifier = DefaultClassifier()
	}
	if len(revenueActions) == 0 {
		revenueActions = DefaultRevenueActions()
	}

	return &Aggregator{
		resolver:       resolver,
		classifier:     classifier,
		revenueActions: append([]string(nil), revenueActions...),
	}
}

func (a *Aggregator) Resolver() *Resolver {
	return a.resolver
}

func (a *Aggregator) Classifier() *Classifier {
	return a.classifier
}

// LevelOf deduz o nível da linha pelo identificador mais específico presente
func LevelOf(row domain.RawMetricRow) domain.GroupingLevel {
	switch {
	case row.AdID != nil:
		return domain.LevelAd
	case row.AdSetID != nil:
		return domain.LevelAdSet
	case row.CampaignID != nil:
		return domain.LevelCampaign
	default:
		return domain.LevelAccount
	}
}

func entityIDOf(row domain.RawMetricRow, level domain.GroupingLevel) string {
	switch level {
	case domain.LevelAd:
		return *row.AdID
	case domain.LevelAdSet:
		return *row.AdSetID
	case domain.LevelCampaign:
		return *row.CampaignID
	default:
		return row.PlatformAccountID
	}
}

// AggregateGroup consolida as linhas de uma única entidade.
// Receita e ROAS só existem quando o objetivo é de vendas.
func (a *Aggregator) AggregateGroup(rows []domain.RawMetricRow, objective, platformKey string) domain.AggregatedKPI {
	label := a.classifier.ClassifyForPlatform(objective, platformKey)

	kpi := domain.AggregatedKPI{
		ResultLabel: label,
		Rows:        len(rows),
	}
	if objective != "" {
		kpi.Objective = &objective
	}

	var (
		revenue       float64
		contributions = make(map[string]float64)
		seenOrder     []string
		from, to      time.Time
	)

	for i, row := range rows {
		resolved := a.resolver.Resolve(row.ExtraMetrics, row.Conversions)
		kpi.ResultValue += resolved.Value
		kpi.Spend += finite(row.Spend)
		kpi.Clicks += row.Clicks
		kpi.Impressions += row.Impressions

		if resolved.ActionType != nil {
			if _, ok := contributions[*resolved.ActionType]; !ok {
				seenOrder = append(seenOrder, *resolved.ActionType)
			}
			contributions[*resolved.ActionType] += resolved.Value
		}

		if label == domain.ResultLabelCompras {
			amount, _ := a.rowRevenue(row)
			revenue += amount
		}

		if i == 0 || row.MetricDate.Before(from) {
			from = row.MetricDate
		}
		if i == 0 || row.MetricDate.After(to) {
			to = row.MetricDate
		}
	}

	if len(rows) > 0 {
		first := rows[0]
		kpi.WorkspaceID = first.WorkspaceID
		kpi.PlatformAccountID = first.PlatformAccountID
		kpi.CampaignID = first.CampaignID
		kpi.AdSetID = first.AdSetID
		kpi.AdID = first.AdID
		kpi.DateFrom = from.Format(time.DateOnly)
		kpi.DateTo = to.Format(time.DateOnly)
	}

	kpi.CostPerResult = ratio(kpi.Spend, kpi.ResultValue)
	if label == domain.ResultLabelCompras {
		kpi.Revenue = domain.FiniteOrNil(revenue)
		if kpi.Revenue != nil {
			kpi.Roas = ratio(*kpi.Revenue, kpi.Spend)
		}
	}

	kpi.CTR = ratio(float64(kpi.Clicks)*100, float64(kpi.Impressions))
	kpi.CPC = ratio(kpi.Spend, float64(kpi.Clicks))
	kpi.CPM = ratio(kpi.Spend*1000, float64(kpi.Impressions))

	kpi.PrimaryActionType = dominantAction(seenOrder, contributions)
	kpi.PrimaryActionLabel = ActionLabel(kpi.PrimaryActionType)

	return kpi
}

// rowRevenue: primeiro action_value de compra presente, senão a coluna conversion_value.
// O bool indica se a linha trouxe alguma receita.
func (a *Aggregator) rowRevenue(row domain.RawMetricRow) (float64, bool) {
	for _, actionType := range a.revenueActions {
		if amount := ActionAmount(row.ExtraMetrics, actionType); amount != nil {
			return *amount, true
		}
	}

	if row.ConversionValue != nil {
		return finite(*row.ConversionValue), true
	}
	return 0, false
}

func dominantAction(order []string, contributions map[string]float64) *string {
	var (
		best      *string
		bestValue float64
	)

	for _, actionType := range order {
		if best == nil || contributions[actionType] > bestValue {
			matched := actionType
			best = &matched
			bestValue = contributions[actionType]
		}
	}

	return best
}

type groupKey struct {
	bucket   string
	entityID string
}

// Aggregate agrupa as linhas do nível pedido por entidade e período.
// objectives mapeia campaign_id para o objetivo da campanha na plataforma.
func (a *Aggregator) Aggregate(
	rows []domain.RawMetricRow,
	level domain.GroupingLevel,
	period domain.Period,
	objectives map[string]string,
	platformKey string,
) []domain.AggregatedKPI {
	groups := make(map[groupKey][]domain.RawMetricRow)
	keys := make([]groupKey, 0)

	for _, row := range rows {
		if LevelOf(row) != level {
			continue
		}

		key := groupKey{
			bucket:   BucketStart(row.MetricDate, period),
			entityID: entityIDOf(row, level),
		}
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], row)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].bucket != keys[j].bucket {
			return keys[i].bucket < keys[j].bucket
		}
		return keys[i].entityID < keys[j].entityID
	})

	result := make([]domain.AggregatedKPI, 0, len(keys))
	for _, key := range keys {
		group := groups[key]

		objective := ""
		if campaignID := group[0].CampaignID; campaignID != nil {
			objective = objectives[*campaignID]
		}

		kpi := a.AggregateGroup(group, objective, platformKey)
		kpi.Level = level
		kpi.EntityID = key.entityID
		result = append(result, kpi)
	}

	return result
}

// BucketStart devolve o início do período (YYYY-MM-DD). Semanas começam na segunda-feira.
func BucketStart(date time.Time, period domain.Period) string {
	switch period {
	case domain.PeriodDay:
		return date.Format(time.DateOnly)
	case domain.PeriodWeek:
		offset := (int(date.Weekday()) + 6) % 7
		return date.AddDate(0, 0, -offset).Format(time.DateOnly)
	case domain.PeriodMonth:
		return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location()).Format(time.DateOnly)
	default:
		return ""
	}
}

// ratio retorna nil quando o denominador não é positivo ou o resultado não é finito
func ratio(numerator, denominator float64) *float64 {
	if !(denominator > 0) {
		return nil
	}
	return domain.FiniteOrNil(numerator / denominator)
}

func finite(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
