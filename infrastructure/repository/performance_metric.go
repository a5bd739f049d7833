package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	performanceMetricsTable = "performance_metrics"
	metricBreakdownsTable   = "performance_metric_breakdowns"

	// o Postgres aceita até 65535 parâmetros por comando
	insertBatchSize = 500
)

var metricColumns = []string{
	"metric_date", "workspace_id", "platform_key", "platform_account_id",
	"campaign_id", "ad_set_id", "ad_id", "granularity",
	"currency", "spend", "clicks", "impressions",
	"conversions", "conversion_value", "extra_metrics", "synced_at",
}

var breakdownColumns = []string{
	"metric_date", "workspace_id", "platform_key", "platform_account_id",
	"campaign_id", "ad_set_id", "ad_id", "granularity",
	"breakdown_key", "breakdown_value_key", "dimension_values",
	"currency", "spend", "clicks", "impressions",
	"conversions", "conversion_value", "extra_metrics", "synced_at",
}

type MetricRepository interface {
	ListMetrics(ctx context.Context, query domain.MetricQuery) ([]domain.RawMetricRow, error)
	ListBreakdowns(ctx context.Context, query domain.MetricQuery) ([]domain.RawMetricRow, error)
	InsertMetrics(ctx context.Context, rows []domain.RawMetricRow) (int64, error)
	InsertBreakdowns(ctx context.Context, rows []domain.RawMetricRow) (int64, error)
}

type metricRepository struct {
	conn postgres.Queryer
}

func NewMetricRepository(conn postgres.Queryer) MetricRepository {
	return &metricRepository{
		conn: conn,
	}
}

// buildListMetricsQuery monta o SELECT das linhas brutas. Todas as versões sincronizadas
// são retornadas; a deduplicação acontece depois, no motor de KPIs.
func buildListMetricsQuery(table string, query domain.MetricQuery) squirrel.SelectBuilder {
	columns := []string{
		"metric_date", "workspace_id", "platform_key", "platform_account_id",
		"campaign_id", "ad_set_id", "ad_id", "granularity",
		"breakdown_key", "breakdown_value_key",
		"currency", "spend", "clicks", "impressions",
		"conversions", "conversion_value", "extra_metrics", "synced_at",
	}
	if table == performanceMetricsTable {
		columns[8] = "NULL AS breakdown_key"
		columns[9] = "NULL AS breakdown_value_key"
	}

	builder := squirrel.
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"workspace_id": query.WorkspaceID}).
		Where(squirrel.GtOrEq{"metric_date": query.StartDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"metric_date": query.EndDate.Format(time.DateOnly)}).
		OrderBy("metric_date ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(query.PlatformAccountIDs) > 0 {
		builder = builder.Where("platform_account_id = ANY(?)", pq.Array(query.PlatformAccountIDs))
	}

	if query.CampaignID != nil {
		builder = builder.Where(squirrel.Eq{"campaign_id": *query.CampaignID})
	}

	if query.BreakdownKey != nil {
		builder = builder.Where(squirrel.Eq{"breakdown_key": *query.BreakdownKey})
	}

	if query.Level != nil {
		builder = builder.Where(levelCondition(*query.Level))
	}

	return builder
}

func levelCondition(level domain.GroupingLevel) squirrel.Sqlizer {
	switch level {
	case domain.LevelAd:
		return squirrel.NotEq{"ad_id": nil}
	case domain.LevelAdSet:
		return squirrel.And{squirrel.NotEq{"ad_set_id": nil}, squirrel.Eq{"ad_id": nil}}
	case domain.LevelCampaign:
		return squirrel.And{squirrel.NotEq{"campaign_id": nil}, squirrel.Eq{"ad_set_id": nil, "ad_id": nil}}
	default:
		return squirrel.Eq{"campaign_id": nil, "ad_set_id": nil, "ad_id": nil}
	}
}

func (r *metricRepository) ListMetrics(ctx context.Context, query domain.MetricQuery) ([]domain.RawMetricRow, error) {
	return r.list(ctx, buildListMetricsQuery(performanceMetricsTable, query))
}

func (r *metricRepository) ListBreakdowns(ctx context.Context, query domain.MetricQuery) ([]domain.RawMetricRow, error) {
	return r.list(ctx, buildListMetricsQuery(metricBreakdownsTable, query))
}

func (r *metricRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]domain.RawMetricRow, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	result := make([]domain.RawMetricRow, 0)
	for rows.Next() {
		row, err := scanMetricRow(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear métrica: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMetricRow(s scanner) (domain.RawMetricRow, error) {
	var (
		row               domain.RawMetricRow
		campaignID        sql.NullString
		adSetID           sql.NullString
		adID              sql.NullString
		granularity       sql.NullString
		breakdownKey      sql.NullString
		breakdownValueKey sql.NullString
		conversions       sql.NullFloat64
		conversionValue   sql.NullFloat64
		extraMetrics      []byte
		syncedAt          sql.NullTime
	)

	if err := s.Scan(
		&row.MetricDate,
		&row.WorkspaceID,
		&row.PlatformKey,
		&row.PlatformAccountID,
		&campaignID,
		&adSetID,
		&adID,
		&granularity,
		&breakdownKey,
		&breakdownValueKey,
		&row.Currency,
		&row.Spend,
		&row.Clicks,
		&row.Impressions,
		&conversions,
		&conversionValue,
		&extraMetrics,
		&syncedAt,
	); err != nil {
		return row, err
	}

	row.CampaignID = nullString(campaignID)
	row.AdSetID = nullString(adSetID)
	row.AdID = nullString(adID)
	row.BreakdownKey = nullString(breakdownKey)
	row.BreakdownValueKey = nullString(breakdownValueKey)
	if granularity.Valid {
		g := domain.Granularity(granularity.String)
		row.Granularity = &g
	}
	row.Conversions = nullFloat(conversions)
	row.ConversionValue = nullFloat(conversionValue)
	row.ExtraMetrics = domain.ParseExtraMetrics(extraMetrics)
	if syncedAt.Valid {
		row.SyncedAt = &syncedAt.Time
	}

	return row, nil
}

// buildInsertMetricsQuery gera um INSERT multi-valores. As linhas nunca são atualizadas:
// uma nova sincronização grava outra versão com synced_at atual.
func buildInsertMetricsQuery(table string, rows []domain.RawMetricRow, syncedAt time.Time) (squirrel.InsertBuilder, error) {
	columns := metricColumns
	if table == metricBreakdownsTable {
		columns = breakdownColumns
	}

	builder := squirrel.
		Insert(table).
		Columns(columns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, row := range rows {
		extraMetrics, err := json.Marshal(row.ExtraMetrics)
		if err != nil {
			return builder, fmt.Errorf("erro ao serializar extra_metrics: %w", err)
		}

		values := []interface{}{
			row.MetricDate.Format(time.DateOnly),
			row.WorkspaceID,
			row.PlatformKey,
			row.PlatformAccountID,
			row.CampaignID,
			row.AdSetID,
			row.AdID,
			granularityValue(row.Granularity),
		}

		if table == metricBreakdownsTable {
			dimensions, err := json.Marshal(row.DimensionValues)
			if err != nil {
				return builder, fmt.Errorf("erro ao serializar dimension_values: %w", err)
			}
			if row.DimensionValues == nil {
				dimensions = []byte("{}")
			}
			values = append(values, row.BreakdownKey, row.BreakdownValueKey, string(dimensions))
		}

		values = append(values,
			row.Currency,
			row.Spend,
			row.Clicks,
			row.Impressions,
			row.Conversions,
			row.ConversionValue,
			string(extraMetrics),
			syncedAt,
		)

		builder = builder.Values(values...)
	}

	return builder, nil
}

func (r *metricRepository) InsertMetrics(ctx context.Context, rows []domain.RawMetricRow) (int64, error) {
	return r.insert(ctx, performanceMetricsTable, rows)
}

func (r *metricRepository) InsertBreakdowns(ctx context.Context, rows []domain.RawMetricRow) (int64, error) {
	return r.insert(ctx, metricBreakdownsTable, rows)
}

func (r *metricRepository) insert(ctx context.Context, table string, rows []domain.RawMetricRow) (int64, error) {
	var inserted int64
	syncedAt := time.Now().UTC()

	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))

		builder, err := buildInsertMetricsQuery(table, rows[start:end], syncedAt)
		if err != nil {
			return inserted, err
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return inserted, fmt.Errorf("erro ao construir a query: %w", err)
		}

		result, err := r.conn.ExecContext(ctx, query, args...)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return inserted, fmt.Errorf("erro de banco de dados: %w (code: %s)", pqErr, pqErr.Code)
			}
			return inserted, fmt.Errorf("erro ao inserir métricas: %w", err)
		}

		affected, _ := result.RowsAffected()
		inserted += affected
	}

	return inserted, nil
}

func granularityValue(granularity *domain.Granularity) *string {
	if granularity == nil {
		return nil
	}
	value := string(*granularity)
	return &value
}

func nullString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}

func nullFloat(value sql.NullFloat64) *float64 {
	if !value.Valid {
		return nil
	}
	return &value.Float64
}
