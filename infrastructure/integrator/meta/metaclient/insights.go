package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	metadomain "github.com/vfg2006/traffic-manager-kpi/infrastructure/integrator/meta/domain"
)

var baseInsightFields = []string{
	"date_start",
	"date_stop",
	"account_id",
	"account_currency",
	"impressions",
	"reach",
	"frequency",
	"clicks",
	"unique_clicks",
	"spend",
	"actions",
	"action_values",
	"inline_link_clicks",
	"inline_post_engagement",
	"purchase_roas",
}

var levelInsightFields = map[string][]string{
	"account":  {},
	"campaign": {"campaign_id"},
	"adset":    {"campaign_id", "adset_id"},
	"ad":       {"campaign_id", "adset_id", "ad_id"},
}

// InsightRequest descreve uma consulta diária ao endpoint act_<id>/insights
type InsightRequest struct {
	Level      string
	Since      time.Time
	Until      time.Time
	Breakdowns []string
}

func InsightFields(level string) []string {
	fields := make([]string, 0, len(baseInsightFields)+3)
	fields = append(fields, baseInsightFields...)
	return append(fields, levelInsightFields[level]...)
}

func buildInsightParams(request InsightRequest) (url.Values, error) {
	if _, ok := levelInsightFields[request.Level]; !ok {
		return nil, fmt.Errorf("nível de insight inválido: %s", request.Level)
	}

	timeRange, err := json.Marshal(map[string]string{
		"since": request.Since.Format(time.DateOnly),
		"until": request.Until.Format(time.DateOnly),
	})
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("fields", strings.Join(InsightFields(request.Level), ","))
	params.Add("time_range", string(timeRange))
	params.Add("time_increment", "1")
	params.Add("level", request.Level)
	params.Add("limit", "500")
	if len(request.Breakdowns) > 0 {
		params.Add("breakdowns", strings.Join(request.Breakdowns, ","))
	}

	return params, nil
}

func (c *MetaClient) GetInsights(ctx context.Context, accountID string, request InsightRequest) ([]metadomain.Insight, error) {
	params, err := buildInsightParams(request)
	if err != nil {
		return nil, err
	}

	insights, err := getAllPages[metadomain.Insight](ctx, c, c.buildURL(fmt.Sprintf("act_%s/insights", accountID), params))
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar insights (%s) da conta %s: %w", request.Level, accountID, err)
	}

	return insights, nil
}
