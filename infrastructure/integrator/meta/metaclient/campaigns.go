package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/traffic-manager-kpi/infrastructure/integrator/meta/domain"
)

func (c *MetaClient) GetCampaignsByAccountID(ctx context.Context, accountID string) ([]metadomain.Campaign, error) {
	params := url.Values{}
	params.Add("fields", "id,name,status,effective_status,objective")
	params.Add("limit", "200")

	campaigns, err := getAllPages[metadomain.Campaign](ctx, c, c.buildURL(fmt.Sprintf("act_%s/campaigns", accountID), params))
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar campanhas da conta %s: %w", accountID, err)
	}

	return campaigns, nil
}
