package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
	"github.com/vfg2006/traffic-manager-kpi/pkg/utils"
)

const campaignsTable = "campaigns"

type CampaignRepository interface {
	UpsertCampaigns(ctx context.Context, campaigns []*domain.Campaign) (map[string]string, error)
	GetObjectives(ctx context.Context, campaignIDs []string) (map[string]string, error)
	CountCampaigns(ctx context.Context, platformAccountIDs []string) (total int, active int, err error)
}

type campaignRepository struct {
	conn postgres.Queryer
}

func NewCampaignRepository(conn postgres.Queryer) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

// buildUpsertCampaignsQuery preserva o id interno em caso de conflito; o RETURNING devolve o id existente
func buildUpsertCampaignsQuery(campaigns []*domain.Campaign, now time.Time) (squirrel.InsertBuilder, error) {
	builder := squirrel.
		Insert(campaignsTable).
		Columns("id", "platform_account_id", "external_id", "name", "objective", "status", "updated_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, campaign := range campaigns {
		id := campaign.ID
		if id == "" {
			generated, err := utils.GenerateID()
			if err != nil {
				return builder, fmt.Errorf("erro ao gerar id da campanha: %w", err)
			}
			id = generated
		}

		builder = builder.Values(id, campaign.PlatformAccountID, campaign.ExternalID, campaign.Name, campaign.Objective, campaign.Status, now)
	}

	return builder.Suffix(`
		ON CONFLICT (platform_account_id, external_id) DO UPDATE SET
			name = EXCLUDED.name,
			objective = COALESCE(EXCLUDED.objective, campaigns.objective),
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
		RETURNING id, external_id`), nil
}

func (r *campaignRepository) UpsertCampaigns(ctx context.Context, campaigns []*domain.Campaign) (map[string]string, error) {
	ids := make(map[string]string, len(campaigns))
	if len(campaigns) == 0 {
		return ids, nil
	}

	builder, err := buildUpsertCampaignsQuery(campaigns, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro de banco de dados: %w (code: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao salvar campanhas: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, externalID string
		if err := rows.Scan(&id, &externalID); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		ids[externalID] = id
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return ids, nil
}

func buildObjectivesQuery(campaignIDs []string) squirrel.SelectBuilder {
	return squirrel.
		Select("id", "objective").
		From(campaignsTable).
		Where("id = ANY(?)", pq.Array(campaignIDs)).
		Where(squirrel.NotEq{"objective": nil}).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *campaignRepository) GetObjectives(ctx context.Context, campaignIDs []string) (map[string]string, error) {
	objectives := make(map[string]string, len(campaignIDs))
	if len(campaignIDs) == 0 {
		return objectives, nil
	}

	query, args, err := buildObjectivesQuery(campaignIDs).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar objetivos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, objective string
		if err := rows.Scan(&id, &objective); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		objectives[id] = objective
	}

	return objectives, rows.Err()
}

func buildCountCampaignsQuery(platformAccountIDs []string) squirrel.SelectBuilder {
	return squirrel.
		Select("COUNT(*)", fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s')", domain.CampaignStatusActive)).
		From(campaignsTable).
		Where("platform_account_id = ANY(?)", pq.Array(platformAccountIDs)).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *campaignRepository) CountCampaigns(ctx context.Context, platformAccountIDs []string) (int, int, error) {
	if len(platformAccountIDs) == 0 {
		return 0, 0, nil
	}

	query, args, err := buildCountCampaignsQuery(platformAccountIDs).ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total, active int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&total, &active); err != nil {
		return 0, 0, fmt.Errorf("erro ao contar campanhas: %w", err)
	}

	return total, active, nil
}
