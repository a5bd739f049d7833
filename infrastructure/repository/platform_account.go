package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
)

const platformAccountsTable = "platform_accounts"

type PlatformAccountRepository interface {
	ListByWorkspace(ctx context.Context, workspaceID, platformKey string) ([]*domain.PlatformAccount, error)
	ListActive(ctx context.Context, platformKey string) ([]*domain.PlatformAccount, error)
	ListActiveWorkspaces(ctx context.Context) ([]string, error)
}

type platformAccountRepository struct {
	conn postgres.Queryer
}

func NewPlatformAccountRepository(conn postgres.Queryer) PlatformAccountRepository {
	return &platformAccountRepository{
		conn: conn,
	}
}

func buildListPlatformAccountsQuery(where squirrel.Sqlizer) squirrel.SelectBuilder {
	return squirrel.
		Select("id", "workspace_id", "platform_key", "external_id", "name", "active", "updated_at").
		From(platformAccountsTable).
		Where(where).
		Where(squirrel.Eq{"active": true}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *platformAccountRepository) ListByWorkspace(ctx context.Context, workspaceID, platformKey string) ([]*domain.PlatformAccount, error) {
	return r.list(ctx, buildListPlatformAccountsQuery(squirrel.Eq{
		"workspace_id": workspaceID,
		"platform_key": platformKey,
	}))
}

func (r *platformAccountRepository) ListActive(ctx context.Context, platformKey string) ([]*domain.PlatformAccount, error) {
	return r.list(ctx, buildListPlatformAccountsQuery(squirrel.Eq{"platform_key": platformKey}))
}

func (r *platformAccountRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*domain.PlatformAccount, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar contas de plataforma: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.PlatformAccount, 0)
	for rows.Next() {
		account := &domain.PlatformAccount{}
		if err := rows.Scan(
			&account.ID,
			&account.WorkspaceID,
			&account.PlatformKey,
			&account.ExternalID,
			&account.Name,
			&account.Active,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear conta de plataforma: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accounts, nil
}

func (r *platformAccountRepository) ListActiveWorkspaces(ctx context.Context) ([]string, error) {
	query, args, err := squirrel.
		Select("DISTINCT workspace_id").
		From(platformAccountsTable).
		Where(squirrel.Eq{"active": true}).
		OrderBy("workspace_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar workspaces: %w", err)
	}
	defer rows.Close()

	workspaces := make([]string, 0)
	for rows.Next() {
		var workspaceID string
		if err := rows.Scan(&workspaceID); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		workspaces = append(workspaces, workspaceID)
	}

	return workspaces, rows.Err()
}
