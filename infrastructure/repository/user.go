package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-manager-kpi/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
)

const (
	usersTable          = "users"
	userWorkspacesTable = "user_workspaces"
)

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int) (*domain.User, error)
	GetUserWorkspaces(ctx context.Context, userID int) ([]string, error)
}

type userRepository struct {
	conn postgres.Queryer
}

func NewUserRepository(conn postgres.Queryer) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func buildGetUserQuery(where squirrel.Sqlizer) squirrel.SelectBuilder {
	return squirrel.
		Select("id", "name", "lastname", "email", "password", "active", "role_id", "created_at", "updated_at").
		From(usersTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"email": email})
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"id": userID})
}

// getUser retorna nil, nil quando o usuário não existe
func (r *userRepository) getUser(ctx context.Context, where squirrel.Sqlizer) (*domain.User, error) {
	query, args, err := buildGetUserQuery(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	var user domain.User
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Lastname,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.RoleID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	workspaces, err := r.GetUserWorkspaces(ctx, user.ID)
	if err != nil {
		logrus.Warnf("Erro ao buscar workspaces do usuário %d: %v", user.ID, err)
	} else {
		user.Workspaces = workspaces
	}

	return &user, nil
}

func (r *userRepository) GetUserWorkspaces(ctx context.Context, userID int) ([]string, error) {
	query, args, err := squirrel.
		Select("workspace_id").
		From(userWorkspacesTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("workspace_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar workspaces vinculados: %w", err)
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

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return workspaces, nil
}
