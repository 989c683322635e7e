package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"game-scheduler/core/database"
	"game-scheduler/core/logger"
	"game-scheduler/modules/team/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrMemberNotFound    = errors.New("user is not on the team")
	ErrReferenceNotFound = errors.New("referenced game or series does not exist")
)

// foreignKeyViolation is the postgres SQLSTATE for a missing referenced row.
const foreignKeyViolation = "23503"

func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return fmt.Errorf("%w: %s", ErrReferenceNotFound, pqErr.Constraint)
	}
	return err
}

type TeamRepositoryInterface interface {
	CreateTeam(ctx context.Context, team *entity.Team) (*entity.Team, error)
	GetTeamByID(ctx context.Context, id uuid.UUID) (*entity.Team, error)
	ListTeams(ctx context.Context, search string, pageNumber, pageSize int) (*entity.PaginatedTeams, error)
	AddMembers(ctx context.Context, teamID uuid.UUID, userIDs []uuid.UUID) error
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error
	ListMemberIDs(ctx context.Context, teamID uuid.UUID) ([]uuid.UUID, error)
	AssignToGame(ctx context.Context, teamID, gameID uuid.UUID) error
	AssignToSeries(ctx context.Context, teamID, seriesID uuid.UUID) error
}

type TeamRepository struct {
	DB database.IDatabase
}

func NewTeamRepository(db database.IDatabase) *TeamRepository {
	return &TeamRepository{DB: db}
}

func (r *TeamRepository) CreateTeam(ctx context.Context, team *entity.Team) (*entity.Team, error) {
	query := `
		INSERT INTO teams (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at, updated_at
	`

	var created entity.Team
	if err := r.DB.GetContext(ctx, &created, query, team.Name, team.Description); err != nil {
		logger.Error("TeamRepository:CreateTeam", err)
		return nil, err
	}
	return &created, nil
}

func (r *TeamRepository) GetTeamByID(ctx context.Context, id uuid.UUID) (*entity.Team, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM teams
		WHERE id = $1
	`

	var team entity.Team
	if err := r.DB.GetContext(ctx, &team, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("TeamRepository:GetTeamByID", err)
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepository) ListTeams(ctx context.Context, search string, pageNumber, pageSize int) (*entity.PaginatedTeams, error) {
	offset := (pageNumber - 1) * pageSize

	var whereClause string
	var args []any
	if search != "" {
		whereClause = " WHERE name ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	var totalItems int
	if err := r.DB.GetContext(ctx, &totalItems, "SELECT COUNT(*) FROM teams"+whereClause, args...); err != nil {
		logger.Error("TeamRepository:ListTeams:Count", err)
		return nil, err
	}

	dataQuery := fmt.Sprintf(`
		SELECT id, name, description, created_at, updated_at
		FROM teams%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, whereClause, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	var teams []entity.Team
	if err := r.DB.SelectContext(ctx, &teams, dataQuery, args...); err != nil {
		logger.Error("TeamRepository:ListTeams:Select", err)
		return nil, err
	}

	return &entity.PaginatedTeams{
		Items:      teams,
		TotalItems: totalItems,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}, nil
}

// AddMembers inserts every user in one transaction. Existing members are kept.
func (r *TeamRepository) AddMembers(ctx context.Context, teamID uuid.UUID, userIDs []uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO team_members (team_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (team_id, user_id) DO NOTHING
	`

	return r.DB.WithTransaction(ctx, func(q database.Querier) error {
		for _, userID := range userIDs {
			if err := q.ExecContext(ctx, query, teamID, userID); err != nil {
				logger.Error("TeamRepository:AddMembers", err, "team_id", teamID.String())
				return err
			}
		}
		return nil
	})
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	query := `DELETE FROM team_members WHERE team_id = :team_id AND user_id = :user_id`

	result, err := r.DB.NamedExecContext(ctx, query, map[string]any{"team_id": teamID, "user_id": userID})
	if err != nil {
		logger.Error("TeamRepository:RemoveMember", err)
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		logger.Error("TeamRepository:RemoveMember:RowsAffected", err)
		return err
	}
	if rowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *TeamRepository) ListMemberIDs(ctx context.Context, teamID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT user_id FROM team_members WHERE team_id = $1 ORDER BY created_at`

	var ids []uuid.UUID
	if err := r.DB.SelectContext(ctx, &ids, query, teamID); err != nil {
		logger.Error("TeamRepository:ListMemberIDs", err)
		return nil, err
	}
	return ids, nil
}

func (r *TeamRepository) AssignToGame(ctx context.Context, teamID, gameID uuid.UUID) error {
	query := `
		INSERT INTO game_teams (game_id, team_id)
		VALUES ($1, $2)
		ON CONFLICT (game_id, team_id) DO NOTHING
	`
	if err := r.DB.ExecContext(ctx, query, gameID, teamID); err != nil {
		logger.Error("TeamRepository:AssignToGame", err)
		return translate(err)
	}
	return nil
}

func (r *TeamRepository) AssignToSeries(ctx context.Context, teamID, seriesID uuid.UUID) error {
	query := `
		INSERT INTO series_teams (series_id, team_id)
		VALUES ($1, $2)
		ON CONFLICT (series_id, team_id) DO NOTHING
	`
	if err := r.DB.ExecContext(ctx, query, seriesID, teamID); err != nil {
		logger.Error("TeamRepository:AssignToSeries", err)
		return translate(err)
	}
	return nil
}
