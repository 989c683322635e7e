package service

import (
	"context"
	stderrors "errors"

	"game-scheduler/core/errors"
	"game-scheduler/core/logger"
	"game-scheduler/modules/team/dto"
	"game-scheduler/modules/team/entity"
	"game-scheduler/modules/team/mapper"
	"game-scheduler/modules/team/repository"

	"github.com/google/uuid"
)

type TeamServiceInterface interface {
	CreateTeam(ctx context.Context, req *dto.TeamRequest) (*dto.TeamResponse, *errors.AppError)
	GetTeam(ctx context.Context, id uuid.UUID) (*dto.TeamResponse, *errors.AppError)
	ListTeams(ctx context.Context, query dto.ListTeamsQuery) (*dto.PaginatedTeamResponse, *errors.AppError)
	AddMembers(ctx context.Context, teamID uuid.UUID, req *dto.AddMembersRequest) *errors.AppError
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) *errors.AppError
	ListMembers(ctx context.Context, teamID uuid.UUID) (*dto.TeamMembersResponse, *errors.AppError)
	AssignToGame(ctx context.Context, teamID, gameID uuid.UUID) *errors.AppError
	AssignToSeries(ctx context.Context, teamID, seriesID uuid.UUID) *errors.AppError
}

type TeamService struct {
	repo repository.TeamRepositoryInterface
}

func NewTeamService(repo repository.TeamRepositoryInterface) *TeamService {
	return &TeamService{repo: repo}
}

func (s *TeamService) CreateTeam(ctx context.Context, req *dto.TeamRequest) (*dto.TeamResponse, *errors.AppError) {
	created, err := s.repo.CreateTeam(ctx, mapper.ToTeamEntity(req))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create team failed", err)
	}
	return mapper.ToTeamResponse(created), nil
}

func (s *TeamService) GetTeam(ctx context.Context, id uuid.UUID) (*dto.TeamResponse, *errors.AppError) {
	team, appErr := s.findTeam(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToTeamResponse(team), nil
}

func (s *TeamService) ListTeams(ctx context.Context, query dto.ListTeamsQuery) (*dto.PaginatedTeamResponse, *errors.AppError) {
	query.Normalize()

	logger.Debug("TeamService:ListTeams", "page", query.PageNumber, "page_size", query.PageSize, "search", query.Search)
	page, err := s.repo.ListTeams(ctx, query.Search, query.PageNumber, query.PageSize)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get teams failed", err)
	}
	return mapper.ToTeamPaginationResponse(page), nil
}

func (s *TeamService) AddMembers(ctx context.Context, teamID uuid.UUID, req *dto.AddMembersRequest) *errors.AppError {
	if _, appErr := s.findTeam(ctx, teamID); appErr != nil {
		return appErr
	}

	if err := s.repo.AddMembers(ctx, teamID, req.UserIDs); err != nil {
		return errors.NewAppError(errors.ErrCreateFailed, "add members failed", err)
	}
	return nil
}

func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) *errors.AppError {
	err := s.repo.RemoveMember(ctx, teamID, userID)
	if stderrors.Is(err, repository.ErrMemberNotFound) {
		return errors.NewAppError(errors.ErrNotFound, "member not found", err)
	}
	if err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "remove member failed", err)
	}
	return nil
}

func (s *TeamService) ListMembers(ctx context.Context, teamID uuid.UUID) (*dto.TeamMembersResponse, *errors.AppError) {
	if _, appErr := s.findTeam(ctx, teamID); appErr != nil {
		return nil, appErr
	}

	ids, err := s.repo.ListMemberIDs(ctx, teamID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get members failed", err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return &dto.TeamMembersResponse{TeamID: teamID, UserIDs: ids}, nil
}

// AssignToGame puts the team's members on the game's roster.
func (s *TeamService) AssignToGame(ctx context.Context, teamID, gameID uuid.UUID) *errors.AppError {
	if _, appErr := s.findTeam(ctx, teamID); appErr != nil {
		return appErr
	}
	return assignError(s.repo.AssignToGame(ctx, teamID, gameID), "game")
}

// AssignToSeries puts the team's members on the roster the slot optimizer
// uses for the series.
func (s *TeamService) AssignToSeries(ctx context.Context, teamID, seriesID uuid.UUID) *errors.AppError {
	if _, appErr := s.findTeam(ctx, teamID); appErr != nil {
		return appErr
	}
	return assignError(s.repo.AssignToSeries(ctx, teamID, seriesID), "series")
}

func (s *TeamService) findTeam(ctx context.Context, id uuid.UUID) (*entity.Team, *errors.AppError) {
	team, err := s.repo.GetTeamByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get team failed", err)
	}
	if team == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "team not found", nil)
	}
	return team, nil
}

func assignError(err error, target string) *errors.AppError {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, repository.ErrReferenceNotFound) {
		return errors.NewAppError(errors.ErrNotFound, target+" not found", err)
	}
	return errors.NewAppError(errors.ErrUpdateFailed, "assign team to "+target+" failed", err)
}
