package service

import (
	"context"
	"errors"
	"time"

	"game-scheduler/core/config"
	"game-scheduler/core/constants"
	apperrors "game-scheduler/core/errors"
	"game-scheduler/core/logger"
	"game-scheduler/modules/scheduling/dto"
	"game-scheduler/modules/scheduling/entity"
	"game-scheduler/modules/scheduling/repository"

	"github.com/google/uuid"
)

// Locker serializes expansions of the same pattern across processes.
type Locker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	ExtendLock(ctx context.Context, key, token string, ttl time.Duration) (ok bool, err error)
	ReleaseLock(ctx context.Context, key, token string) error
}

type SchedulingServiceInterface interface {
	CreatePattern(ctx context.Context, req *dto.CreatePatternRequest) (*dto.PatternResponse, *apperrors.AppError)
	GetPattern(ctx context.Context, id uuid.UUID) (*dto.PatternResponse, *apperrors.AppError)
	ExpandPattern(ctx context.Context, patternID uuid.UUID, req *dto.ExpandPatternRequest) (*dto.ExpandPatternResponse, *apperrors.AppError)
	DetectConflicts(ctx context.Context, gameID uuid.UUID) (*dto.ConflictsResponse, *apperrors.AppError)
	FindOptimalSlot(ctx context.Context, seriesID uuid.UUID, req *dto.OptimalSlotRequest) (*dto.OptimalSlotResponse, *apperrors.AppError)
}

// SchedulingService wires the expander, detector and optimizer behind the
// application error type.
type SchedulingService struct {
	repo      repository.SchedulingRepositoryInterface
	expander  *PatternExpander
	detector  *ConflictDetector
	optimizer *SlotOptimizer
	locker    Locker // nil disables expansion locking
	lockTTL   time.Duration
}

func NewSchedulingService(repo repository.SchedulingRepositoryInterface, locker Locker, cfg config.SchedulingConfig) *SchedulingService {
	var transactor repository.Transactor
	if cfg.AtomicExpansion {
		transactor = repo
	}

	return &SchedulingService{
		repo:     repo,
		expander: NewPatternExpander(repo, repo, transactor, cfg.InvalidRangePolicy),
		detector: NewConflictDetector(repo, repo, repo),
		optimizer: NewSlotOptimizer(repo, repo, repo,
			AvailabilityPolicy{AbsentMeansAvailable: cfg.AbsentMeansAvailable},
			cfg.DayStartHour, cfg.DayEndHour),
		locker:  locker,
		lockTTL: cfg.ExpandLockTTL,
	}
}

func (s *SchedulingService) CreatePattern(ctx context.Context, req *dto.CreatePatternRequest) (*dto.PatternResponse, *apperrors.AppError) {
	startDate, err := time.Parse(constants.DateLayout, req.StartDate)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, "Invalid start date", err)
	}
	endDate, err := time.Parse(constants.DateLayout, req.EndDate)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, "Invalid end date", err)
	}
	createdBy, err := uuid.Parse(req.CreatedBy)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, "Invalid owner ID", err)
	}

	pattern := &entity.RecurringPattern{
		Name:        req.Name,
		Description: req.Description,
		Frequency:   entity.Frequency(req.Frequency),
		Interval:    req.Interval,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		MinPlayers:  req.MinPlayers,
		MaxPlayers:  req.MaxPlayers,
		StartDate:   startDate,
		EndDate:     endDate,
		CreatedBy:   createdBy,
	}
	if pattern.Interval == 0 && pattern.Frequency != entity.FrequencyCustom {
		pattern.Interval = 1
	}
	if err := pattern.Validate(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, err.Error(), err)
	}

	created, err := s.repo.CreatePattern(ctx, pattern)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCreateFailed, "Failed to create pattern", err)
	}

	return dto.ToPatternResponse(created), nil
}

func (s *SchedulingService) GetPattern(ctx context.Context, id uuid.UUID) (*dto.PatternResponse, *apperrors.AppError) {
	pattern, err := s.repo.GetPattern(ctx, id)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to get pattern", err)
	}
	if pattern == nil {
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "Pattern not found", nil)
	}
	return dto.ToPatternResponse(pattern), nil
}

// ExpandPattern creates the games of a pattern over the requested window,
// defaulting to the pattern's own active window.
func (s *SchedulingService) ExpandPattern(ctx context.Context, patternID uuid.UUID, req *dto.ExpandPatternRequest) (*dto.ExpandPatternResponse, *apperrors.AppError) {
	startDate, endDate, appErr := s.expansionWindow(ctx, patternID, req)
	if appErr != nil {
		return nil, appErr
	}

	if s.locker != nil {
		key := constants.ExpandLockKeyPrefix + patternID.String()
		token, ok, err := s.locker.AcquireLock(ctx, key, s.lockTTL)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to lock pattern", err)
		}
		if !ok {
			return nil, apperrors.NewAppError(apperrors.ErrConflict, "Pattern expansion already in progress", nil)
		}
		stop := s.holdLock(ctx, key, token)
		defer func() {
			stop()
			if err := s.locker.ReleaseLock(context.WithoutCancel(ctx), key, token); err != nil {
				logger.Warn("SchedulingService:ExpandPattern:ReleaseLock", "pattern_id", patternID.String(), "error", err)
			}
		}()
	}

	ids, err := s.expander.Expand(ctx, patternID, startDate, endDate)
	if err != nil {
		switch {
		case errors.Is(err, ErrPatternNotFound):
			return nil, apperrors.NewAppError(apperrors.ErrNotFound, "Pattern not found", err)
		case errors.Is(err, ErrInvalidRange):
			return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, "End date must not be before start date", err)
		}
		logger.Error("SchedulingService:ExpandPattern", err, "pattern_id", patternID.String(), "created", len(ids))
		appErr := apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to expand pattern", err)
		if len(ids) > 0 {
			// Non-atomic expansion keeps what it stored; report it with the error.
			return expandResponse(patternID, startDate, endDate, ids), appErr
		}
		return nil, appErr
	}

	return expandResponse(patternID, startDate, endDate, ids), nil
}

func expandResponse(patternID uuid.UUID, startDate, endDate time.Time, ids []uuid.UUID) *dto.ExpandPatternResponse {
	resp := &dto.ExpandPatternResponse{
		PatternID: patternID.String(),
		StartDate: startDate.Format(constants.DateLayout),
		EndDate:   endDate.Format(constants.DateLayout),
		GameIDs:   make([]string, 0, len(ids)),
		Created:   len(ids),
	}
	for _, id := range ids {
		resp.GameIDs = append(resp.GameIDs, id.String())
	}
	return resp
}

// holdLock extends the expansion lock every third of its TTL until the
// returned stop func is called.
func (s *SchedulingService) holdLock(ctx context.Context, key, token string) (stop func()) {
	interval := s.lockTTL / 3
	if interval <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				ok, err := s.locker.ExtendLock(context.WithoutCancel(ctx), key, token, s.lockTTL)
				if err != nil {
					logger.Warn("SchedulingService:holdLock", "key", key, "error", err)
					continue
				}
				if !ok {
					logger.Warn("SchedulingService:holdLock lost", "key", key)
					return
				}
			}
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}

func (s *SchedulingService) expansionWindow(ctx context.Context, patternID uuid.UUID, req *dto.ExpandPatternRequest) (time.Time, time.Time, *apperrors.AppError) {
	var startDate, endDate time.Time
	var err error

	if req.StartDate != "" {
		if startDate, err = time.Parse(constants.DateLayout, req.StartDate); err != nil {
			return time.Time{}, time.Time{}, apperrors.NewAppError(apperrors.ErrInvalidInput, "Invalid start date", err)
		}
	}
	if req.EndDate != "" {
		if endDate, err = time.Parse(constants.DateLayout, req.EndDate); err != nil {
			return time.Time{}, time.Time{}, apperrors.NewAppError(apperrors.ErrInvalidInput, "Invalid end date", err)
		}
	}
	if req.StartDate != "" && req.EndDate != "" {
		return startDate, endDate, nil
	}

	pattern, err := s.repo.GetPattern(ctx, patternID)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to get pattern", err)
	}
	if pattern == nil {
		return time.Time{}, time.Time{}, apperrors.NewAppError(apperrors.ErrNotFound, "Pattern not found", nil)
	}
	if req.StartDate == "" {
		startDate = pattern.StartDate
	}
	if req.EndDate == "" {
		endDate = pattern.EndDate
	}
	return startDate, endDate, nil
}

func (s *SchedulingService) DetectConflicts(ctx context.Context, gameID uuid.UUID) (*dto.ConflictsResponse, *apperrors.AppError) {
	conflicts, err := s.detector.Detect(ctx, gameID)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to detect conflicts", err)
	}

	return &dto.ConflictsResponse{
		GameID:    gameID.String(),
		Conflicts: conflicts,
		Total:     len(conflicts),
	}, nil
}

func (s *SchedulingService) FindOptimalSlot(ctx context.Context, seriesID uuid.UUID, req *dto.OptimalSlotRequest) (*dto.OptimalSlotResponse, *apperrors.AppError) {
	date, err := time.Parse(constants.DateLayout, req.Date)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, "Invalid date", err)
	}
	if req.DurationMinutes <= 0 {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, "Duration must be positive", nil)
	}

	slot, err := s.optimizer.FindOptimal(ctx, seriesID, date, req.DurationMinutes, req.MinPlayers, req.MaxPlayers)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to find optimal slot", err)
	}

	return &dto.OptimalSlotResponse{
		SeriesID: seriesID.String(),
		Date:     req.Date,
		Found:    slot != nil,
		Slot:     slot,
	}, nil
}
