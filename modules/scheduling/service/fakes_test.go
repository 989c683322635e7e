package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"game-scheduler/modules/scheduling/entity"
	"game-scheduler/modules/scheduling/repository"

	"github.com/google/uuid"
)

var errStore = errors.New("store unavailable")

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// fakeRepo is an in-memory SchedulingRepositoryInterface.
type fakeRepo struct {
	mu sync.Mutex

	patterns      map[uuid.UUID]*entity.RecurringPattern
	games         []entity.Game
	gameRosters   map[uuid.UUID][]uuid.UUID
	seriesRosters map[uuid.UUID][]uuid.UUID
	availability  []entity.PlayerAvailabilitySlot

	// failCreateOn makes the n-th CreateGame call (1-based) fail.
	failCreateOn int
	createCalls  int
	failReads    bool
	txCalls      int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		patterns:      map[uuid.UUID]*entity.RecurringPattern{},
		gameRosters:   map[uuid.UUID][]uuid.UUID{},
		seriesRosters: map[uuid.UUID][]uuid.UUID{},
	}
}

func (r *fakeRepo) addPattern(p entity.RecurringPattern) *entity.RecurringPattern {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.patterns[p.ID] = &p
	return &p
}

func (r *fakeRepo) addGame(g entity.Game) entity.Game {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	r.games = append(r.games, g)
	return g
}

func (r *fakeRepo) setAvailability(userID uuid.UUID, day time.Time, timeSlot string, status entity.AvailabilityStatus) {
	r.availability = append(r.availability, entity.PlayerAvailabilitySlot{
		ID:       uuid.New(),
		UserID:   userID,
		Date:     day,
		TimeSlot: timeSlot,
		Status:   status,
	})
}

func (r *fakeRepo) CreatePattern(ctx context.Context, p *entity.RecurringPattern) (*entity.RecurringPattern, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addPattern(*p), nil
}

func (r *fakeRepo) GetPattern(ctx context.Context, id uuid.UUID) (*entity.RecurringPattern, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failReads {
		return nil, errStore
	}
	return r.patterns[id], nil
}

func (r *fakeRepo) CreateGame(ctx context.Context, g *entity.Game) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.failCreateOn > 0 && r.createCalls == r.failCreateOn {
		return uuid.Nil, errStore
	}
	return r.addGame(*g).ID, nil
}

func (r *fakeRepo) GetGame(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failReads {
		return nil, errStore
	}
	for i := range r.games {
		if r.games[i].ID == id {
			g := r.games[i]
			return &g, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindGamesByDateAndTime(ctx context.Context, day time.Time, timeOfDay string) ([]entity.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Game
	for _, g := range r.games {
		if sameDay(g.Date, day) && g.Time == timeOfDay {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindGamesByLocationAndDate(ctx context.Context, location string, day time.Time) ([]entity.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Game
	for _, g := range r.games {
		if sameDay(g.Date, day) && g.Location == location {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeRepo) CountGamesAtDateTime(ctx context.Context, day time.Time, timeOfDay string) (int, error) {
	games, _ := r.FindGamesByDateAndTime(ctx, day, timeOfDay)
	return len(games), nil
}

func (r *fakeRepo) ListGamesBySeries(ctx context.Context, seriesID uuid.UUID) ([]entity.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Game
	for _, g := range r.games {
		if g.SeriesID != nil && *g.SeriesID == seriesID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetRosterUserIDs(ctx context.Context, gameID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gameRosters[gameID], nil
}

func (r *fakeRepo) GetSeriesRosterUserIDs(ctx context.Context, seriesID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failReads {
		return nil, errStore
	}
	return r.seriesRosters[seriesID], nil
}

func (r *fakeRepo) GetAvailability(ctx context.Context, userID uuid.UUID, day time.Time, prefix string) (*entity.PlayerAvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.availability {
		if a.UserID == userID && sameDay(a.Date, day) && strings.HasPrefix(a.TimeSlot, prefix) {
			slot := a
			return &slot, nil
		}
	}
	return nil, nil
}

// InTransaction discards games created by fn when it fails.
func (r *fakeRepo) InTransaction(ctx context.Context, fn func(creator repository.GameCreator) error) error {
	r.mu.Lock()
	r.txCalls++
	before := len(r.games)
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.games = r.games[:before]
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *fakeRepo) gameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.games)
}

// fakeLocker is an in-process Locker.
type fakeLocker struct {
	mu       sync.Mutex
	held     map[string]string
	released []string
	extends  int
	err      error
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]string{}}
}

func (l *fakeLocker) AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return "", false, l.err
	}
	if _, ok := l.held[key]; ok {
		return "", false, nil
	}
	token := uuid.NewString()
	l.held[key] = token
	return token, true, nil
}

func (l *fakeLocker) ExtendLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] != token {
		return false, nil
	}
	l.extends++
	return true, nil
}

func (l *fakeLocker) extendCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.extends
}

func (l *fakeLocker) ReleaseLock(ctx context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == token {
		delete(l.held, key)
		l.released = append(l.released, key)
	}
	return nil
}
