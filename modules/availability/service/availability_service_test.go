package service

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "game-scheduler/core/errors"
	"game-scheduler/modules/availability/dto"
	"game-scheduler/modules/scheduling/entity"

	"github.com/google/uuid"
)

type slotKey struct {
	user     uuid.UUID
	day      string
	timeSlot string
}

// fakeRepo keeps one record per (user, date, time slot).
type fakeRepo struct {
	slots map[slotKey]entity.PlayerAvailabilitySlot
	err   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{slots: map[slotKey]entity.PlayerAvailabilitySlot{}}
}

func (r *fakeRepo) Upsert(ctx context.Context, s *entity.PlayerAvailabilitySlot) (*entity.PlayerAvailabilitySlot, error) {
	if r.err != nil {
		return nil, r.err
	}
	k := slotKey{s.UserID, s.Date.Format("2006-01-02"), s.TimeSlot}
	saved, ok := r.slots[k]
	if !ok {
		saved = *s
		saved.ID = uuid.New()
	}
	saved.Status, saved.Notes = s.Status, s.Notes
	r.slots[k] = saved
	return &saved, nil
}

func (r *fakeRepo) ListByUserAndDate(ctx context.Context, userID uuid.UUID, day time.Time) ([]entity.PlayerAvailabilitySlot, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.PlayerAvailabilitySlot
	for k, s := range r.slots {
		if k.user == userID && k.day == day.Format("2006-01-02") {
			out = append(out, s)
		}
	}
	return out, nil
}

func TestUpsertReplacesExistingRecord(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAvailabilityService(repo)
	userID := uuid.NewString()

	first, appErr := svc.Upsert(context.Background(), &dto.UpsertAvailabilityRequest{
		UserID: userID, Date: "2024-01-07", TimeSlot: "18:00-20:00", Status: "available",
	})
	if appErr != nil {
		t.Fatalf("first Upsert() error: %v", appErr)
	}

	second, appErr := svc.Upsert(context.Background(), &dto.UpsertAvailabilityRequest{
		UserID: userID, Date: "2024-01-07", TimeSlot: "18:00-20:00", Status: "unavailable", Notes: "travelling",
	})
	if appErr != nil {
		t.Fatalf("second Upsert() error: %v", appErr)
	}

	if first.ID != second.ID {
		t.Errorf("upsert created a second record: %s vs %s", first.ID, second.ID)
	}
	if second.Status != "unavailable" || second.Notes != "travelling" {
		t.Errorf("second = %+v", second)
	}
	if len(repo.slots) != 1 {
		t.Errorf("stored %d records, want 1", len(repo.slots))
	}
}

func TestUpsertErrors(t *testing.T) {
	tests := []struct {
		name string
		req  dto.UpsertAvailabilityRequest
		err  error
		code apperrors.ErrorCode
	}{
		{
			name: "bad user",
			req:  dto.UpsertAvailabilityRequest{UserID: "x", Date: "2024-01-07", TimeSlot: "18:00-20:00", Status: "maybe"},
			code: apperrors.ErrInvalidInput,
		},
		{
			name: "bad date",
			req:  dto.UpsertAvailabilityRequest{UserID: uuid.NewString(), Date: "7 Jan", TimeSlot: "18:00-20:00", Status: "maybe"},
			code: apperrors.ErrInvalidInput,
		},
		{
			name: "store failure",
			req:  dto.UpsertAvailabilityRequest{UserID: uuid.NewString(), Date: "2024-01-07", TimeSlot: "18:00-20:00", Status: "maybe"},
			err:  errors.New("db down"),
			code: apperrors.ErrUpdateFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			repo.err = tt.err
			req := tt.req
			_, appErr := NewAvailabilityService(repo).Upsert(context.Background(), &req)
			if appErr == nil || appErr.Code != tt.code {
				t.Errorf("appErr = %v, want %s", appErr, tt.code)
			}
		})
	}
}

func TestListForDate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAvailabilityService(repo)
	userID := uuid.New()

	for _, slot := range []string{"08:00-10:00", "18:00-20:00"} {
		if _, appErr := svc.Upsert(context.Background(), &dto.UpsertAvailabilityRequest{
			UserID: userID.String(), Date: "2024-01-07", TimeSlot: slot, Status: "available",
		}); appErr != nil {
			t.Fatalf("Upsert() error: %v", appErr)
		}
	}

	got, appErr := svc.ListForDate(context.Background(), userID, "2024-01-07")
	if appErr != nil {
		t.Fatalf("ListForDate() error: %v", appErr)
	}
	if len(got) != 2 {
		t.Errorf("got %d records, want 2", len(got))
	}

	got, appErr = svc.ListForDate(context.Background(), userID, "2024-01-08")
	if appErr != nil || got == nil || len(got) != 0 {
		t.Errorf("other day: got %v, %v; want an empty list", got, appErr)
	}

	if _, appErr := svc.ListForDate(context.Background(), userID, ""); appErr == nil || appErr.Code != apperrors.ErrInvalidInput {
		t.Errorf("missing date: appErr = %v, want INVALID_INPUT", appErr)
	}
}
