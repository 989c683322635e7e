package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"game-scheduler/core/constants"
	apperrors "game-scheduler/core/errors"
	"game-scheduler/modules/export/dto"
	"game-scheduler/modules/scheduling/entity"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

type fakeLister struct {
	games      []entity.Game
	err        error
	missing    bool
	patternErr error
}

func (f *fakeLister) GetPattern(ctx context.Context, id uuid.UUID) (*entity.RecurringPattern, error) {
	if f.patternErr != nil {
		return nil, f.patternErr
	}
	if f.missing {
		return nil, nil
	}
	return &entity.RecurringPattern{ID: id, Name: "Sunday Pickup"}, nil
}

func (f *fakeLister) ListGamesBySeries(ctx context.Context, seriesID uuid.UUID) ([]entity.Game, error) {
	return f.games, f.err
}

type fakeUploader struct {
	key         string
	contentType string
	body        []byte
}

func (f *fakeUploader) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	f.key, f.contentType, f.body = key, contentType, body
	return key, nil
}

type fakeEnqueuer struct {
	taskType string
	payload  any
	err      error
}

func (f *fakeEnqueuer) Enqueue(ctx context.Context, taskType string, payload any) (string, error) {
	f.taskType, f.payload = taskType, payload
	if f.err != nil {
		return "", f.err
	}
	return "task-1", nil
}

func seriesGames() []entity.Game {
	return []entity.Game{
		{
			Name: "Sunday Pickup - 1/7/2024", Date: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
			Time: "14:00", Location: "Court A", MinPlayers: 6, MaxPlayers: 10, Status: entity.GameStatusScheduled,
		},
		{
			Name: "Sunday Pickup - 1/14/2024", Date: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
			Time: "14:00", Location: "Court A", MinPlayers: 6, MaxPlayers: 10, Status: entity.GameStatusScheduled,
		},
	}
}

func TestBuildWorkbook(t *testing.T) {
	data, err := BuildWorkbook(seriesGames())
	if err != nil {
		t.Fatalf("BuildWorkbook() error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(gamesSheet)
	if err != nil {
		t.Fatalf("GetRows() error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}

	t.Run("header", func(t *testing.T) {
		if rows[0][0] != "Date" || rows[0][2] != "Name" {
			t.Errorf("header = %v", rows[0])
		}
	})

	t.Run("game rows", func(t *testing.T) {
		want := []string{"2024-01-07", "14:00", "Sunday Pickup - 1/7/2024", "Court A", "6", "10", "scheduled"}
		for i, v := range want {
			if rows[1][i] != v {
				t.Errorf("row 1 col %d = %q, want %q", i, rows[1][i], v)
			}
		}
		if rows[2][0] != "2024-01-14" {
			t.Errorf("row 2 date = %q", rows[2][0])
		}
	})
}

func TestBuildWorkbookEmptySeries(t *testing.T) {
	data, err := BuildWorkbook(nil)
	if err != nil {
		t.Fatalf("BuildWorkbook() error: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows(gamesSheet)
	if len(rows) != 1 {
		t.Errorf("got %d rows, want only the header", len(rows))
	}
}

func TestExportSeries(t *testing.T) {
	seriesID := uuid.New()
	uploader := &fakeUploader{}
	svc := NewExportService(&fakeLister{games: seriesGames()}, uploader, nil)

	key, err := svc.ExportSeries(context.Background(), seriesID)
	if err != nil {
		t.Fatalf("ExportSeries() error: %v", err)
	}

	if !strings.HasPrefix(key, constants.ExportKeyPrefix+"sunday-pickup-") || !strings.HasSuffix(key, ".xlsx") {
		t.Errorf("key = %q", key)
	}
	if uploader.contentType != constants.ExportContentType {
		t.Errorf("contentType = %q", uploader.contentType)
	}
	if len(uploader.body) == 0 {
		t.Error("uploaded an empty body")
	}
}

func TestExportSeriesErrors(t *testing.T) {
	t.Run("listing fails", func(t *testing.T) {
		svc := NewExportService(&fakeLister{err: errors.New("db down")}, &fakeUploader{}, nil)
		if _, err := svc.ExportSeries(context.Background(), uuid.New()); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("no storage", func(t *testing.T) {
		svc := NewExportService(&fakeLister{}, nil, nil)
		if _, err := svc.ExportSeries(context.Background(), uuid.New()); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestObjectKey(t *testing.T) {
	seriesID := uuid.New()

	if key := ObjectKey(seriesID, nil); !strings.HasPrefix(key, constants.ExportKeyPrefix+seriesID.String()+"-") {
		t.Errorf("empty series key = %q, want the series id", key)
	}

	games := []entity.Game{{Name: "Café Night - League - 3/5/2024"}}
	if key := ObjectKey(seriesID, games); !strings.HasPrefix(key, constants.ExportKeyPrefix+"cafe-night-league-") {
		t.Errorf("key = %q", key)
	}

	if ObjectKey(seriesID, nil) == ObjectKey(seriesID, nil) {
		t.Error("keys for repeated exports collide")
	}
}

func TestRequestSeriesExport(t *testing.T) {
	seriesID := uuid.New()

	t.Run("queues the task", func(t *testing.T) {
		enq := &fakeEnqueuer{}
		svc := NewExportService(&fakeLister{}, &fakeUploader{}, enq)

		resp, appErr := svc.RequestSeriesExport(context.Background(), seriesID)
		if appErr != nil {
			t.Fatalf("RequestSeriesExport() error: %v", appErr)
		}
		if resp.TaskID != "task-1" || resp.SeriesID != seriesID.String() {
			t.Errorf("resp = %+v", resp)
		}
		if enq.taskType != constants.TaskExportSeries {
			t.Errorf("taskType = %q", enq.taskType)
		}
		if p, ok := enq.payload.(dto.SeriesExportPayload); !ok || p.SeriesID != seriesID.String() {
			t.Errorf("payload = %#v", enq.payload)
		}
	})

	t.Run("queue failure", func(t *testing.T) {
		svc := NewExportService(&fakeLister{}, &fakeUploader{}, &fakeEnqueuer{err: errors.New("redis down")})
		_, appErr := svc.RequestSeriesExport(context.Background(), seriesID)
		if appErr == nil || appErr.Code != apperrors.ErrQueueFailed {
			t.Errorf("appErr = %v, want QUEUE_FAILED", appErr)
		}
	})

	t.Run("unknown series is not queued", func(t *testing.T) {
		enq := &fakeEnqueuer{}
		svc := NewExportService(&fakeLister{missing: true}, &fakeUploader{}, enq)

		_, appErr := svc.RequestSeriesExport(context.Background(), seriesID)
		if appErr == nil || appErr.Code != apperrors.ErrNotFound {
			t.Fatalf("appErr = %v, want NOT_FOUND", appErr)
		}
		if enq.taskType != "" {
			t.Errorf("queued %q for a missing series", enq.taskType)
		}
	})

	t.Run("series lookup failure", func(t *testing.T) {
		enq := &fakeEnqueuer{}
		svc := NewExportService(&fakeLister{patternErr: errors.New("db down")}, &fakeUploader{}, enq)

		_, appErr := svc.RequestSeriesExport(context.Background(), seriesID)
		if appErr == nil || appErr.Code != apperrors.ErrGetFailed {
			t.Fatalf("appErr = %v, want GET_FAILED", appErr)
		}
		if enq.taskType != "" {
			t.Errorf("queued %q after a failed lookup", enq.taskType)
		}
	})

	t.Run("no queue", func(t *testing.T) {
		svc := NewExportService(&fakeLister{}, &fakeUploader{}, nil)
		_, appErr := svc.RequestSeriesExport(context.Background(), seriesID)
		if appErr == nil || appErr.Code != apperrors.ErrQueueFailed {
			t.Errorf("appErr = %v, want QUEUE_FAILED", appErr)
		}
	})
}
