package service_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/glekoz/uvsearch/internal/models"
	"github.com/glekoz/uvsearch/internal/repository"
	"github.com/glekoz/uvsearch/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock repo ---

type mockRepo struct {
	findByMinute func(ctx context.Context, minute string) ([]map[string]any, error)
	latestUV     func(ctx context.Context, location string) (*float64, error)
	ping         func(ctx context.Context) error
}

func (m *mockRepo) FindByMinute(ctx context.Context, minute string) ([]map[string]any, error) {
	return m.findByMinute(ctx, minute)
}
func (m *mockRepo) LatestUV(ctx context.Context, location string) (*float64, error) {
	return m.latestUV(ctx, location)
}
func (m *mockRepo) Ping(ctx context.Context) error {
	return m.ping(ctx)
}

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func ptrFloat(f float64) *float64 { return &f }

var sampleRow = map[string]any{
	"date_time": time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
	"uv_index":  3.2,
}

// =================================================================
// Search tests
// =================================================================

func TestSearch_Success(t *testing.T) {
	var capturedKey string
	repo := &mockRepo{
		findByMinute: func(_ context.Context, minute string) ([]map[string]any, error) {
			capturedKey = minute
			return []map[string]any{sampleRow}, nil
		},
	}
	svc := service.New(repo, testLogger)

	result, err := svc.Search(context.Background(), "2024-01-01", "09", "30")

	require.NoError(t, err)
	assert.Equal(t, "2024-01-01 09:30", capturedKey)
	require.Len(t, result, 1)
	assert.Equal(t, 3.2, result[0]["uv_index"])
}

func TestSearch_DuplicatesAllReturned(t *testing.T) {
	repo := &mockRepo{
		findByMinute: func(_ context.Context, _ string) ([]map[string]any, error) {
			return []map[string]any{sampleRow, {"date_time": sampleRow["date_time"], "uv_index": 3.4}}, nil
		},
	}
	svc := service.New(repo, testLogger)

	result, err := svc.Search(context.Background(), "2024-01-01", "09", "30")

	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestSearch_NoMatch_EmptyNotNil(t *testing.T) {
	repo := &mockRepo{
		findByMinute: func(_ context.Context, _ string) ([]map[string]any, error) { return nil, nil },
	}
	svc := service.New(repo, testLogger)

	result, err := svc.Search(context.Background(), "2024-01-01", "09", "31")

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestSearch_Boundaries(t *testing.T) {
	var keys []string
	repo := &mockRepo{
		findByMinute: func(_ context.Context, minute string) ([]map[string]any, error) {
			keys = append(keys, minute)
			return nil, nil
		},
	}
	svc := service.New(repo, testLogger)

	_, err := svc.Search(context.Background(), "2024-01-01", "00", "00")
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), "2024-01-01", "23", "59")
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-01-01 00:00", "2024-01-01 23:59"}, keys)
}

func TestSearch_MalformedKey_EmptyWithoutQuery(t *testing.T) {
	pinged := false
	repo := &mockRepo{
		findByMinute: func(_ context.Context, _ string) ([]map[string]any, error) {
			t.Fatal("query must not run for a malformed key")
			return nil, nil
		},
		ping: func(_ context.Context) error {
			pinged = true
			return nil
		},
	}
	svc := service.New(repo, testLogger)

	result, err := svc.Search(context.Background(), "", "", "")

	require.NoError(t, err)
	assert.True(t, pinged)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestSearch_MalformedKey_StorageDown(t *testing.T) {
	repoErr := errors.New("connection refused")
	repo := &mockRepo{
		ping: func(_ context.Context) error { return repoErr },
	}
	svc := service.New(repo, testLogger)

	_, err := svc.Search(context.Background(), "not-a-date", "9", "x")

	assert.ErrorIs(t, err, repoErr)
}

func TestSearch_RepoError(t *testing.T) {
	repoErr := errors.New("db is down")
	repo := &mockRepo{
		findByMinute: func(_ context.Context, _ string) ([]map[string]any, error) { return nil, repoErr },
	}
	svc := service.New(repo, testLogger)

	_, err := svc.Search(context.Background(), "2024-01-01", "09", "30")

	assert.ErrorIs(t, err, repoErr)
}

func TestSearch_StorageErrorsReturnedNotLogged(t *testing.T) {
	repoErr := errors.New("db is down")
	repo := &mockRepo{
		findByMinute: func(_ context.Context, _ string) ([]map[string]any, error) { return nil, repoErr },
		ping:         func(_ context.Context) error { return repoErr },
		latestUV:     func(_ context.Context, _ string) (*float64, error) { return nil, repoErr },
	}
	var buf bytes.Buffer
	svc := service.New(repo, slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	_, err := svc.Search(context.Background(), "2024-01-01", "09", "30")
	assert.ErrorIs(t, err, repoErr)
	_, err = svc.Search(context.Background(), "bad", "09", "30")
	assert.ErrorIs(t, err, repoErr)
	_, err = svc.LatestUV(context.Background(), "3000")
	assert.ErrorIs(t, err, repoErr)

	assert.NotContains(t, buf.String(), "level=ERROR")
}

// =================================================================
// LatestUV tests
// =================================================================

func TestLatestUV_Success(t *testing.T) {
	repo := &mockRepo{
		latestUV: func(_ context.Context, location string) (*float64, error) {
			assert.Equal(t, "3000", location)
			return ptrFloat(7.5), nil
		},
	}
	svc := service.New(repo, testLogger)

	result, err := svc.LatestUV(context.Background(), "3000")

	require.NoError(t, err)
	assert.Equal(t, models.UVReading{Location: "3000", UVIndex: ptrFloat(7.5)}, result)
}

func TestLatestUV_EmptyLocation(t *testing.T) {
	svc := service.New(&mockRepo{}, testLogger)

	_, err := svc.LatestUV(context.Background(), "")

	assert.ErrorIs(t, err, service.ErrEmptyLocation)
}

func TestLatestUV_BlankLocationIsLookedUp(t *testing.T) {
	var got string
	repo := &mockRepo{
		latestUV: func(_ context.Context, location string) (*float64, error) {
			got = location
			return nil, repository.ErrNotFound
		},
	}
	svc := service.New(repo, testLogger)

	_, err := svc.LatestUV(context.Background(), "   ")

	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Equal(t, "   ", got)
}

func TestLatestUV_NotFound(t *testing.T) {
	repo := &mockRepo{
		latestUV: func(_ context.Context, _ string) (*float64, error) { return nil, repository.ErrNotFound },
	}
	svc := service.New(repo, testLogger)

	_, err := svc.LatestUV(context.Background(), "Nowhere")

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestLatestUV_RepoError(t *testing.T) {
	repoErr := errors.New("timeout")
	repo := &mockRepo{
		latestUV: func(_ context.Context, _ string) (*float64, error) { return nil, repoErr },
	}
	svc := service.New(repo, testLogger)

	_, err := svc.LatestUV(context.Background(), "Carlton")

	assert.ErrorIs(t, err, repoErr)
}

// =================================================================
// Health tests
// =================================================================

func TestHealth(t *testing.T) {
	repoErr := errors.New("down")
	up := service.New(&mockRepo{ping: func(context.Context) error { return nil }}, testLogger)
	down := service.New(&mockRepo{ping: func(context.Context) error { return repoErr }}, testLogger)

	assert.NoError(t, up.Health(context.Background()))
	assert.ErrorIs(t, down.Health(context.Background()), repoErr)
}
