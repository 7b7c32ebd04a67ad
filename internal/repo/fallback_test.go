package repo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/grand-plaza/internal/domain"
	"github.com/pkordes/grand-plaza/internal/repo"
)

// downBackend fails every call, like an unreachable remote store.
func downBackend() *mockBackend {
	unreachable := errors.Join(domain.ErrBackendUnavailable, errors.New("dial tcp: connection refused"))
	return &mockBackend{
		name:   "remote",
		all:    func(context.Context) ([]domain.Booking, error) { return nil, unreachable },
		upsert: func(context.Context, ...domain.Booking) error { return unreachable },
		delete: func(context.Context, string) error { return unreachable },
	}
}

func TestFallbackBackend_PrimaryHealthy_SecondaryUntouched(t *testing.T) {
	ctx := context.Background()
	var upserted []domain.Booking
	primary := &mockBackend{
		all: func(context.Context) ([]domain.Booking, error) {
			return []domain.Booking{bookingFixture("BK1", "a@x.com", 0)}, nil
		},
		upsert: func(_ context.Context, b ...domain.Booking) error { upserted = b; return nil },
		delete: func(context.Context, string) error { return nil },
	}
	local, _ := newLocal(t)
	f := repo.NewFallbackBackend(primary, local, discardLogger())

	require.NoError(t, f.Upsert(ctx, bookingFixture("BK2", "a@x.com", 1)))
	got, err := f.All(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"BK1"}, ids(got))
	assert.Equal(t, []string{"BK2"}, ids(upserted))
	stored, err := local.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored, "local store must not be written while the remote works")
}

func TestFallbackBackend_PrimaryDown_UsesSecondary(t *testing.T) {
	ctx := context.Background()
	local, _ := newLocal(t)
	f := repo.NewFallbackBackend(downBackend(), local, discardLogger())

	require.NoError(t, f.Upsert(ctx, bookingFixture("BK1", "a@x.com", 0), bookingFixture("BK2", "a@x.com", 1)))
	require.NoError(t, f.Delete(ctx, "BK1"))

	got, err := f.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"BK2"}, ids(got))
}

func TestFallbackBackend_BothDown_ReturnsSecondaryError(t *testing.T) {
	diskErr := errors.New("disk full")
	secondary := &mockBackend{
		upsert: func(context.Context, ...domain.Booking) error { return diskErr },
	}
	f := repo.NewFallbackBackend(downBackend(), secondary, discardLogger())

	err := f.Upsert(context.Background(), bookingFixture("BK1", "a@x.com", 0))

	assert.ErrorIs(t, err, diskErr)
}

func TestFallbackBackend_ForwardsReadiness(t *testing.T) {
	live := newLiveBackend(downBackend())
	f := repo.NewFallbackBackend(live, &mockBackend{}, discardLogger())

	select {
	case <-f.Ready():
		t.Fatal("fallback must not be ready before the primary")
	default:
	}

	close(live.ready)
	_, open := <-f.Ready()
	assert.False(t, open)
}

func TestFallbackBackend_PlainPrimary_ReadyImmediately(t *testing.T) {
	f := repo.NewFallbackBackend(&mockBackend{}, &mockBackend{}, discardLogger())

	_, open := <-f.Ready()

	assert.False(t, open)
	assert.NoError(t, f.Subscribe(context.Background(), func([]domain.Booking) {}))
}
