package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/grand-plaza/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDurationUnits(t *testing.T) {
	cases := []struct {
		name      string
		in, out   time.Time
		wantUnits int
	}{
		{"one night", date(2025, 6, 10), date(2025, 6, 11), 1},
		{"three nights", date(2025, 6, 10), date(2025, 6, 13), 3},
		{"across month end", date(2025, 6, 29), date(2025, 7, 2), 3},
		{"same day floors to one", date(2025, 6, 10), date(2025, 6, 10), 1},
		{"reversed range is absolute", date(2025, 6, 13), date(2025, 6, 10), 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantUnits, domain.DurationUnits(tc.in, tc.out))
		})
	}
}

// TestDurationUnits_PartialDayRoundsUp checks that a range not aligned to
// midnight still counts the started day.
func TestDurationUnits_PartialDayRoundsUp(t *testing.T) {
	in := date(2025, 6, 10)
	out := in.Add(36 * time.Hour)

	assert.Equal(t, 2, domain.DurationUnits(in, out))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", domain.NormalizeEmail("  A@X.com "))
}

func TestParseKind(t *testing.T) {
	k, err := domain.ParseKind("hall")
	require.NoError(t, err)
	assert.Equal(t, domain.KindHall, k)
	assert.Equal(t, "day", k.Unit())
	assert.Equal(t, "night", domain.KindRoom.Unit())

	_, err = domain.ParseKind("suite")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidationErrorsWrapErrValidation(t *testing.T) {
	for _, err := range []error{
		domain.ErrUnauthenticated,
		domain.ErrInvalidDateRange,
		domain.ErrCapacityExceeded,
		domain.ErrInvalidGuestCount,
		domain.ErrMissingEventTime,
		domain.ErrIncompleteFields,
		domain.ErrPasswordMismatch,
		domain.ErrEmailAlreadyExists,
		domain.ErrInvalidCredentials,
	} {
		assert.ErrorIs(t, err, domain.ErrValidation, err.Error())
	}
	assert.NotErrorIs(t, domain.ErrBackendUnavailable, domain.ErrValidation)
}
