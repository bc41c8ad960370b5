package broadcast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/matchtrack/internal/domain"
)

func night(date, clock string, created time.Time) domain.MatchingNight {
	return domain.MatchingNight{
		Name:          "night",
		BroadcastDate: date,
		BroadcastTime: clock,
		CreatedAt:     created,
	}
}

var created = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func TestResolveInstant_DateAndTime(t *testing.T) {
	n := night("2024-05-18", "20:15", created)

	got := ResolveInstant(n)
	assert.Equal(t, time.Date(2024, 5, 18, 20, 15, 0, 0, time.UTC), got)
}

func TestResolveInstant_DateOnlyIsStartOfDay(t *testing.T) {
	n := night("2024-05-18", "", created)

	got := ResolveInstant(n)
	assert.Equal(t, time.Date(2024, 5, 18, 0, 0, 0, 0, time.UTC), got)
}

func TestResolveInstant_DateOnlyWithDefaultAirTime(t *testing.T) {
	n := night("2024-05-18", "", created)

	got := ResolveInstant(n, WithDefaultAirTime("20:15"))
	assert.Equal(t, time.Date(2024, 5, 18, 20, 15, 0, 0, time.UTC), got)
}

func TestResolveInstant_NoDateFallsBack(t *testing.T) {
	n := night("", "20:15", created)

	got := ResolveInstant(n)
	assert.Equal(t, created, got)
}

func TestResolveInstant_UnparseableDateFallsBack(t *testing.T) {
	n := night("18.05.2024", "20:15", created)

	got := ResolveInstant(n)
	assert.Equal(t, created, got)
}

func TestResolveInstant_UnparseableClockIsStartOfDay(t *testing.T) {
	n := night("2024-05-18", "quarter past eight", created)

	got := ResolveInstant(n)
	assert.Equal(t, time.Date(2024, 5, 18, 0, 0, 0, 0, time.UTC), got)
}

func TestIsBefore_StrictOrdering(t *testing.T) {
	earlier := night("2024-05-17", "20:15", created)
	later := night("2024-05-18", "20:15", created)

	assert.True(t, IsBefore(earlier, later))
	assert.False(t, IsBefore(later, earlier))
}

func TestIsBefore_ExactTieIsNotOrdered(t *testing.T) {
	a := night("2024-05-18", "20:15", created)
	b := night("2024-05-18", "20:15", created.Add(time.Hour))

	assert.False(t, IsBefore(a, b))
	assert.False(t, IsBefore(b, a))
}
