package broadcast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/matchtrack/internal/domain"
)

func box(woman, man string, mt domain.MatchType, date, clock string) domain.Matchbox {
	return domain.Matchbox{
		Woman:         woman,
		Man:           man,
		MatchType:     mt,
		BroadcastDate: date,
		BroadcastTime: clock,
		CreatedAt:     created,
	}
}

func TestValidPerfectMatchesAsOf_StrictlyBefore(t *testing.T) {
	boxes := []domain.Matchbox{
		box("Anna", "Ben", domain.MatchPerfect, "2024-05-11", "20:15"),
		box("Cara", "Dan", domain.MatchPerfect, "2024-05-25", "20:15"),
		box("Eva", "Finn", domain.MatchNoMatch, "2024-05-04", "20:15"),
	}
	ref := time.Date(2024, 5, 18, 20, 15, 0, 0, time.UTC)

	confirmed := ValidPerfectMatchesAsOf(boxes, ref)

	assert.Len(t, confirmed, 1)
	assert.Contains(t, confirmed, domain.Pair{Woman: "Anna", Man: "Ben"})
}

func TestValidPerfectMatchesAsOf_ExactTieExcluded(t *testing.T) {
	boxes := []domain.Matchbox{
		box("Anna", "Ben", domain.MatchPerfect, "2024-05-18", "20:15"),
	}
	ref := time.Date(2024, 5, 18, 20, 15, 0, 0, time.UTC)

	confirmed := ValidPerfectMatchesAsOf(boxes, ref)

	assert.Empty(t, confirmed)
}

func TestValidPerfectMatchesAsOf_IgnoresNonPerfect(t *testing.T) {
	boxes := []domain.Matchbox{
		box("Anna", "Ben", domain.MatchSold, "2024-05-04", "20:15"),
		box("Cara", "Dan", domain.MatchNoMatch, "2024-05-04", "20:15"),
	}
	ref := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, ValidPerfectMatchesAsOf(boxes, ref))
}

func TestValidPerfectMatchesAsOf_DefaultAirTimeShiftsBoundary(t *testing.T) {
	// Date-only box on the reference day: start-of-day counts as before an
	// evening reference, but with a default air time at the same slot it ties
	// and drops out.
	boxes := []domain.Matchbox{
		box("Anna", "Ben", domain.MatchPerfect, "2024-05-18", ""),
	}
	ref := time.Date(2024, 5, 18, 20, 15, 0, 0, time.UTC)

	assert.Len(t, ValidPerfectMatchesAsOf(boxes, ref), 1)
	assert.Empty(t, ValidPerfectMatchesAsOf(boxes, ref, WithDefaultAirTime("20:15")))
}
