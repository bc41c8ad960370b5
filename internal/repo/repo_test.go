package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matchtrack/internal/budget"
	"github.com/roach88/matchtrack/internal/domain"
	"github.com/roach88/matchtrack/internal/record"
	"github.com/roach88/matchtrack/internal/testutil"
	"github.com/roach88/matchtrack/internal/validate"
)

var testStart = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// newTestRepo opens a fresh store with a frozen clock and a deterministic
// export id source. The same clock stamps meta rows and domain records.
func newTestRepo(t *testing.T, opts ...Option) *Repository {
	t.Helper()
	clock := testutil.NewTickingClock(testStart, 0)
	s, err := record.Open(filepath.Join(t.TempDir(), "test.db"), record.WithTimeSource(clock.Now))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	base := []Option{
		WithTimeSource(clock.Now),
		WithExportIDSource(testutil.IDSequence("export")),
	}
	return New(s, append(base, opts...)...)
}

func addParticipant(t *testing.T, r *Repository, name string, gender domain.Gender) int64 {
	t.Helper()
	id, err := r.CreateParticipant(context.Background(), domain.Participant{Name: name, Gender: gender})
	require.NoError(t, err)
	return id
}

// pairs10 seats woman/man at index 0 and fills the rest with placeholder
// names so the ten-pair rule is satisfied.
func pairs10(woman, man string) []domain.Pair {
	pairs := []domain.Pair{{Woman: woman, Man: man}}
	for i := 2; i <= 10; i++ {
		pairs = append(pairs, domain.Pair{
			Woman: fmt.Sprintf("W%d", i),
			Man:   fmt.Sprintf("M%d", i),
		})
	}
	return pairs
}

func TestParticipants_EmptyStore(t *testing.T) {
	r := newTestRepo(t)

	out, err := r.Participants(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCreateParticipant_StartsActive(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	id, err := r.CreateParticipant(ctx, domain.Participant{Name: "Anna", Gender: domain.GenderFemale, Active: false})
	require.NoError(t, err)

	out, err := r.Participants(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, id, out[0].ID)
	assert.True(t, out[0].Active)
	assert.Equal(t, testStart, out[0].CreatedAt)
}

func TestCreateParticipant_NegativeAge(t *testing.T) {
	r := newTestRepo(t)
	age := -1

	_, err := r.CreateParticipant(context.Background(), domain.Participant{Name: "Anna", Gender: domain.GenderFemale, Age: &age})
	assert.Error(t, err)
}

func TestUpdateParticipant_NameImmutable(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	id := addParticipant(t, r, "Anna", domain.GenderFemale)

	err := r.UpdateParticipant(ctx, id, domain.Participant{Name: "Anne", Gender: domain.GenderFemale})
	assert.Error(t, err)

	out, _ := r.Participants(ctx)
	assert.Equal(t, "Anna", out[0].Name)
}

func TestUpdateParticipant_CannotReactivate(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	id := addParticipant(t, r, "Anna", domain.GenderFemale)
	addParticipant(t, r, "Ben", domain.GenderMale)

	_, err := r.CreateMatchbox(ctx, domain.Matchbox{
		Woman: "Anna", Man: "Ben", MatchType: domain.MatchPerfect,
	})
	require.NoError(t, err)

	// A profile edit must not undo the confirmed-match deactivation.
	err = r.UpdateParticipant(ctx, id, domain.Participant{
		Name: "Anna", Gender: domain.GenderFemale, KnownFrom: "Season 2", Active: true,
	})
	require.NoError(t, err)

	participants, err := r.Participants(ctx)
	require.NoError(t, err)
	for _, p := range participants {
		if p.ID == id {
			assert.False(t, p.Active)
			assert.Equal(t, "Season 2", p.KnownFrom, "profile fields still update")
		}
	}
}

func TestUpdateParticipant_NotFound(t *testing.T) {
	r := newTestRepo(t)

	err := r.UpdateParticipant(context.Background(), 99, domain.Participant{Name: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteParticipant_KeepsReferences(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	id := addParticipant(t, r, "Anna", domain.GenderFemale)
	addParticipant(t, r, "Ben", domain.GenderMale)
	_, err := r.CreateMatchbox(ctx, domain.Matchbox{Woman: "Anna", Man: "Ben", MatchType: domain.MatchNoMatch})
	require.NoError(t, err)

	require.NoError(t, r.DeleteParticipant(ctx, id))

	boxes, err := r.Matchboxes(ctx)
	require.NoError(t, err)
	require.Len(t, boxes, 1)
	assert.Equal(t, "Anna", boxes[0].Woman, "history keeps the name")
}

func TestStartingBudget_DefaultAndOverride(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	got, err := r.StartingBudget(ctx)
	require.NoError(t, err)
	assert.True(t, got.Equal(budget.DefaultStartingBudget))

	require.NoError(t, r.SetStartingBudget(ctx, decimal.NewFromInt(150000)))

	got, err = r.StartingBudget(ctx)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(150000)))
}

func TestComputeBalance_FoldsStoredRecords(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	addParticipant(t, r, "Anna", domain.GenderFemale)
	addParticipant(t, r, "Ben", domain.GenderMale)

	price := decimal.NewFromInt(5000)
	_, err := r.CreateMatchbox(ctx, domain.Matchbox{
		Woman: "Anna", Man: "Ben",
		MatchType: domain.MatchSold,
		Price:     &price,
		Buyer:     "Cara",
	})
	require.NoError(t, err)

	_, err = r.CreatePenalty(ctx, domain.Penalty{ParticipantName: "Anna", Reason: "rule violation", Amount: decimal.NewFromInt(-1000)})
	require.NoError(t, err)
	_, err = r.CreatePenalty(ctx, domain.Penalty{ParticipantName: "Ben", Reason: "challenge won", Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)

	s, err := r.ComputeBalance(ctx)
	require.NoError(t, err)
	assert.True(t, s.Revenue.Equal(decimal.NewFromInt(5000)), "revenue = %s", s.Revenue)
	assert.True(t, s.TotalPenalties.Equal(decimal.NewFromInt(1000)), "penalties = %s", s.TotalPenalties)
	assert.True(t, s.TotalCredits.Equal(decimal.NewFromInt(500)), "credits = %s", s.TotalCredits)
	assert.True(t, s.Balance.Equal(decimal.NewFromInt(194500)), "balance = %s", s.Balance)
}

func TestTimeline_MergedDescending(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	addParticipant(t, r, "Anna", domain.GenderFemale)
	addParticipant(t, r, "Ben", domain.GenderMale)

	_, err := r.CreateMatchbox(ctx, domain.Matchbox{
		Woman: "Anna", Man: "Ben",
		MatchType:     domain.MatchNoMatch,
		BroadcastDate: "2024-05-04", BroadcastTime: "20:15",
	})
	require.NoError(t, err)

	_, err = r.CreateMatchingNight(ctx, domain.MatchingNight{
		Name: "Night 1", Date: "2024-05-18",
		Pairs: pairs10("Anna", "Ben"), TotalLights: 3,
		BroadcastDate: "2024-05-18", BroadcastTime: "20:15",
	})
	require.NoError(t, err)

	feed, err := r.Timeline(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.NotNil(t, feed[0].Night)
	assert.NotNil(t, feed[1].Box)
}

// validationCode extracts the rule code from a commit error.
func validationCode(t *testing.T, err error) validate.Code {
	t.Helper()
	require.Error(t, err)
	var ve *validate.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Code
}
