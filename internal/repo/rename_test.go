package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matchtrack/internal/domain"
)

func TestRenameParticipant_CascadesEverywhere(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	id := addParticipant(t, r, "Anna", domain.GenderFemale)
	addParticipant(t, r, "Ben", domain.GenderMale)

	_, err := r.CreateMatchbox(ctx, domain.Matchbox{
		Woman: "Anna", Man: "Ben", MatchType: domain.MatchNoMatch,
	})
	require.NoError(t, err)

	_, err = r.CreateMatchingNight(ctx, domain.MatchingNight{
		Name: "Night 1", Date: "2024-05-18",
		Pairs: pairs10("Anna", "Ben"), TotalLights: 3,
	})
	require.NoError(t, err)

	require.NoError(t, r.RenameParticipant(ctx, id, "Anne"))

	participants, err := r.Participants(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Anne", participants[0].Name)

	boxes, err := r.Matchboxes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Anne", boxes[0].Woman)

	nights, err := r.MatchingNights(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Anne", nights[0].Pairs[0].Woman)
	assert.Equal(t, "Ben", nights[0].Pairs[0].Man)
}

func TestRenameParticipant_CollisionRejected(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	id := addParticipant(t, r, "Anna", domain.GenderFemale)
	addParticipant(t, r, "Anne", domain.GenderFemale)

	err := r.RenameParticipant(ctx, id, "Anne")
	assert.Error(t, err)

	// Nothing changed.
	participants, _ := r.Participants(ctx)
	assert.Equal(t, "Anna", participants[0].Name)
}

func TestRenameParticipant_NotFound(t *testing.T) {
	r := newTestRepo(t)

	err := r.RenameParticipant(context.Background(), 404, "Anne")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRenameParticipant_EmptyName(t *testing.T) {
	r := newTestRepo(t)
	id := addParticipant(t, r, "Anna", domain.GenderFemale)

	err := r.RenameParticipant(context.Background(), id, "   ")
	assert.Error(t, err)
}

func TestRenameParticipant_SameNameIsNoOp(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	id := addParticipant(t, r, "Anna", domain.GenderFemale)

	require.NoError(t, r.RenameParticipant(ctx, id, "Anna"))

	participants, _ := r.Participants(ctx)
	assert.Equal(t, "Anna", participants[0].Name)
}

func TestRenameParticipant_OnlyMatchingSideChanges(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	addParticipant(t, r, "Anna", domain.GenderFemale)
	id := addParticipant(t, r, "Ben", domain.GenderMale)

	_, err := r.CreateMatchbox(ctx, domain.Matchbox{
		Woman: "Anna", Man: "Ben", MatchType: domain.MatchNoMatch,
	})
	require.NoError(t, err)

	require.NoError(t, r.RenameParticipant(ctx, id, "Benno"))

	boxes, err := r.Matchboxes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Anna", boxes[0].Woman)
	assert.Equal(t, "Benno", boxes[0].Man)
}
