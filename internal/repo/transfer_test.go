package repo

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matchtrack/internal/domain"
)

// seedSeason populates a small but representative dataset: two participants
// confirmed as a perfect match, one full matching night, one penalty.
func seedSeason(t *testing.T, r *Repository) {
	t.Helper()
	ctx := context.Background()

	addParticipant(t, r, "Anna", domain.GenderFemale)
	addParticipant(t, r, "Ben", domain.GenderMale)

	_, err := r.CreateMatchbox(ctx, domain.Matchbox{
		Woman: "Anna", Man: "Ben",
		MatchType:     domain.MatchPerfect,
		BroadcastDate: "2024-05-04", BroadcastTime: "20:15",
	})
	require.NoError(t, err)

	_, err = r.CreateMatchingNight(ctx, domain.MatchingNight{
		Name: "Night 1", Date: "2024-05-18",
		Pairs: pairs10("Anna", "Ben"), TotalLights: 3,
		BroadcastDate: "2024-05-18", BroadcastTime: "20:15",
	})
	require.NoError(t, err)

	_, err = r.CreatePenalty(ctx, domain.Penalty{
		ParticipantName: "Anna",
		Reason:          "rule violation",
		Amount:          decimal.NewFromInt(-1000),
		Date:            "2024-05-20",
	})
	require.NoError(t, err)
}

func TestExportAll_Golden(t *testing.T) {
	r := newTestRepo(t)
	seedSeason(t, r)

	doc, err := r.ExportAll(context.Background())
	require.NoError(t, err)

	data, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)
	data = append(data, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "export", data)
}

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()

	source := newTestRepo(t)
	seedSeason(t, source)
	doc, err := source.ExportAll(ctx)
	require.NoError(t, err)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	target := newTestRepo(t)
	require.NoError(t, target.ImportAll(ctx, data))

	reexport, err := target.ExportAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, doc.Participants, reexport.Participants)
	assert.Equal(t, doc.MatchingNights, reexport.MatchingNights)
	assert.Equal(t, doc.Matchboxes, reexport.Matchboxes)
	assert.Equal(t, doc.Penalties, reexport.Penalties)
}

func TestImportAll_ReplacesExistingData(t *testing.T) {
	ctx := context.Background()

	r := newTestRepo(t)
	addParticipant(t, r, "Old", domain.GenderFemale)

	doc := Database{
		Participants: []domain.Participant{
			{Name: "New", Gender: domain.GenderMale, Active: true, CreatedAt: testStart},
		},
		MatchingNights: []domain.MatchingNight{},
		Matchboxes:     []domain.Matchbox{},
		Penalties:      []domain.Penalty{},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	require.NoError(t, r.ImportAll(ctx, data))

	participants, err := r.Participants(ctx)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, "New", participants[0].Name)
}

func TestImportAll_MalformedDocumentLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()

	r := newTestRepo(t)
	addParticipant(t, r, "Anna", domain.GenderFemale)

	cases := []struct {
		name string
		data string
	}{
		{"not json", `{"participants": [`},
		{"missing collections", `{"participants": []}`},
		{"bad match type", `{
			"participants": [], "matchingNights": [], "penalties": [],
			"matchboxes": [{"woman":"Anna","man":"Ben","matchType":"maybe","createdAt":"2024-05-01T10:00:00Z","updatedAt":"2024-05-01T10:00:00Z"}]
		}`},
		{"bad gender", `{
			"participants": [{"name":"Anna","gender":"X","active":true,"createdAt":"2024-05-01T10:00:00Z"}],
			"matchingNights": [], "matchboxes": [], "penalties": []
		}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := r.ImportAll(ctx, []byte(tc.data))
			require.Error(t, err)
			assert.True(t, IsImportError(err), "expected ImportError, got %v", err)

			participants, err := r.Participants(ctx)
			require.NoError(t, err)
			require.Len(t, participants, 1)
			assert.Equal(t, "Anna", participants[0].Name)
		})
	}
}

func TestImportAll_PreservesSurrogateKeys(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	doc := Database{
		Participants: []domain.Participant{
			{ID: 7, Name: "Anna", Gender: domain.GenderFemale, Active: true, CreatedAt: testStart},
		},
		MatchingNights: []domain.MatchingNight{},
		Matchboxes:     []domain.Matchbox{},
		Penalties:      []domain.Penalty{},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	require.NoError(t, r.ImportAll(ctx, data))

	participants, err := r.Participants(ctx)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, int64(7), participants[0].ID)
}
