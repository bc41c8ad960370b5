// Package validate enforces the competition's structural rules before any
// mutation commits. It is synchronous and read-only: callers load the
// current participants and matchboxes, run the checks, and only then write.
package validate

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/matchtrack/internal/broadcast"
	"github.com/roach88/matchtrack/internal/domain"
)

// RequiredPairs is the number of complete pairs a finalized matching night
// must seat.
const RequiredPairs = 10

// MaxLights is the highest legal light count for a matching night.
const MaxLights = 10

// NormalizeName canonicalizes a participant name for comparison: NFC
// normalization plus whitespace trimming. Names are compared case-sensitively.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// CheckMatchingNight validates a proposed matching night against the current
// participants and matchboxes. Rules run in order; the first violation wins.
func CheckMatchingNight(
	night domain.MatchingNight,
	participants []domain.Participant,
	boxes []domain.Matchbox,
	opts ...broadcast.Option,
) error {
	// Rule 1: exactly 10 pairs, both sides non-empty.
	complete := 0
	for _, pair := range night.Pairs {
		if pair.Complete() {
			complete++
		}
	}
	if complete != RequiredPairs || len(night.Pairs) != RequiredPairs {
		return NewIncompletePairsError(complete)
	}

	// Rule 2: no same-gender pair. Unknown names cannot conflict.
	genders := genderIndex(participants)
	for _, pair := range night.Pairs {
		gw, okw := genders[NormalizeName(pair.Woman)]
		gm, okm := genders[NormalizeName(pair.Man)]
		if okw && okm && gw == gm {
			return NewGenderConflictError(pair)
		}
	}

	// Rule 3: lights bounded above.
	if night.TotalLights > MaxLights {
		return NewTooManyLightsError(night.TotalLights)
	}

	// Rule 4: lights bounded below by perfect matches already known at this
	// night's broadcast instant.
	confirmed := broadcast.ValidPerfectMatchesAsOf(boxes, broadcast.ResolveInstant(night, opts...), opts...)
	required := confirmedSeated(night.Pairs, confirmed)
	if night.TotalLights < required {
		return NewLightsBelowConfirmedError(required, night.TotalLights)
	}

	// Rule 5: nobody seated twice.
	seen := make(map[string]bool, 2*len(night.Pairs))
	for _, pair := range night.Pairs {
		for _, name := range []string{NormalizeName(pair.Woman), NormalizeName(pair.Man)} {
			if seen[name] {
				return NewDuplicateParticipantError(name)
			}
			seen[name] = true
		}
	}

	return nil
}

// confirmedSeated counts night pairs that are already-confirmed perfect
// matches. Comparison is on normalized names.
func confirmedSeated(pairs []domain.Pair, confirmed map[domain.Pair]struct{}) int {
	normalized := make(map[domain.Pair]struct{}, len(confirmed))
	for couple := range confirmed {
		normalized[domain.Pair{
			Woman: NormalizeName(couple.Woman),
			Man:   NormalizeName(couple.Man),
		}] = struct{}{}
	}

	count := 0
	for _, pair := range pairs {
		key := domain.Pair{Woman: NormalizeName(pair.Woman), Man: NormalizeName(pair.Man)}
		if _, ok := normalized[key]; ok {
			count++
		}
	}
	return count
}

// CheckMatchbox validates a proposed matchbox. On success it returns the
// declared side effects the repository must execute in the same transaction:
// a perfect match deactivates both named participants.
func CheckMatchbox(box domain.Matchbox, participants []domain.Participant) ([]Effect, error) {
	pair := domain.Pair{Woman: box.Woman, Man: box.Man}

	// Rule 1: both sides present and of opposing gender.
	if !pair.Complete() {
		return nil, NewInvalidPairError(pair)
	}
	genders := genderIndex(participants)
	gw, okw := genders[NormalizeName(box.Woman)]
	gm, okm := genders[NormalizeName(box.Man)]
	if okw && okm && gw == gm {
		return nil, NewInvalidPairError(pair)
	}

	// Rule 2: a sale carries a positive price and a buyer.
	if box.MatchType == domain.MatchSold {
		if box.Price == nil || !box.Price.IsPositive() || strings.TrimSpace(box.Buyer) == "" {
			return nil, NewIncompleteSaleInfoError()
		}
	}

	if box.MatchType == domain.MatchPerfect {
		return []Effect{
			{Kind: EffectDeactivateParticipant, Name: box.Woman},
			{Kind: EffectDeactivateParticipant, Name: box.Man},
		}, nil
	}
	return nil, nil
}

// genderIndex maps normalized participant names to genders.
func genderIndex(participants []domain.Participant) map[string]domain.Gender {
	idx := make(map[string]domain.Gender, len(participants))
	for _, p := range participants {
		idx[NormalizeName(p.Name)] = p.Gender
	}
	return idx
}
