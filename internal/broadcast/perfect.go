package broadcast

import (
	"time"

	"github.com/roach88/matchtrack/internal/domain"
)

// ValidPerfectMatchesAsOf returns the (woman, man) pairs confirmed as
// perfect matches strictly before the reference instant.
//
// A perfect match revealed AT or AFTER the reference instant is excluded:
// a matchbox aired after a matching night must not count as already known
// when validating that night. The boundary is a strict less-than, so an
// exact tie does not leak through.
func ValidPerfectMatchesAsOf(boxes []domain.Matchbox, ref time.Time, opts ...Option) map[domain.Pair]struct{} {
	o := applyOptions(opts)

	confirmed := make(map[domain.Pair]struct{})
	for _, box := range boxes {
		if box.MatchType != domain.MatchPerfect {
			continue
		}
		if !resolve(box, o).Before(ref) {
			continue
		}
		confirmed[domain.Pair{Woman: box.Woman, Man: box.Man}] = struct{}{}
	}
	return confirmed
}
