package broadcast

import (
	"sort"
	"time"

	"github.com/roach88/matchtrack/internal/domain"
)

// SortDescending returns the events ordered most recent first. The sort is
// stable; on a resolved-instant tie an event with an explicit broadcast time
// ranks as more recent than one without (events lacking explicit time sort
// after explicit-timed events on the same date).
func SortDescending[E Event](events []E, opts ...Option) []E {
	o := applyOptions(opts)

	out := make([]E, len(events))
	copy(out, events)

	sort.SliceStable(out, func(i, j int) bool {
		return moreRecent(out[i], out[j], o)
	})
	return out
}

// moreRecent is the descending-order comparator.
func moreRecent(a, b Event, o options) bool {
	ia, ib := resolve(a, o), resolve(b, o)
	if !ia.Equal(ib) {
		return ia.After(ib)
	}
	return hasExplicitClock(a) && !hasExplicitClock(b)
}

// EntryKind tags a timeline entry.
type EntryKind string

const (
	EntryMatchingNight EntryKind = "matching_night"
	EntryMatchbox      EntryKind = "matchbox"
)

// Entry is one element of the merged broadcast feed.
type Entry struct {
	Kind    EntryKind
	Instant time.Time

	// Exactly one of Night/Box is set, matching Kind.
	Night *domain.MatchingNight
	Box   *domain.Matchbox
}

// Timeline merges matching nights and matchboxes into one chronological
// broadcast feed, most recent first.
func Timeline(nights []domain.MatchingNight, boxes []domain.Matchbox, opts ...Option) []Entry {
	o := applyOptions(opts)

	entries := make([]Entry, 0, len(nights)+len(boxes))
	for i := range nights {
		entries = append(entries, Entry{
			Kind:    EntryMatchingNight,
			Instant: resolve(nights[i], o),
			Night:   &nights[i],
		})
	}
	for i := range boxes {
		entries = append(entries, Entry{
			Kind:    EntryMatchbox,
			Instant: resolve(boxes[i], o),
			Box:     &boxes[i],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Instant.Equal(entries[j].Instant) {
			return entries[i].Instant.After(entries[j].Instant)
		}
		return hasExplicitClock(entries[i].event()) && !hasExplicitClock(entries[j].event())
	})
	return entries
}

func (e Entry) event() Event {
	if e.Night != nil {
		return *e.Night
	}
	return *e.Box
}
