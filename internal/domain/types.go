package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gender of a participant.
type Gender string

const (
	GenderFemale Gender = "F"
	GenderMale   Gender = "M"
)

// MatchType is the revealed outcome of a matchbox.
type MatchType string

const (
	MatchPerfect MatchType = "perfect"
	MatchNoMatch MatchType = "no-match"
	MatchSold    MatchType = "sold"
)

// Participant is a contestant. Name is the business key used by all
// cross-references; it is not unique at the storage level.
type Participant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Gender    Gender    `json:"gender"`
	Age       *int      `json:"age,omitempty"`
	KnownFrom string    `json:"knownFrom,omitempty"`
	Active    bool      `json:"active"`
	PhotoURL  string    `json:"photoUrl,omitempty"`
	SocialURL string    `json:"socialUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Pair is one (woman, man) seating in a matching night.
type Pair struct {
	Woman string `json:"woman"`
	Man   string `json:"man"`
}

// Complete reports whether both sides of the pair are filled in.
func (p Pair) Complete() bool {
	return p.Woman != "" && p.Man != ""
}

// MatchingNight is a paired ceremony event revealing an aggregate light count.
//
// Date is the nominal calendar date (YYYY-MM-DD). BroadcastDate and
// BroadcastTime, when present, pin the broadcast instant explicitly;
// otherwise CreatedAt is the temporal fallback.
type MatchingNight struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Date          string    `json:"date"`
	Pairs         []Pair    `json:"pairs"`
	TotalLights   int       `json:"totalLights"`
	BroadcastDate string    `json:"broadcastDate,omitempty"`
	BroadcastTime string    `json:"broadcastTime,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Broadcast returns the explicit broadcast date and clock time, either of
// which may be empty.
func (n MatchingNight) Broadcast() (date, clock string) {
	return n.BroadcastDate, n.BroadcastTime
}

// Fallback returns the instant used when no explicit broadcast date is set.
func (n MatchingNight) Fallback() time.Time {
	return n.CreatedAt
}

// Matchbox is a revealed outcome for one specific pair.
//
// A sold box carries a price and buyer. A perfect box marks both named
// participants as confirmed; the repository deactivates them as a declared
// side effect of the commit.
type Matchbox struct {
	ID            int64            `json:"id"`
	Woman         string           `json:"woman"`
	Man           string           `json:"man"`
	MatchType     MatchType        `json:"matchType"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Buyer         string           `json:"buyer,omitempty"`
	SoldDate      string           `json:"soldDate,omitempty"`
	BroadcastDate string           `json:"broadcastDate,omitempty"`
	BroadcastTime string           `json:"broadcastTime,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// Broadcast returns the explicit broadcast date and clock time, either of
// which may be empty.
func (b Matchbox) Broadcast() (date, clock string) {
	return b.BroadcastDate, b.BroadcastTime
}

// Fallback returns the instant used when no explicit broadcast date is set.
func (b Matchbox) Fallback() time.Time {
	return b.CreatedAt
}

// Penalty is a signed budget transaction. Negative amounts are deductions,
// positive amounts are credits.
type Penalty struct {
	ID              int64           `json:"id"`
	ParticipantName string          `json:"participantName"`
	Reason          string          `json:"reason"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
	Date            string          `json:"date"`
	CreatedAt       time.Time       `json:"createdAt"`
}
