package ranking

import (
	"strings"
	"time"

	"faceoff/internal/library"
)

// Outcome is one of the four user decisions a duel can receive.
type Outcome string

const (
	OutcomeLeftWins  Outcome = "left"
	OutcomeRightWins Outcome = "right"
	// OutcomeTie ranks both participants in display order.
	OutcomeTie Outcome = "tie"
	// OutcomeSkip advances the duel counter without ranking either participant.
	OutcomeSkip Outcome = "skip"
)

// ParseOutcome converts a string into a known Outcome.
func ParseOutcome(value string) (Outcome, bool) {
	switch Outcome(strings.ToLower(strings.TrimSpace(value))) {
	case OutcomeLeftWins:
		return OutcomeLeftWins, true
	case OutcomeRightWins:
		return OutcomeRightWins, true
	case OutcomeTie:
		return OutcomeTie, true
	case OutcomeSkip:
		return OutcomeSkip, true
	default:
		return "", false
	}
}

// DecisionRecord is one forward transition, kept for undo.
type DecisionRecord struct {
	LeftID      string `json:"leftId"`
	RightID     string `json:"rightId"`
	BattleIndex int    `json:"battleIndex"`
}

// Duel is one presented pair of candidate ids awaiting a decision.
type Duel struct {
	LeftID  string
	RightID string
}

// Session is one complete or in-progress ranking run over a fixed candidate
// set. Invariants after every operation:
//
//  1. CandidateIDs never changes after creation.
//  2. RankedIDs holds no duplicates and is a subset of CandidateIDs.
//  3. The pool is CandidateIDs minus RankedIDs, derived, never stored.
//  4. IsComplete holds exactly when the pool is empty.
//  5. len(History) == BattleIndex.
type Session struct {
	ID              string
	Title           string
	ContentType     library.ContentType
	Source          library.SourceDescriptor
	CandidateIDs    []string
	RankedIDs       []string
	History         []DecisionRecord
	BattleIndex     int
	ArtworkSnapshot []byte
	IsComplete      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Pool derives the not-yet-ranked ids, preserving candidate order.
func (s *Session) Pool() []string {
	ranked := make(map[string]struct{}, len(s.RankedIDs))
	for _, id := range s.RankedIDs {
		ranked[id] = struct{}{}
	}
	pool := make([]string, 0, len(s.CandidateIDs)-len(s.RankedIDs))
	for _, id := range s.CandidateIDs {
		if _, done := ranked[id]; !done {
			pool = append(pool, id)
		}
	}
	return pool
}

// Clone deep-copies the session so async persistence never races the
// controller's mutations.
func (s *Session) Clone() *Session {
	cp := *s
	cp.CandidateIDs = append([]string(nil), s.CandidateIDs...)
	cp.RankedIDs = append([]string(nil), s.RankedIDs...)
	cp.History = append([]DecisionRecord(nil), s.History...)
	cp.ArtworkSnapshot = append([]byte(nil), s.ArtworkSnapshot...)
	return &cp
}

// Migrate repairs records written by an older schema version: sessions
// persisted before BattleIndex existed carry a zero index alongside a
// non-empty ranking. Pure in effect and idempotent; applied on every load.
func Migrate(s *Session) *Session {
	if s == nil {
		return nil
	}
	if s.BattleIndex == 0 && len(s.RankedIDs) > 0 {
		s.BattleIndex = len(s.RankedIDs)
	}
	return s
}
