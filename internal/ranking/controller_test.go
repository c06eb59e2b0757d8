package ranking

import (
	"context"
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"
	"time"

	"faceoff/internal/library"
)

type memPersister struct {
	saves   int
	last    *Session
	saveErr error
	deleted []string
}

func (m *memPersister) SaveAsync(s *Session) error {
	m.saves++
	m.last = s.Clone()
	return m.saveErr
}

func (m *memPersister) Flush() error { return nil }

func (m *memPersister) Delete(_ context.Context, id string) (bool, error) {
	m.deleted = append(m.deleted, id)
	return true, nil
}

func newTestSession(candidates ...string) *Session {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return &Session{
		ID:           "session-1",
		Title:        "Test Session",
		ContentType:  library.ContentSong,
		Source:       library.SourceDescriptor{Kind: library.SourceAlbum, ID: "album:test", DisplayName: "Test Album"},
		CandidateIDs: candidates,
		RankedIDs:    []string{},
		History:      []DecisionRecord{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// forcePair makes the next selection pick a specific pair by id.
func forcePair(t *testing.T, c *Controller, left, right string) Duel {
	t.Helper()
	c.current = nil
	c.pick = func(int) (int, int) {
		li, ri := -1, -1
		for i, id := range c.pool {
			switch id {
			case left:
				li = i
			case right:
				ri = i
			}
		}
		if li < 0 || ri < 0 {
			t.Fatalf("pair (%s, %s) not in pool %v", left, right, c.pool)
		}
		return li, ri
	}
	duel, err := c.NextDuel()
	if err != nil {
		t.Fatalf("NextDuel failed: %v", err)
	}
	if duel.LeftID != left || duel.RightID != right {
		t.Fatalf("expected duel (%s, %s), got (%s, %s)", left, right, duel.LeftID, duel.RightID)
	}
	return duel
}

func checkInvariants(t *testing.T, s *Session) {
	t.Helper()
	seen := map[string]struct{}{}
	candidates := map[string]struct{}{}
	for _, id := range s.CandidateIDs {
		candidates[id] = struct{}{}
	}
	for _, id := range s.RankedIDs {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ranked id %s", id)
		}
		seen[id] = struct{}{}
		if _, ok := candidates[id]; !ok {
			t.Fatalf("ranked id %s not in candidate set", id)
		}
	}
	if got, want := len(s.History), s.BattleIndex; got != want {
		t.Fatalf("history length %d != battle index %d", got, want)
	}
	if complete := len(s.Pool()) == 0; complete != s.IsComplete {
		t.Fatalf("IsComplete=%v but pool size is %d", s.IsComplete, len(s.Pool()))
	}
}

func TestWinTieAutoAppendScenario(t *testing.T) {
	session := newTestSession("A", "B", "C", "D")
	persister := &memPersister{}
	c := NewController(session, persister, nil)

	forcePair(t, c, "A", "B")
	if err := c.Decide(OutcomeLeftWins); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if !reflect.DeepEqual(session.RankedIDs, []string{"A"}) {
		t.Fatalf("unexpected ranked ids: %v", session.RankedIDs)
	}
	if !reflect.DeepEqual(c.session.Pool(), []string{"B", "C", "D"}) {
		t.Fatalf("unexpected pool: %v", c.session.Pool())
	}
	if session.BattleIndex != 1 {
		t.Fatalf("expected battle index 1, got %d", session.BattleIndex)
	}
	checkInvariants(t, session)

	forcePair(t, c, "C", "D")
	if err := c.Decide(OutcomeTie); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if !reflect.DeepEqual(session.RankedIDs, []string{"A", "C", "D", "B"}) {
		t.Fatalf("unexpected ranked ids after tie + auto-append: %v", session.RankedIDs)
	}
	if !session.IsComplete {
		t.Fatal("expected session to complete once pool hit one item")
	}
	if session.BattleIndex != 2 {
		t.Fatalf("expected battle index 2, got %d", session.BattleIndex)
	}
	checkInvariants(t, session)

	if _, err := c.NextDuel(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState after completion, got %v", err)
	}
}

func TestUndoAfterTieRestoresExactState(t *testing.T) {
	session := newTestSession("A", "B", "C", "D")
	c := NewController(session, &memPersister{}, nil)

	forcePair(t, c, "A", "B")
	if err := c.Decide(OutcomeLeftWins); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	forcePair(t, c, "C", "D")
	if err := c.Decide(OutcomeTie); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	duel, err := c.Undo()
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if duel.LeftID != "C" || duel.RightID != "D" {
		t.Fatalf("expected restored duel (C, D), got (%s, %s)", duel.LeftID, duel.RightID)
	}
	if !reflect.DeepEqual(session.RankedIDs, []string{"A"}) {
		t.Fatalf("unexpected ranked ids after undo: %v", session.RankedIDs)
	}
	if !reflect.DeepEqual(session.Pool(), []string{"B", "C", "D"}) {
		t.Fatalf("unexpected pool after undo: %v", session.Pool())
	}
	if session.BattleIndex != 1 || session.IsComplete {
		t.Fatalf("unexpected session counters after undo: battle=%d complete=%v", session.BattleIndex, session.IsComplete)
	}
	checkInvariants(t, session)

	// The same comparison is served again without a fresh selection.
	again, err := c.NextDuel()
	if err != nil {
		t.Fatalf("NextDuel failed: %v", err)
	}
	if again != duel {
		t.Fatalf("expected re-served duel %v, got %v", duel, again)
	}
}

func TestDecideThenUndoRoundTripsEveryOutcome(t *testing.T) {
	outcomes := []Outcome{OutcomeLeftWins, OutcomeRightWins, OutcomeTie, OutcomeSkip}
	for _, outcome := range outcomes {
		t.Run(string(outcome), func(t *testing.T) {
			session := newTestSession("A", "B", "C", "D", "E")
			c := NewController(session, &memPersister{}, nil)

			forcePair(t, c, "B", "D")

			ranked := append([]string(nil), session.RankedIDs...)
			pool := append([]string(nil), session.Pool()...)
			battles := session.BattleIndex

			if err := c.Decide(outcome); err != nil {
				t.Fatalf("Decide failed: %v", err)
			}
			if _, err := c.Undo(); err != nil {
				t.Fatalf("Undo failed: %v", err)
			}

			if !reflect.DeepEqual(session.RankedIDs, ranked) {
				t.Fatalf("ranked ids not restored: %v != %v", session.RankedIDs, ranked)
			}
			if !reflect.DeepEqual(session.Pool(), pool) {
				t.Fatalf("pool not restored: %v != %v", session.Pool(), pool)
			}
			if session.BattleIndex != battles {
				t.Fatalf("battle index not restored: %d != %d", session.BattleIndex, battles)
			}
			checkInvariants(t, session)
		})
	}
}

func TestCompletionAfterExactlyNMinusOneWins(t *testing.T) {
	const n = 6
	ids := []string{"i0", "i1", "i2", "i3", "i4", "i5"}
	session := newTestSession(ids...)
	c := NewController(session, &memPersister{}, nil)

	decisions := 0
	for !session.IsComplete {
		if _, err := c.NextDuel(); err != nil {
			t.Fatalf("NextDuel failed: %v", err)
		}
		if err := c.Decide(OutcomeLeftWins); err != nil {
			t.Fatalf("Decide failed: %v", err)
		}
		decisions++
		checkInvariants(t, session)
	}
	if decisions != n-1 {
		t.Fatalf("expected %d decisions, took %d", n-1, decisions)
	}
	if len(session.RankedIDs) != n {
		t.Fatalf("expected full ranking, got %d of %d", len(session.RankedIDs), n)
	}
}

func TestSkipConsumesDuelWithoutRanking(t *testing.T) {
	session := newTestSession("A", "B", "C")
	c := NewController(session, &memPersister{}, nil)

	forcePair(t, c, "A", "C")
	if err := c.Decide(OutcomeSkip); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	if len(session.RankedIDs) != 0 {
		t.Fatalf("skip must not rank anything, got %v", session.RankedIDs)
	}
	if len(session.Pool()) != 3 {
		t.Fatalf("skip must not shrink the pool, got %v", session.Pool())
	}
	if session.BattleIndex != 1 || len(session.History) != 1 {
		t.Fatalf("skip must consume a duel slot: battle=%d history=%d", session.BattleIndex, len(session.History))
	}
	checkInvariants(t, session)
}

func TestTieRanksBothInDisplayOrder(t *testing.T) {
	session := newTestSession("A", "B", "C", "D", "E")
	c := NewController(session, &memPersister{}, nil)

	forcePair(t, c, "D", "B")
	if err := c.Decide(OutcomeTie); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if !reflect.DeepEqual(session.RankedIDs, []string{"D", "B"}) {
		t.Fatalf("tie must rank left then right adjacently, got %v", session.RankedIDs)
	}
}

func TestStaleDuelPairIsRejected(t *testing.T) {
	session := newTestSession("A", "B", "C", "D")
	c := NewController(session, &memPersister{}, nil)

	forcePair(t, c, "A", "B")
	// Simulate a stale UI holding a pair whose participant already left the pool.
	c.removeFromPool("A")

	err := c.Decide(OutcomeLeftWins)
	if !errors.Is(err, ErrStaleReference) {
		t.Fatalf("expected ErrStaleReference, got %v", err)
	}
	if len(session.RankedIDs) != 0 || session.BattleIndex != 0 {
		t.Fatalf("stale decision must not mutate the session: %v battle=%d", session.RankedIDs, session.BattleIndex)
	}
}

func TestUndoWithEmptyHistoryIsInvalid(t *testing.T) {
	session := newTestSession("A", "B")
	c := NewController(session, &memPersister{}, nil)

	if _, err := c.Undo(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestUndoAfterWinCompletingPairOfTwo(t *testing.T) {
	session := newTestSession("A", "B")
	c := NewController(session, &memPersister{}, nil)

	forcePair(t, c, "A", "B")
	if err := c.Decide(OutcomeRightWins); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if !reflect.DeepEqual(session.RankedIDs, []string{"B", "A"}) || !session.IsComplete {
		t.Fatalf("unexpected completion state: %v complete=%v", session.RankedIDs, session.IsComplete)
	}

	duel, err := c.Undo()
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if duel.LeftID != "A" || duel.RightID != "B" {
		t.Fatalf("unexpected restored duel: %+v", duel)
	}
	if len(session.RankedIDs) != 0 || session.IsComplete || session.BattleIndex != 0 {
		t.Fatalf("undo must fully unwind the completing win: %v", session)
	}
	checkInvariants(t, session)
}

func TestNextDuelIsStableUntilDecided(t *testing.T) {
	session := newTestSession("A", "B", "C", "D", "E", "F")
	c := NewController(session, &memPersister{}, nil)

	first, err := c.NextDuel()
	if err != nil {
		t.Fatalf("NextDuel failed: %v", err)
	}
	second, err := c.NextDuel()
	if err != nil {
		t.Fatalf("NextDuel failed: %v", err)
	}
	if first != second {
		t.Fatalf("pair changed without a decision: %v != %v", first, second)
	}
	if first.LeftID == first.RightID {
		t.Fatalf("duel must hold two distinct items: %+v", first)
	}
}

func TestSingleCandidateCompletesImmediately(t *testing.T) {
	session := newTestSession("only")
	persister := &memPersister{}
	NewController(session, persister, nil)

	if !session.IsComplete {
		t.Fatal("expected immediate completion for a single candidate")
	}
	if !reflect.DeepEqual(session.RankedIDs, []string{"only"}) {
		t.Fatalf("unexpected ranking: %v", session.RankedIDs)
	}
	if persister.saves == 0 {
		t.Fatal("expected the completion to be persisted")
	}
}

func TestPersistenceFailureIsNonFatal(t *testing.T) {
	session := newTestSession("A", "B", "C")
	persister := &memPersister{saveErr: Wrap(ErrPersistence, "save session", "session-1", errors.New("disk full"))}
	c := NewController(session, persister, nil)

	forcePair(t, c, "A", "B")
	err := c.Decide(OutcomeLeftWins)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	// In-memory state stays authoritative despite the failed write.
	if !reflect.DeepEqual(session.RankedIDs, []string{"A"}) || session.BattleIndex != 1 {
		t.Fatalf("decision must still apply in memory: %v battle=%d", session.RankedIDs, session.BattleIndex)
	}
}

func TestAbandonDiscardDeletesSession(t *testing.T) {
	session := newTestSession("A", "B", "C")
	persister := &memPersister{}
	c := NewController(session, persister, nil)

	if err := c.Abandon(context.Background(), false); err != nil {
		t.Fatalf("Abandon failed: %v", err)
	}
	if len(persister.deleted) != 1 || persister.deleted[0] != session.ID {
		t.Fatalf("expected session delete, got %v", persister.deleted)
	}
}

func TestInvariantsHoldThroughRandomPlay(t *testing.T) {
	ids := make([]string, 12)
	for i := range ids {
		ids[i] = string(rune('a' + i))
	}
	session := newTestSession(ids...)
	c := NewController(session, &memPersister{}, nil)

	rng := rand.New(rand.NewPCG(7, 11))
	outcomes := []Outcome{OutcomeLeftWins, OutcomeRightWins, OutcomeTie, OutcomeSkip}
	steps := 0
	for !session.IsComplete && steps < 500 {
		if _, err := c.NextDuel(); err != nil {
			t.Fatalf("NextDuel failed: %v", err)
		}
		outcome := outcomes[rng.IntN(len(outcomes))]
		if err := c.Decide(outcome); err != nil {
			t.Fatalf("Decide(%s) failed: %v", outcome, err)
		}
		checkInvariants(t, session)

		// Sprinkle undos through the run and confirm they keep invariants too.
		if steps%5 == 4 {
			if _, err := c.Undo(); err != nil {
				t.Fatalf("Undo failed: %v", err)
			}
			checkInvariants(t, session)
		}
		steps++
	}
	if !session.IsComplete {
		t.Fatal("random play never completed; skip should not stall completion forever")
	}
}
