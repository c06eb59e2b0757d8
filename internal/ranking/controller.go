package ranking

import (
	"context"
	"log/slog"
	"math/rand/v2"
)

// State is the controller's logical position in the duel loop.
type State string

const (
	// StateAwaitingDuel means a pair can be (or has been) selected.
	StateAwaitingDuel State = "awaiting_duel"
	// StateFinished means the pool holds fewer than two items.
	StateFinished State = "finished"
)

// Persister is the slice of the store the controller needs: serialized
// asynchronous saves plus the terminal operations.
type Persister interface {
	SaveAsync(*Session) error
	Flush() error
	Delete(ctx context.Context, id string) (bool, error)
}

// Controller drives one ranking session through repeated duels. It borrows
// the session record for the duration of an active screen, mutates it
// synchronously on every decision, and writes back after each transition so a
// killed process loses at most the in-flight duel.
//
// Exactly one controller may hold a session at a time; decisions arrive one
// at a time from the presentation layer, so no locking happens here.
type Controller struct {
	session *Session
	store   Persister
	logger  *slog.Logger
	pool    []string
	current *Duel
	pick    func(n int) (int, int)
}

// NewController wires a controller around a loaded session. A session whose
// pool already holds fewer than two items is finished on the spot, covering
// candidate sets of size one and records completed elsewhere.
func NewController(session *Session, store Persister, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Controller{
		session: session,
		store:   store,
		logger:  logger,
		pool:    session.Pool(),
		pick:    randomPair,
	}
	if !session.IsComplete && len(c.pool) < 2 {
		c.finishIfExhausted()
		c.persist()
	}
	return c
}

// Session returns the borrowed session record.
func (c *Controller) Session() *Session {
	return c.session
}

// State reports whether the session still has duels to run.
func (c *Controller) State() State {
	if c.session.IsComplete {
		return StateFinished
	}
	return StateAwaitingDuel
}

// PoolSize returns the number of ids not yet ranked.
func (c *Controller) PoolSize() int {
	return len(c.pool)
}

// NextDuel selects (or re-serves) the pair to display. Selection is uniformly
// random over the pool, intentionally unweighted by prior outcomes, and does
// not mutate the record. The same pair is returned until a decision or undo
// replaces it.
func (c *Controller) NextDuel() (Duel, error) {
	if c.session.IsComplete {
		return Duel{}, Wrap(ErrInvalidState, "next duel", "session is complete", nil)
	}
	if c.current != nil {
		return *c.current, nil
	}
	if len(c.pool) < 2 {
		return Duel{}, Wrap(ErrInvalidState, "next duel", "pool has fewer than two items", nil)
	}
	i, j := c.pick(len(c.pool))
	c.current = &Duel{LeftID: c.pool[i], RightID: c.pool[j]}
	return *c.current, nil
}

// Decide applies one user decision to the current duel. All mutations are
// synchronous and all-or-nothing; the durable write is handed off afterward.
// A persistence failure is returned wrapped as ErrPersistence with the
// in-memory state already advanced, so callers warn rather than abort.
func (c *Controller) Decide(outcome Outcome) error {
	if c.session.IsComplete {
		return Wrap(ErrInvalidState, "decide", "session is complete", nil)
	}
	if c.current == nil {
		return Wrap(ErrInvalidState, "decide", "no duel selected", nil)
	}

	left, right := c.current.LeftID, c.current.RightID
	if !c.inPool(left) || !c.inPool(right) {
		// Stale UI reference; reject rather than corrupt the ranking.
		c.logger.Warn("dropping decision for stale duel pair",
			slog.String("session", c.session.ID),
			slog.String("left", left), slog.String("right", right))
		c.current = nil
		return Wrap(ErrStaleReference, "decide", "duel pair left the pool", nil)
	}

	switch outcome {
	case OutcomeLeftWins:
		c.appendRanked(left)
	case OutcomeRightWins:
		c.appendRanked(right)
	case OutcomeTie:
		// Both participants rank, in the order they were displayed.
		c.appendRanked(left)
		c.appendRanked(right)
	case OutcomeSkip:
		// No ranking change; the duel slot is still consumed below.
	default:
		return Wrap(ErrInvalidState, "decide", "unknown outcome "+string(outcome), nil)
	}

	c.session.History = append(c.session.History, DecisionRecord{
		LeftID:      left,
		RightID:     right,
		BattleIndex: c.session.BattleIndex,
	})
	c.session.BattleIndex++
	c.current = nil

	c.finishIfExhausted()
	return c.persist()
}

// Undo reverses the most recent forward transition and re-serves the undone
// duel so the user re-sees the same comparison.
func (c *Controller) Undo() (Duel, error) {
	n := len(c.session.History)
	if n == 0 {
		return Duel{}, Wrap(ErrInvalidState, "undo", "no decisions to undo", nil)
	}

	entry := c.session.History[n-1]
	ranked := c.session.RankedIDs

	// A completion auto-append is not its own history entry; unwind it first.
	// Pool ids and ranked ids are disjoint, so a trailing ranked id outside
	// the popped pair can only be the auto-appended survivor.
	if c.session.IsComplete && len(ranked) > 0 {
		last := ranked[len(ranked)-1]
		if last != entry.LeftID && last != entry.RightID {
			ranked = ranked[:len(ranked)-1]
		}
	}

	switch {
	case len(ranked) >= 2 && pairMatches(entry, ranked[len(ranked)-2], ranked[len(ranked)-1]):
		ranked = ranked[:len(ranked)-2]
	case len(ranked) >= 1 && (ranked[len(ranked)-1] == entry.LeftID || ranked[len(ranked)-1] == entry.RightID):
		ranked = ranked[:len(ranked)-1]
	default:
		// The undone decision was a skip; the ranking is untouched.
	}

	c.session.RankedIDs = ranked
	c.session.History = c.session.History[:n-1]
	c.session.BattleIndex--
	c.session.IsComplete = false
	c.pool = c.session.Pool()

	duel := Duel{LeftID: entry.LeftID, RightID: entry.RightID}
	c.current = &duel

	if err := c.persist(); err != nil {
		return duel, err
	}
	return duel, nil
}

// Abandon ends the active screen. With keepProgress the session stays
// resumable and pending writes are drained; otherwise the record is deleted.
// Both paths are terminal and synchronous.
func (c *Controller) Abandon(ctx context.Context, keepProgress bool) error {
	if keepProgress {
		if err := c.store.Flush(); err != nil {
			return err
		}
		return nil
	}
	if _, err := c.store.Delete(ctx, c.session.ID); err != nil {
		return Wrap(ErrPersistence, "abandon", "delete session "+c.session.ID, err)
	}
	return nil
}

// Progress reports the cosmetic duel-count estimate. The engine terminates
// purely by pool exhaustion; this only feeds a progress bar.
func (c *Controller) Progress() Progress {
	return EstimateProgress(len(c.session.CandidateIDs), c.session.BattleIndex)
}

func (c *Controller) appendRanked(id string) {
	c.session.RankedIDs = append(c.session.RankedIDs, id)
	c.removeFromPool(id)
}

func (c *Controller) finishIfExhausted() {
	if len(c.pool) == 1 {
		// Last survivor ranks automatically; no further duel needed.
		c.session.RankedIDs = append(c.session.RankedIDs, c.pool[0])
		c.pool = c.pool[:0]
	}
	if len(c.pool) == 0 {
		c.session.IsComplete = true
		c.current = nil
	}
}

func (c *Controller) persist() error {
	if err := c.store.SaveAsync(c.session); err != nil {
		return err
	}
	return nil
}

func (c *Controller) inPool(id string) bool {
	for _, candidate := range c.pool {
		if candidate == id {
			return true
		}
	}
	return false
}

func (c *Controller) removeFromPool(id string) {
	for i, candidate := range c.pool {
		if candidate == id {
			c.pool = append(c.pool[:i], c.pool[i+1:]...)
			return
		}
	}
}

func pairMatches(entry DecisionRecord, a, b string) bool {
	return (a == entry.LeftID && b == entry.RightID) || (a == entry.RightID && b == entry.LeftID)
}

func randomPair(n int) (int, int) {
	i := rand.IntN(n)
	j := rand.IntN(n - 1)
	if j >= i {
		j++
	}
	return i, j
}
