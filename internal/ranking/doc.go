// Package ranking is the duel engine: a resumable, undoable, human-in-the-loop
// comparison loop plus its SQLite persistence.
//
// A Session snapshots a fixed candidate set at creation and accumulates a
// ranked id sequence through repeated two-way duels. The Controller borrows a
// session for the duration of an active screen, applies one decision at a
// time (win, tie, skip), and hands a snapshot to the store's write-back
// worker after every transition, so killing the process loses at most the
// unsubmitted duel. Undo pops the decision history and re-serves the exact
// undone pair.
//
// The ranking is deliberately not a sound comparison sort: pairs are drawn
// uniformly at random and a duel's loser stays in the pool, so the result
// reflects the order the user's choices removed items, and human
// non-transitivity is accepted.
//
// Treat this package as the single source of truth for session semantics;
// schema changes get a new file under migrations/.
package ranking
