package ranking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"faceoff/internal/config"
	"faceoff/internal/library"
)

// Store manages session persistence backed by SQLite. A file lock on the data
// directory keeps the database single-writer across processes; within the
// process, flushes are serialized by the write-back worker.
type Store struct {
	db     *sql.DB
	path   string
	lock   *flock.Flock
	saver  *saver
	logger *slog.Logger
}

// Open initializes or connects to the session database and applies migrations.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "faceoff.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire data dir lock: %w", err)
	}
	if !locked {
		return nil, errors.New("another faceoff process is using the session database")
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "sessions.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock, logger: logger}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	store.saver = newSaver(store.Save, logger)

	return store, nil
}

// Close drains pending writes, releases the lock, and closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.saver != nil {
		if err := s.saver.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Create snapshots a candidate set into a new persisted session. The candidate
// order is randomized once here so duels carry no systematic bias from the
// provider's ordering; it never changes afterward.
func (s *Store) Create(ctx context.Context, title string, contentType library.ContentType, source library.SourceDescriptor, items []library.Item, artwork []byte) (*Session, error) {
	if len(items) == 0 {
		return nil, Wrap(ErrInvalidState, "create session", "candidate set is empty", nil)
	}
	if strings.TrimSpace(title) == "" {
		title = source.DisplayName
	}

	candidateIDs := make([]string, len(items))
	for i, item := range items {
		candidateIDs[i] = item.ID
	}
	rand.Shuffle(len(candidateIDs), func(i, j int) {
		candidateIDs[i], candidateIDs[j] = candidateIDs[j], candidateIDs[i]
	})

	now := time.Now().UTC()
	session := &Session{
		ID:              uuid.NewString(),
		Title:           title,
		ContentType:     contentType,
		Source:          source,
		CandidateIDs:    candidateIDs,
		RankedIDs:       []string{},
		History:         []DecisionRecord{},
		ArtworkSnapshot: artwork,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetByID fetches a session by identifier. Missing sessions return (nil, nil).
func (s *Store) GetByID(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM ranking_sessions WHERE id = ?`, id)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

// Load fetches a session, mapping a miss to ErrNotFound.
func (s *Store) Load(ctx context.Context, id string) (*Session, error) {
	session, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, Wrap(ErrNotFound, "load session", id, nil)
	}
	return session, nil
}

// Save upserts a session record. Idempotent; callers on the duel path should
// prefer SaveAsync so decisions never wait on the disk.
func (s *Store) Save(ctx context.Context, session *Session) error {
	if session == nil {
		return errors.New("session is nil")
	}
	candidates, err := json.Marshal(session.CandidateIDs)
	if err != nil {
		return fmt.Errorf("marshal candidate ids: %w", err)
	}
	ranked, err := json.Marshal(session.RankedIDs)
	if err != nil {
		return fmt.Errorf("marshal ranked ids: %w", err)
	}
	history, err := json.Marshal(session.History)
	if err != nil {
		return fmt.Errorf("marshal decision history: %w", err)
	}

	session.UpdatedAt = time.Now().UTC()
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO ranking_sessions (
            id, title, content_type, source_kind, source_id, source_name,
            candidate_ids, ranked_ids, decision_history, battle_index,
            is_complete, artwork_snapshot, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            title = excluded.title,
            ranked_ids = excluded.ranked_ids,
            decision_history = excluded.decision_history,
            battle_index = excluded.battle_index,
            is_complete = excluded.is_complete,
            artwork_snapshot = excluded.artwork_snapshot,
            updated_at = excluded.updated_at`,
		session.ID,
		session.Title,
		string(session.ContentType),
		string(session.Source.Kind),
		nullableString(session.Source.ID),
		nullableString(session.Source.DisplayName),
		string(candidates),
		string(ranked),
		string(history),
		session.BattleIndex,
		boolToInt(session.IsComplete),
		nullableBytes(session.ArtworkSnapshot),
		session.CreatedAt.Format(time.RFC3339Nano),
		session.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// SaveAsync records the session snapshot for serialized background flushing.
// The in-memory record stays authoritative; a previously failed flush is
// surfaced here, wrapped as ErrPersistence, and retried by this very write.
func (s *Store) SaveAsync(session *Session) error {
	return s.saver.Enqueue(session)
}

// Flush blocks until all queued writes have landed.
func (s *Store) Flush() error {
	return s.saver.Flush()
}

// Delete removes a session by identifier.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM ranking_sessions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// List returns all sessions ordered by creation time, oldest first.
func (s *Store) List(ctx context.Context) ([]*Session, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sessionColumns+` FROM ranking_sessions ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// Stats returns session counts grouped by completion.
func (s *Store) Stats(ctx context.Context) (complete, inProgress int, err error) {
	rows, err := s.db.QueryContext(ctx, `SELECT is_complete, COUNT(1) FROM ranking_sessions GROUP BY is_complete`)
	if err != nil {
		return 0, 0, fmt.Errorf("session stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var done int
		var count int
		if err := rows.Scan(&done, &count); err != nil {
			return 0, 0, err
		}
		if done != 0 {
			complete = count
		} else {
			inProgress = count
		}
	}
	return complete, inProgress, rows.Err()
}

const sessionColumns = "id, title, content_type, source_kind, source_id, source_name, candidate_ids, ranked_ids, decision_history, battle_index, is_complete, artwork_snapshot, created_at, updated_at"

func scanSession(scanner interface{ Scan(dest ...any) error }) (*Session, error) {
	var (
		id          string
		title       string
		contentType string
		sourceKind  string
		sourceID    sql.NullString
		sourceName  sql.NullString
		candidates  string
		ranked      string
		history     string
		battleIndex int
		isComplete  int
		artwork     []byte
		createdRaw  string
		updatedRaw  string
	)

	if err := scanner.Scan(
		&id,
		&title,
		&contentType,
		&sourceKind,
		&sourceID,
		&sourceName,
		&candidates,
		&ranked,
		&history,
		&battleIndex,
		&isComplete,
		&artwork,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	session := &Session{
		ID:          id,
		Title:       title,
		ContentType: library.ContentType(contentType),
		Source: library.SourceDescriptor{
			Kind:        library.SourceKind(sourceKind),
			ID:          sourceID.String,
			DisplayName: sourceName.String,
		},
		BattleIndex:     battleIndex,
		IsComplete:      isComplete != 0,
		ArtworkSnapshot: artwork,
	}
	if err := json.Unmarshal([]byte(candidates), &session.CandidateIDs); err != nil {
		return nil, fmt.Errorf("decode candidate ids: %w", err)
	}
	if err := json.Unmarshal([]byte(ranked), &session.RankedIDs); err != nil {
		return nil, fmt.Errorf("decode ranked ids: %w", err)
	}
	if err := json.Unmarshal([]byte(history), &session.History); err != nil {
		return nil, fmt.Errorf("decode decision history: %w", err)
	}

	if created, err := parseTimeString(createdRaw); err == nil {
		session.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		session.UpdatedAt = updated
	}

	return Migrate(session), nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableBytes(value []byte) any {
	if len(value) == 0 {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
