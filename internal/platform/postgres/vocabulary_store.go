// Package postgres implements the application's persistence interfaces on
// PostgreSQL, accessed through database/sql over the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mixread/srs-api/internal/domain"
	"github.com/mixread/srs-api/internal/service/vocabulary"
)

// DBTX abstracts over *sql.DB and *sql.Tx so stores can run inside or
// outside a transaction without caring which.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// VocabularyStore implements the vocabulary.EntryStore interface using a
// PostgreSQL database as the storage backend.
type VocabularyStore struct {
	db     DBTX
	logger *slog.Logger
}

// Verify interface compliance at compile time
var _ vocabulary.EntryStore = (*VocabularyStore)(nil)

// NewVocabularyStore creates a PostgreSQL implementation of the EntryStore
// interface. The connection (or transaction) is initialized and managed by
// the caller. If logger is nil, the default logger is used.
func NewVocabularyStore(db DBTX, logger *slog.Logger) *VocabularyStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &VocabularyStore{
		db:     db,
		logger: logger.With(slog.String("component", "vocabulary_store")),
	}
}

// WithTx returns a store bound to the given transaction.
func (s *VocabularyStore) WithTx(tx *sql.Tx) *VocabularyStore {
	return &VocabularyStore{db: tx, logger: s.logger}
}

const entryColumns = `id, user_id, word, status, review_interval, ease_factor,
	total_reviews, correct_reviews, review_streak, next_review, added_at`

// Create implements vocabulary.EntryStore.Create.
func (s *VocabularyStore) Create(ctx context.Context, entry *vocabulary.Entry) error {
	query := `
		INSERT INTO vocabulary_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := s.db.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Word,
		string(entry.Status),
		entry.ReviewInterval,
		entry.EaseFactor,
		entry.TotalReviews,
		entry.CorrectReviews,
		entry.ReviewStreak,
		entry.NextReview,
		entry.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert vocabulary entry: %w", err)
	}

	return nil
}

// GetByID implements vocabulary.EntryStore.GetByID.
// Returns vocabulary.ErrEntryNotFound if the entry does not exist.
func (s *VocabularyStore) GetByID(ctx context.Context, id uuid.UUID) (*vocabulary.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM vocabulary_entries
		WHERE id = $1`

	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vocabulary.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get vocabulary entry: %w", err)
	}

	return entry, nil
}

// ListByStatus implements vocabulary.EntryStore.ListByStatus.
//
// Ordering policy: due entries come back most overdue first so the learner
// clears the oldest debt first; every other status comes back oldest-added
// first. The due query keys off next_review rather than the stored status
// column, since "due" is a property of the clock, not of the stored row.
func (s *VocabularyStore) ListByStatus(
	ctx context.Context,
	userID uuid.UUID,
	status domain.LearningStatus,
	limit int,
) ([]*vocabulary.Entry, error) {
	var (
		query string
		args  []any
	)
	if status == domain.StatusDue {
		query = `
			SELECT ` + entryColumns + `
			FROM vocabulary_entries
			WHERE user_id = $1
			  AND next_review IS NOT NULL
			  AND next_review < now()
			ORDER BY next_review ASC
			LIMIT $2`
		args = []any{userID, limit}
	} else {
		query = `
			SELECT ` + entryColumns + `
			FROM vocabulary_entries
			WHERE user_id = $1
			  AND status = $2
			  AND (next_review IS NULL OR next_review >= now())
			ORDER BY added_at ASC
			LIMIT $3`
		args = []any{userID, string(status), limit}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vocabulary entries: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	var entries []*vocabulary.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vocabulary entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vocabulary entries: %w", err)
	}

	return entries, nil
}

// ApplyReviewResult implements vocabulary.EntryStore.ApplyReviewResult.
// The whole post-review state lands in one UPDATE; the last write for an
// entry wins, which is the documented concurrency policy at this boundary.
func (s *VocabularyStore) ApplyReviewResult(
	ctx context.Context,
	update vocabulary.ReviewUpdate,
) error {
	query := `
		UPDATE vocabulary_entries
		SET status = $2,
		    review_interval = $3,
		    ease_factor = $4,
		    total_reviews = $5,
		    correct_reviews = $6,
		    review_streak = $7,
		    next_review = $8
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		update.ID,
		string(update.Status),
		update.ReviewInterval,
		update.EaseFactor,
		update.TotalReviews,
		update.CorrectReviews,
		update.ReviewStreak,
		update.NextReview,
	)
	if err != nil {
		return fmt.Errorf("failed to apply review result: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return vocabulary.ErrEntryNotFound
	}

	return nil
}

// scanner matches *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*vocabulary.Entry, error) {
	var entry vocabulary.Entry
	var status string

	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Word,
		&status,
		&entry.ReviewInterval,
		&entry.EaseFactor,
		&entry.TotalReviews,
		&entry.CorrectReviews,
		&entry.ReviewStreak,
		&entry.NextReview,
		&entry.AddedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Status = domain.LearningStatus(status)
	return &entry, nil
}
