package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

const entryColumns = `id, user_id, title, content, mood, tags, created_at, updated_at`

// likeEscaper escapes LIKE wildcards in user-supplied search text
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// journalEntryRepository implements domain.JournalEntryRepository
type journalEntryRepository struct {
	db *DB
}

// NewJournalEntryRepository creates a new journal entry repository
func NewJournalEntryRepository(db *DB) domain.JournalEntryRepository {
	return &journalEntryRepository{db: db}
}

// Create inserts a new entry
func (r *journalEntryRepository) Create(ctx context.Context, entry *domain.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Title,
		entry.Content,
		string(entry.Mood),
		pq.Array(entry.Tags),
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}

	return nil
}

// GetByID retrieves an entry owned by userID
func (r *journalEntryRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE id = $1 AND user_id = $2`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get journal entry by ID: %w", err)
	}

	return entry, nil
}

// List retrieves the entries matching the filter, newest first
func (r *journalEntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]*domain.JournalEntry, error) {
	where, args := entryWhere(filter)

	query := `SELECT ` + entryColumns + ` FROM journal_entries ` + where + ` ORDER BY created_at DESC, id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.JournalEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entries: %w", err)
	}

	return entries, nil
}

// Count returns the number of entries matching the filter
func (r *journalEntryRepository) Count(ctx context.Context, filter domain.EntryFilter) (int, error) {
	where, args := entryWhere(filter)

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal_entries `+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count journal entries: %w", err)
	}

	return count, nil
}

// Update overwrites the mutable fields of an entry owned by entry.UserID
func (r *journalEntryRepository) Update(ctx context.Context, entry *domain.JournalEntry) error {
	query := `
		UPDATE journal_entries
		SET title = $3, content = $4, mood = $5, tags = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Title,
		entry.Content,
		string(entry.Mood),
		pq.Array(entry.Tags),
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// Delete removes an entry owned by userID
func (r *journalEntryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// entryWhere builds the WHERE clause shared by List and Count
func entryWhere(filter domain.EntryFilter) (string, []any) {
	conditions := []string{"user_id = $1"}
	args := []any{filter.UserID}

	if filter.Query != "" {
		args = append(args, "%"+likeEscaper.Replace(filter.Query)+"%")
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", len(args), len(args)))
	}
	if filter.Mood != domain.MoodNone {
		args = append(args, string(filter.Mood))
		conditions = append(conditions, fmt.Sprintf("mood = $%d", len(args)))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

func scanEntry(row rowScanner) (*domain.JournalEntry, error) {
	var (
		entry domain.JournalEntry
		mood  string
		tags  pq.StringArray
	)
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Title,
		&entry.Content,
		&mood,
		&tags,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Mood = domain.Mood(mood)
	entry.Tags = []string(tags)
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	return &entry, nil
}
