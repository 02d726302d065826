package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MinEntryContentLength is the minimum number of characters of an entry body
	MinEntryContentLength = 10
	// MaxTagLength is the maximum number of characters of a single tag
	MaxTagLength = 15
)

// ErrEntryNotFound is returned when a journal entry does not exist for the requesting user
var ErrEntryNotFound = errors.New("journal entry not found")

// Mood is the trader's state of mind attached to a journal entry
type Mood string

const (
	MoodNone    Mood = ""
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
	MoodAngry   Mood = "angry"
	MoodAnxious Mood = "anxious"
)

// Valid reports whether m is one of the known moods or empty
func (m Mood) Valid() bool {
	switch m {
	case MoodNone, MoodHappy, MoodNeutral, MoodSad, MoodAngry, MoodAnxious:
		return true
	}
	return false
}

// JournalEntry is a free-form note written by a trader, independent of any single trade
type JournalEntry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string // Optional
	Content   string
	Mood      Mood     // Optional
	Tags      []string // Never nil
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntryInput holds the client-supplied fields of a journal entry
type EntryInput struct {
	Title   string
	Content string
	Mood    string
	Tags    []string
}

// EntryUpdate is a partial change to an entry; nil fields are left untouched
type EntryUpdate struct {
	Title   *string
	Content *string
	Mood    *string
	Tags    *[]string
}

// NewJournalEntry validates input and builds an entry owned by userID
func NewJournalEntry(userID uuid.UUID, input EntryInput, now time.Time) (*JournalEntry, error) {
	entry := &JournalEntry{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := entry.assign(input); err != nil {
		return nil, err
	}
	return entry, nil
}

// Apply merges update into a copy of the entry and validates the result.
// ID, UserID and CreatedAt never change; UpdatedAt becomes now.
func (e *JournalEntry) Apply(update EntryUpdate, now time.Time) (*JournalEntry, error) {
	input := EntryInput{
		Title:   e.Title,
		Content: e.Content,
		Mood:    string(e.Mood),
		Tags:    e.Tags,
	}
	if update.Title != nil {
		input.Title = *update.Title
	}
	if update.Content != nil {
		input.Content = *update.Content
	}
	if update.Mood != nil {
		input.Mood = *update.Mood
	}
	if update.Tags != nil {
		input.Tags = *update.Tags
	}

	updated := &JournalEntry{
		ID:        e.ID,
		UserID:    e.UserID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: now,
	}
	if err := updated.assign(input); err != nil {
		return nil, err
	}
	return updated, nil
}

// HasTag reports whether tag is attached to the entry
func (e *JournalEntry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// assign validates input and copies the normalized values onto e
// Logic:
//   - Title is trimmed and optional
//   - Content must hold at least MinEntryContentLength characters
//   - Mood must be empty or a known mood
//   - Tags are trimmed, must be non-empty and at most MaxTagLength characters; duplicates collapse
func (e *JournalEntry) assign(input EntryInput) error {
	verr := &ValidationError{Subject: "journal entry"}

	if utf8.RuneCountInString(input.Content) < MinEntryContentLength {
		verr.Add("content", "entry must be at least 10 characters long")
	}

	mood := Mood(strings.ToLower(strings.TrimSpace(input.Mood)))
	if !mood.Valid() {
		verr.Add("mood", "mood must be one of happy, neutral, sad, angry, anxious")
	}

	tags := make([]string, 0, len(input.Tags))
	seen := make(map[string]struct{}, len(input.Tags))
	for _, raw := range input.Tags {
		tag := strings.TrimSpace(raw)
		switch {
		case tag == "":
			verr.Add("tags", "tags must not be empty")
			continue
		case utf8.RuneCountInString(tag) > MaxTagLength:
			verr.Add("tags", "tag must be 15 characters or less")
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	if verr.HasErrors() {
		return verr
	}

	e.Title = strings.TrimSpace(input.Title)
	e.Content = input.Content
	e.Mood = mood
	e.Tags = tags
	return nil
}
