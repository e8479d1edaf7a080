package history

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/chefhat/internal/core/language"
)

// ErrNotFound is returned when a history entry is not found.
var ErrNotFound = errors.New("history entry not found")

// ErrCorrupted is returned by Persister implementations when the stored
// history cannot be parsed.
var ErrCorrupted = errors.New("history data corrupted")

// Persister reads and writes the whole history sequence.
type Persister interface {
	// Read returns the stored entries. A missing slot returns no entries and
	// no error.
	Read(ctx context.Context) ([]Entry, error)
	// Write replaces the stored entries. After Write returns nil the stored
	// state equals entries.
	Write(ctx context.Context, entries []Entry) error
}

// Store keeps the most recent searches, newest first, mirrored in a
// Persister.
type Store struct {
	port    Persister
	logger  zerolog.Logger
	now     func() time.Time
	mu      sync.Mutex
	entries []Entry
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger used for recoverable load failures.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore creates a Store backed by port. Call Load to read existing state.
func NewStore(port Persister, opts ...Option) *Store {
	s := &Store{
		port:   port,
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory state with the persisted one and returns it.
// Missing or unreadable state is treated as an empty history.
func (s *Store) Load(ctx context.Context) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.port.Read(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("ignoring unreadable history")
		entries = nil
	}

	s.entries = Normalize(entries)
	return s.snapshot()
}

// Entries returns the current history, newest first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// Get returns the entry with the given timestamp.
func (s *Store) Get(timestamp int64) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.Timestamp == timestamp {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

// Insert stamps a new entry, prepends it, drops anything past MaxEntries,
// and persists the result.
func (s *Store) Insert(ctx context.Context, ingredients, response string, lang language.Code) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := Entry{
		Ingredients: ingredients,
		Response:    response,
		Timestamp:   s.nextTimestamp(),
		Language:    lang,
	}
	if !entry.Valid() {
		return s.snapshot(), errors.New("insert history: invalid entry")
	}

	next := make([]Entry, 0, len(s.entries)+1)
	next = append(next, entry)
	next = append(next, s.entries...)
	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}

	if err := s.commit(ctx, next); err != nil {
		return s.snapshot(), fmt.Errorf("insert history: %w", err)
	}
	return s.snapshot(), nil
}

// Remove deletes the entry with the given timestamp and persists the
// remainder. Removing an absent timestamp persists the unchanged history.
func (s *Store) Remove(ctx context.Context, timestamp int64) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.entries), func(e Entry) bool {
		return e.Timestamp == timestamp
	})

	if err := s.commit(ctx, next); err != nil {
		return s.snapshot(), fmt.Errorf("remove history: %w", err)
	}
	return s.snapshot(), nil
}

// Clear removes all entries.
func (s *Store) Clear(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, []Entry{}); err != nil {
		return s.snapshot(), fmt.Errorf("clear history: %w", err)
	}
	return s.snapshot(), nil
}

// commit persists next and only then adopts it as the in-memory state.
func (s *Store) commit(ctx context.Context, next []Entry) error {
	if err := s.port.Write(ctx, next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

// nextTimestamp returns the current time in milliseconds, bumped past the
// newest entry so timestamps stay unique and increasing.
func (s *Store) nextTimestamp() int64 {
	ts := s.now().UnixMilli()
	if len(s.entries) > 0 && ts <= s.entries[0].Timestamp {
		ts = s.entries[0].Timestamp + 1
	}
	return ts
}

func (s *Store) snapshot() []Entry {
	return slices.Clone(s.entries)
}
