// Package history defines the recent-search history domain types and the
// bounded store that keeps them.
package history

import (
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/hay-kot/chefhat/internal/core/language"
)

// MaxEntries is the number of searches kept in history.
const MaxEntries = 5

// legacyLanguage is assumed for records written before entries carried a
// language. The single-language client only produced Turkish.
const legacyLanguage = language.Turkish

// Entry records one successful search. Entries are never mutated after
// creation.
type Entry struct {
	Ingredients string
	Response    string
	// Timestamp is the creation time in milliseconds since the Unix epoch.
	// It identifies the entry within the history.
	Timestamp int64
	Language  language.Code
}

// Time returns the entry's creation time.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Valid reports whether the entry satisfies the stored-entry invariants.
func (e Entry) Valid() bool {
	return strings.TrimSpace(e.Ingredients) != "" &&
		strings.TrimSpace(e.Response) != "" &&
		e.Language.Valid()
}

// entryJSON is the on-disk record. The response is written as "recipes"
// and read from either "recipes" or "response".
type entryJSON struct {
	Ingredients string        `json:"ingredients"`
	Recipes     string        `json:"recipes"`
	Response    string        `json:"response,omitempty"`
	Timestamp   int64         `json:"timestamp"`
	Language    language.Code `json:"language,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		Ingredients: e.Ingredients,
		Recipes:     e.Response,
		Timestamp:   e.Timestamp,
		Language:    e.Language,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Ingredients = raw.Ingredients
	e.Response = raw.Recipes
	if e.Response == "" {
		e.Response = raw.Response
	}
	e.Timestamp = raw.Timestamp
	e.Language = raw.Language
	if e.Language == "" {
		e.Language = legacyLanguage
	}
	return nil
}

// Encode serializes entries in their stored order.
func Encode(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(entries)
}

// Decode parses data produced by Encode (or by the original client).
// Empty input decodes to no entries.
func Decode(data []byte) ([]Entry, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Normalize drops invalid entries and duplicate timestamps, orders the rest
// newest first, and truncates to MaxEntries.
func Normalize(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	seen := make(map[int64]bool, len(entries))
	for _, e := range entries {
		if !e.Valid() || seen[e.Timestamp] {
			continue
		}
		seen[e.Timestamp] = true
		out = append(out, e)
	}

	slices.SortStableFunc(out, func(a, b Entry) int {
		switch {
		case a.Timestamp > b.Timestamp:
			return -1
		case a.Timestamp < b.Timestamp:
			return 1
		default:
			return 0
		}
	})

	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}
	return out
}
