// Package history persists recommendation runs (survey snapshot + ranked
// results) in a local key-value blob store, keyed by an anonymous per-client
// identifier. The store keeps the 10 most recent entries, most recent first.
//
// Failure semantics follow the storefront contract: read failures and corrupt
// JSON are recovered locally (treated as an empty history) and logged; they
// never propagate to the caller.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-vitamins-backend/internal/domain"
)

// Storage keys. One named key holds the serialized history list, another the
// anonymous user id.
const (
	userIDKey  = "vitamin_user_id"
	historyKey = "recommendations_history"
)

// DefaultLimit is the maximum number of retained entries.
const DefaultLimit = 10

// KV is the narrow key-value contract the store needs. The second Get result
// reports presence, distinguishing "absent" from an empty value.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store persists recommendation history in a KV backend.
type Store struct {
	// KV is the backing key-value storage.
	KV KV

	// Limit caps retained entries. Values <= 0 default to DefaultLimit.
	Limit int

	// Now is a clock seam for tests; time.Now when nil.
	Now func() time.Time
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Store) limit() int {
	if s.Limit > 0 {
		return s.Limit
	}
	return DefaultLimit
}

// UserID returns the stable anonymous identifier for this client, generating
// and persisting one (timestamp + random suffix) on first use.
func (s *Store) UserID(ctx context.Context) (string, error) {
	if v, ok, err := s.KV.Get(ctx, userIDKey); err == nil && ok && v != "" {
		return v, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("history: user id read failed, generating a fresh one")
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	id := fmt.Sprintf("user_%d_%s", s.now().UnixMilli(), suffix)
	if err := s.KV.Set(ctx, userIDKey, id); err != nil {
		return "", err
	}
	return id, nil
}

// Save constructs a new entry from one scoring run, prepends it to the
// stored list, and truncates the list to the retention limit. The persisted
// entry (with its assigned id) is returned.
func (s *Store) Save(ctx context.Context, answers domain.SurveyAnswers, recs []domain.Recommendation) (domain.HistoryEntry, error) {
	userID, err := s.UserID(ctx)
	if err != nil {
		return domain.HistoryEntry{}, err
	}

	entries := s.load(ctx)
	now := s.now()

	id := now.UnixMilli()
	// Timestamp-derived ids must stay unique within the store even when two
	// runs land in the same millisecond.
	if len(entries) > 0 && entries[0].ID >= id {
		id = entries[0].ID + 1
	}

	entry := domain.HistoryEntry{
		ID:              id,
		UserID:          userID,
		SurveyAnswers:   answers,
		Recommendations: recs,
		CreatedAt:       now.UTC().Format(time.RFC3339),
		IsActive:        true,
	}

	entries = append([]domain.HistoryEntry{entry}, entries...)
	if max := s.limit(); len(entries) > max {
		entries = entries[:max]
	}

	if err := s.store(ctx, entries); err != nil {
		return domain.HistoryEntry{}, err
	}
	return entry, nil
}

// List returns all stored entries, most recent first. Absent or corrupt
// storage yields an empty slice; failures never reach the caller.
func (s *Store) List(ctx context.Context) []domain.HistoryEntry {
	return s.load(ctx)
}

// Latest returns the most recent entry, if any.
func (s *Store) Latest(ctx context.Context) (domain.HistoryEntry, bool) {
	entries := s.load(ctx)
	if len(entries) == 0 {
		return domain.HistoryEntry{}, false
	}
	return entries[0], true
}

// Delete removes the entry with the given id. Deleting an absent id is a
// no-op; remaining ids are unaffected.
func (s *Store) Delete(ctx context.Context, id int64) error {
	entries := s.load(ctx)
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}
	return s.store(ctx, kept)
}

// Clear drops the whole history.
func (s *Store) Clear(ctx context.Context) error {
	return s.KV.Delete(ctx, historyKey)
}

func (s *Store) load(ctx context.Context) []domain.HistoryEntry {
	raw, ok, err := s.KV.Get(ctx, historyKey)
	if err != nil {
		log.Warn().Err(err).Msg("history: read failed, treating as empty")
		return []domain.HistoryEntry{}
	}
	if !ok || raw == "" {
		return []domain.HistoryEntry{}
	}
	var entries []domain.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Warn().Err(err).Msg("history: corrupt payload, treating as empty")
		return []domain.HistoryEntry{}
	}
	return entries
}

func (s *Store) store(ctx context.Context, entries []domain.HistoryEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.KV.Set(ctx, historyKey, string(raw))
}
