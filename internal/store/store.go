// Package store owns the in-memory profile collection and ID allocation.
package store

import (
	"context"
	"log/slog"

	"github.com/jacksmith/profiles/internal/logging"
	"github.com/jacksmith/profiles/internal/model"
	"github.com/jacksmith/profiles/internal/watch"
)

// firstID is the first ID the store issues. It must stay above model.NoID.
const firstID = 1

// Snapshot is the full list of live profiles at one point in time, in
// insertion order. A published Snapshot is never modified; every change
// produces a new one.
type Snapshot []model.Profile

// Find returns the profile with the given ID.
func (s Snapshot) Find(id int) (model.Profile, bool) {
	for _, p := range s {
		if p.ID == id {
			return p, true
		}
	}
	return model.Profile{}, false
}

// Option configures a ProfileStore.
type Option func(*ProfileStore)

// WithLogger sets the logger used for mutation debug logs.
func WithLogger(log *slog.Logger) Option {
	return func(s *ProfileStore) {
		s.log = log
	}
}

// ProfileStore is the single source of truth for profiles.
//
// Every mutation runs as one atomic step against the latest snapshot and
// publishes the resulting snapshot, even when nothing matched. No operation
// fails; validation belongs to callers.
type ProfileStore struct {
	log      *slog.Logger
	nextID   int // guarded by profiles' lock: only touched inside Update
	profiles *watch.Value[Snapshot]
}

// New returns an empty store whose first issued ID is 1.
func New(opts ...Option) *ProfileStore {
	s := &ProfileStore{
		log:      logging.Discard(),
		nextID:   firstID,
		profiles: watch.NewValue(Snapshot{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// All returns the live stream of snapshots. The channel holds the current
// snapshot immediately and the latest one after every change. It is closed
// only when ctx is done.
func (s *ProfileStore) All(ctx context.Context) <-chan Snapshot {
	return s.profiles.Subscribe(ctx)
}

// Snapshot returns the current snapshot.
func (s *ProfileStore) Snapshot() Snapshot {
	return s.profiles.Load()
}

// Get returns the profile with the given ID from the current snapshot.
func (s *ProfileStore) Get(id int) (model.Profile, bool) {
	return s.profiles.Load().Find(id)
}

// Insert stores p under a freshly allocated ID, appending it to the list.
// Any ID already set on p is ignored. The stored profile is returned.
func (s *ProfileStore) Insert(p model.Profile) model.Profile {
	var stored model.Profile
	s.profiles.Update(func(cur Snapshot) Snapshot {
		p.ID = s.nextID
		s.nextID++
		stored = p

		next := make(Snapshot, len(cur), len(cur)+1)
		copy(next, cur)
		return append(next, p)
	})

	s.log.Debug("profile inserted", slog.Int("id", stored.ID), slog.String("name", stored.Name))
	return stored
}

// Update replaces the profile whose ID matches p.ID, keeping its position.
// It reports whether a profile matched; if none did the current snapshot is
// republished unchanged.
func (s *ProfileStore) Update(p model.Profile) bool {
	_, found := s.Modify(p.ID, func(model.Profile) model.Profile {
		return p
	})
	return found
}

// Modify applies fn to the latest version of the profile with the given ID
// and stores the result in its place. The ID cannot be changed by fn.
// It returns the stored profile and whether one matched; if none did the
// current snapshot is republished unchanged.
func (s *ProfileStore) Modify(id int, fn func(model.Profile) model.Profile) (model.Profile, bool) {
	var (
		stored model.Profile
		found  bool
	)
	s.profiles.Update(func(cur Snapshot) Snapshot {
		for i := range cur {
			if cur[i].ID != id {
				continue
			}
			stored = fn(cur[i])
			stored.ID = id
			found = true

			next := make(Snapshot, len(cur))
			copy(next, cur)
			next[i] = stored
			return next
		}
		return cur
	})

	if found {
		s.log.Debug("profile updated", slog.Int("id", id))
	} else {
		s.log.Debug("update matched no profile", slog.Int("id", id))
	}
	return stored, found
}

// Delete removes the profile whose ID matches p.ID and reports whether one
// was removed. If none matched the current snapshot is republished unchanged.
func (s *ProfileStore) Delete(p model.Profile) bool {
	found := false
	s.profiles.Update(func(cur Snapshot) Snapshot {
		next := make(Snapshot, 0, len(cur))
		for _, existing := range cur {
			if existing.ID == p.ID {
				found = true
				continue
			}
			next = append(next, existing)
		}
		if !found {
			return cur
		}
		return next
	})

	if found {
		s.log.Debug("profile deleted", slog.Int("id", p.ID))
	} else {
		s.log.Debug("delete matched no profile", slog.Int("id", p.ID))
	}
	return found
}
