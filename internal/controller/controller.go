// Package controller is the UI-facing facade over the profile store.
//
// It forwards commands to the store, classifies saves as create or update,
// and exposes the "currently displayed profile" as its own observable slot.
package controller

import (
	"context"
	"log/slog"

	"github.com/jacksmith/profiles/internal/model"
	"github.com/jacksmith/profiles/internal/store"
	"github.com/jacksmith/profiles/internal/watch"
	"golang.org/x/sync/errgroup"
)

// Lookup is the result of the latest Load: the requested ID and, when Found,
// the profile stored under it. The zero Lookup means nothing was loaded yet.
type Lookup struct {
	ID      int
	Profile model.Profile
	Found   bool
}

// Controller translates UI intents into store operations.
type Controller struct {
	log     *slog.Logger
	store   *store.ProfileStore
	current *watch.Value[Lookup]
	loads   errgroup.Group
}

// New returns a Controller over s.
func New(log *slog.Logger, s *store.ProfileStore) *Controller {
	return &Controller{
		log:     log,
		store:   s,
		current: watch.NewValue(Lookup{}),
	}
}

// Profiles returns the live stream of profile snapshots.
func (c *Controller) Profiles(ctx context.Context) <-chan store.Snapshot {
	return c.store.All(ctx)
}

// Current returns the live stream of the current-profile slot.
func (c *Controller) Current(ctx context.Context) <-chan Lookup {
	return c.current.Subscribe(ctx)
}

// CurrentProfile returns the value of the current-profile slot.
func (c *Controller) CurrentProfile() Lookup {
	return c.current.Load()
}

// Load looks up the profile with the given ID in the background and
// publishes the result into the current-profile slot. Overlapping loads race;
// whichever resolves last wins. A load whose ctx is done by the time it runs
// publishes nothing.
func (c *Controller) Load(ctx context.Context, id int) {
	const op = "controller.Load"

	log := c.log.With(
		slog.String("op", op),
		slog.Int("profile_id", id),
	)

	c.loads.Go(func() error {
		if ctx.Err() != nil {
			log.Debug("load cancelled before lookup")
			return nil
		}

		p, found := c.store.Get(id)
		if !found {
			log.Info("profile not found")
		}

		c.current.Store(Lookup{ID: id, Profile: p, Found: found})
		return nil
	})
}

// Wait blocks until every Load issued so far has published its result.
func (c *Controller) Wait() error {
	return c.loads.Wait()
}

// Save creates p when it has no ID yet and updates the stored profile with
// the same ID otherwise. It returns the stored profile and whether the save
// took effect; an update of an unknown ID changes nothing.
//
// Save does not validate p.
func (c *Controller) Save(p model.Profile) (model.Profile, bool) {
	const op = "controller.Save"

	log := c.log.With(slog.String("op", op))

	if !p.Stored() {
		stored := c.store.Insert(p)
		log.Info("profile created", slog.Int("profile_id", stored.ID))
		return stored, true
	}

	if !c.store.Update(p) {
		log.Info("profile not found", slog.Int("profile_id", p.ID))
		return p, false
	}

	log.Info("profile updated", slog.Int("profile_id", p.ID))
	return p, true
}

// Delete removes p from the store and reports whether it was present.
func (c *Controller) Delete(p model.Profile) bool {
	const op = "controller.Delete"

	log := c.log.With(
		slog.String("op", op),
		slog.Int("profile_id", p.ID),
	)

	if !c.store.Delete(p) {
		log.Info("profile not found")
		return false
	}

	log.Info("profile deleted")
	return true
}

// ToggleFavorite flips the favorite flag of the stored profile with p's ID.
// The flip is applied to the latest stored version, not to p, so two toggles
// issued back to back always cancel out.
func (c *Controller) ToggleFavorite(p model.Profile) (model.Profile, bool) {
	const op = "controller.ToggleFavorite"

	log := c.log.With(
		slog.String("op", op),
		slog.Int("profile_id", p.ID),
	)

	updated, found := c.store.Modify(p.ID, func(cur model.Profile) model.Profile {
		return cur.WithFavorite(!cur.IsFavorite)
	})
	if !found {
		log.Info("profile not found")
		return p, false
	}

	log.Info("favorite toggled", slog.Bool("favorite", updated.IsFavorite))
	return updated, true
}
