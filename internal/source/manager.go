package source

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"immolist/server/internal/models"
)

// Snapshot is one immutable view of the catalog. Readers get the whole value;
// a newer snapshot replaces it atomically or not at all.
type Snapshot struct {
	Listings   []models.Listing
	Categories []models.Category
	Generation uint64
	FetchedAt  time.Time
}

// Manager owns the current catalog snapshot. Every load is tagged with a
// monotonic generation; a load that finishes after a newer one has been
// applied is discarded instead of clobbering fresher data.
type Manager struct {
	mu         sync.RWMutex
	snapshot   Snapshot
	generation atomic.Uint64
	client     *Client
	logger     *logrus.Logger
	onRefresh  func([]models.Listing)
}

// OnRefresh registers a hook invoked with the listings of every remote
// refresh that was actually applied. Used to persist fetched listings.
func (m *Manager) OnRefresh(fn func([]models.Listing)) {
	m.onRefresh = fn
}

func NewManager(client *Client, logger *logrus.Logger) *Manager {
	return &Manager{
		client: client,
		logger: logger,
	}
}

// HasClient reports whether the manager refreshes from a remote source.
func (m *Manager) HasClient() bool {
	return m.client != nil
}

// Current returns the latest applied snapshot.
func (m *Manager) Current() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// Refresh fetches listings and categories concurrently and applies them as
// one snapshot. Both fetches must succeed; the first error wins and no
// partial data is applied. There is no retry here; callers re-trigger.
func (m *Manager) Refresh(ctx context.Context) error {
	if m.client == nil {
		return nil
	}

	gen := m.generation.Add(1)

	var (
		listings   []models.Listing
		categories []models.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		listings, err = m.client.FetchListings(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = m.client.FetchCategories(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		m.logger.WithError(err).Error("Catalog refresh failed")
		return err
	}

	if m.apply(gen, listings, categories) && m.onRefresh != nil {
		m.onRefresh(listings)
	}
	return nil
}

// Apply installs a locally built snapshot (e.g. after an admin write) under a
// fresh generation.
func (m *Manager) Apply(listings []models.Listing, categories []models.Category) {
	m.apply(m.generation.Add(1), listings, categories)
}

func (m *Manager) apply(gen uint64, listings []models.Listing, categories []models.Category) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen <= m.snapshot.Generation {
		m.logger.WithFields(logrus.Fields{
			"generation": gen,
			"current":    m.snapshot.Generation,
		}).Warn("Discarding stale catalog snapshot")
		return false
	}

	m.snapshot = Snapshot{
		Listings:   listings,
		Categories: categories,
		Generation: gen,
		FetchedAt:  time.Now(),
	}

	m.logger.WithFields(logrus.Fields{
		"generation": gen,
		"listings":   len(listings),
		"categories": len(categories),
	}).Info("Applied catalog snapshot")
	return true
}
