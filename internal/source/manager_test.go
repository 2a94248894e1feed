package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"immolist/server/internal/models"
	"immolist/server/internal/normalize"
)

func testServer(t *testing.T, listings, categories string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/products":
			w.Write([]byte(listings))
		case "/categories":
			w.Write([]byte(categories))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestManager(baseURL string) *Manager {
	logger := logrus.New()
	normalizer := normalize.NewNormalizer("http://backend.test", logger)
	client := NewClient(baseURL, 2*time.Second, normalizer, logger)
	return NewManager(client, logger)
}

func TestRefreshAppliesSnapshot(t *testing.T) {
	srv := testServer(t,
		`[{"id":"1","title":"Villa Anfa","price":5000000},{"id":"2","name":"Riad"}]`,
		`[{"id":1,"name":"Villas"},{"id":2,"name":"Riads"}]`)
	defer srv.Close()

	manager := newTestManager(srv.URL)
	err := manager.Refresh(context.Background())
	assert.NoError(t, err)

	snapshot := manager.Current()
	assert.Len(t, snapshot.Listings, 2)
	assert.Len(t, snapshot.Categories, 2)
	assert.Equal(t, "Villa Anfa", snapshot.Listings[0].Title)
	assert.Equal(t, "Riad", snapshot.Listings[1].Title)
	assert.Equal(t, uint64(1), snapshot.Generation)
	assert.False(t, snapshot.FetchedAt.IsZero())
}

func TestRefreshFirstErrorWins(t *testing.T) {
	// Listings succeed, categories fail: nothing may be applied.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/products" {
			w.Write([]byte(`[{"id":"1"}]`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	manager := newTestManager(srv.URL)
	err := manager.Refresh(context.Background())
	assert.Error(t, err)

	snapshot := manager.Current()
	assert.Empty(t, snapshot.Listings)
	assert.Equal(t, uint64(0), snapshot.Generation)
}

func TestRefreshInvokesOnRefresh(t *testing.T) {
	srv := testServer(t, `[{"id":"1"},{"id":"2"}]`, `[]`)
	defer srv.Close()

	manager := newTestManager(srv.URL)

	var persisted []models.Listing
	manager.OnRefresh(func(listings []models.Listing) {
		persisted = listings
	})

	assert.NoError(t, manager.Refresh(context.Background()))
	assert.Len(t, persisted, 2)
}

func TestStaleGenerationDiscarded(t *testing.T) {
	manager := NewManager(nil, logrus.New())

	// Generation 2 lands before generation 1 finishes.
	manager.apply(2, []models.Listing{{ID: "new"}}, nil)
	manager.apply(1, []models.Listing{{ID: "old"}}, nil)

	snapshot := manager.Current()
	assert.Equal(t, uint64(2), snapshot.Generation)
	assert.Equal(t, "new", snapshot.Listings[0].ID)
}

func TestApplyInstallsLocalSnapshot(t *testing.T) {
	manager := NewManager(nil, logrus.New())

	manager.Apply([]models.Listing{{ID: "1"}}, []models.Category{{ID: 1, Name: "Villas"}})
	first := manager.Current()
	assert.Equal(t, uint64(1), first.Generation)

	manager.Apply([]models.Listing{{ID: "1"}, {ID: "2"}}, nil)
	second := manager.Current()
	assert.Equal(t, uint64(2), second.Generation)
	assert.Len(t, second.Listings, 2)
}

func TestRefreshWithoutClient(t *testing.T) {
	manager := NewManager(nil, logrus.New())
	assert.False(t, manager.HasClient())
	assert.NoError(t, manager.Refresh(context.Background()))
}

func TestClientRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	logger := logrus.New()
	client := NewClient(srv.URL, time.Second, normalize.NewNormalizer("", logger), logger)

	_, err := client.FetchListings(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}
