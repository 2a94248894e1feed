package scheduler

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"immolist/server/internal/normalize"
	"immolist/server/internal/source"
)

func TestSchedulerRefreshesOnInterval(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/products" {
			hits.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"1","title":"Villa"}]`))
	}))
	defer srv.Close()

	logger := logrus.New()
	client := source.NewClient(srv.URL, time.Second, normalize.NewNormalizer("", logger), logger)
	manager := source.NewManager(client, logger)

	s := NewScheduler(manager, 50*time.Millisecond, logger)
	s.Start()

	// Immediate refresh plus at least one tick
	time.Sleep(130 * time.Millisecond)
	s.Stop()

	assert.GreaterOrEqual(t, hits.Load(), int64(2))

	snapshot := manager.Current()
	assert.Len(t, snapshot.Listings, 1)
	assert.Equal(t, "Villa", snapshot.Listings[0].Title)
}

func TestSchedulerStopTerminatesLoop(t *testing.T) {
	logger := logrus.New()
	manager := source.NewManager(nil, logger)

	s := NewScheduler(manager, 10*time.Millisecond, logger)
	s.Start()
	time.Sleep(30 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop in time")
	}
}
