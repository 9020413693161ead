package services

import (
	"errors"
	"sync"
	"testing"

	"gorm.io/gorm"

	"spendtrack/internal/notify"
	"spendtrack/internal/testutil"
)

// testHarness bundles the in-memory database shared by a service under test.
type testHarness struct {
	db *gorm.DB
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	return &testHarness{db: db}
}

// recordingSink captures published breach alerts for assertions.
type recordingSink struct {
	mu     sync.Mutex
	alerts []notify.BreachAlert
}

func (s *recordingSink) Publish(alert notify.BreachAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, alert)
	return nil
}

func (s *recordingSink) Alerts() []notify.BreachAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.BreachAlert(nil), s.alerts...)
}

// failingSink always fails to publish.
type failingSink struct{}

func (failingSink) Publish(notify.BreachAlert) error {
	return errors.New("sink unavailable")
}
