package factory

import (
	"time"

	"github.com/oxturret/turretweb/internal/dependencies/mocks"
	"github.com/oxturret/turretweb/internal/services/auth"
	"github.com/oxturret/turretweb/internal/storage/memory"
	"github.com/oxturret/turretweb/internal/testutil"
)

// TestCredentials are the basic-auth credentials a TestApp accepts.
var TestCredentials = auth.Config{
	Username: "turret",
	Password: "test-password",
}

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() (*TestApp, error) {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app, err := newWithDependencies(store, mockClock, mockRandom, TestCredentials, testutil.NopLogger())
	if err != nil {
		return nil, err
	}

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}, nil
}
