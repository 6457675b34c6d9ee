package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/myatmin/twodlive/internal/dependencies/mocks"
	"github.com/myatmin/twodlive/internal/services/auth"
	"github.com/myatmin/twodlive/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	authCfg := auth.Config{
		Secret:   []byte("test-secret"),
		TokenTTL: 24 * time.Hour,
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app, err := newWithDependencies(store, mockClock, authCfg, "", logger)
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
