package app

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// TestModeEnv marks a process started by go test. The binaries exit early and
// OpenStore falls back to the in-memory driver while it is set.
const TestModeEnv = "QAFORGE_TEST_MODE"

var (
	testMode     atomic.Bool
	testModeOnce sync.Once
)

func loadTestMode() {
	on, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(TestModeEnv)))
	testMode.Store(err == nil && on)
}

// InTestMode reports whether runtime side effects are disabled.
func InTestMode() bool {
	testModeOnce.Do(loadTestMode)
	return testMode.Load()
}

// RefreshTestMode re-reads TestModeEnv after the environment changed.
func RefreshTestMode() {
	testModeOnce.Do(func() {})
	loadTestMode()
}

// storeDriver is the backend OpenStore actually dials for cfg.
func storeDriver(cfg *Config) string {
	if InTestMode() {
		return DriverMemory
	}
	return cfg.StoreDriver
}
