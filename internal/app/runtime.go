package app

import (
	"os"
	"strconv"
	"sync"
	"sync/atomic"
)

const testModeEnv = "ORGACCESS_TEST_MODE"

var (
	testModeFlag atomic.Bool
	testModeOnce sync.Once
)

// InTestMode reports whether binaries should return before dialing Postgres or Redis.
func InTestMode() bool {
	testModeOnce.Do(RefreshTestMode)
	return testModeFlag.Load()
}

// RefreshTestMode re-reads ORGACCESS_TEST_MODE. Any strconv.ParseBool true value enables it.
func RefreshTestMode() {
	on, _ := strconv.ParseBool(os.Getenv(testModeEnv))
	testModeFlag.Store(on)
}
