// Package guard is imported for its side effect by tests that build the
// application wiring. It turns on QAFORGE_TEST_MODE and points STORE_DRIVER
// at the in-memory store unless the test environment already chose one.
package guard

import "os"

var defaults = map[string]string{
	"QAFORGE_TEST_MODE": "1",
	"STORE_DRIVER":      "memory",
}

func init() {
	for key, value := range defaults {
		if _, set := os.LookupEnv(key); !set {
			_ = os.Setenv(key, value)
		}
	}
}
