// Package env reads raw environment variables for the few knobs that live
// outside the envconfig-managed config struct.
package env

import "os"

// Get returns the named environment variable, or fallback when unset/empty.
func Get(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
