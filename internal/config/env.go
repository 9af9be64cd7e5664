// Package config loads the runtime configuration from files and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// envStrings maps environment variables onto string settings.
func (c *Config) envStrings() map[string]*string {
	return map[string]*string{
		"SSH_HOST":         &c.SSH.Host,
		"SSH_PORT":         &c.SSH.Port,
		"SSH_HOST_KEY":     &c.SSH.HostKeyPath,
		"WEB_HOST":         &c.Web.Host,
		"WEB_PORT":         &c.Web.Port,
		"SSH_DISPLAY_HOST": &c.Web.DisplayHost,
		"LOG_LEVEL":        &c.Logging.Level,
		"LOG_FORMAT":       &c.Logging.Format,
	}
}

// ApplyEnv overrides listener, logging and seed settings from the environment.
// HURRICANE_SEED is the seed of each session's first game; game n of a session
// uses seed+n-1. Every session sees the same sequence, which is meant for
// reproducing runs, not for production servers.
func (c *Config) ApplyEnv() error {
	for key, dst := range c.envStrings() {
		*dst = GetEnv(key, *dst)
	}

	if v, ok := os.LookupEnv("HURRICANE_SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("HURRICANE_SEED: %w", err)
		}
		c.Game.Seed = seed
	}
	if v, ok := os.LookupEnv("HURRICANE_MAX_SESSIONS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("HURRICANE_MAX_SESSIONS: invalid value %q", v)
		}
		c.SSH.MaxSessions = n
	}
	return nil
}
