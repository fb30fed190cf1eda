package config

import (
	"time"
)

// GetTimeout returns the per-attempt fetch timeout as time.Duration
func (s *SourceSettings) GetTimeout() time.Duration {
	if s.Timeout <= 0 {
		return 30 * time.Second // default 30 seconds
	}
	return time.Duration(s.Timeout) * time.Second
}

// GetRetries returns the number of retries after the first fetch attempt
func (s *SourceSettings) GetRetries() int {
	if s.Retries < 0 {
		return 0
	}
	return s.Retries
}

// GetPastGrace returns how far into the past programme starts are kept
func (s *SourceSettings) GetPastGrace() time.Duration {
	if s.PastGraceHours <= 0 {
		return 24 * time.Hour // default 1 day of grace
	}
	return time.Duration(s.PastGraceHours) * time.Hour
}

// GetFutureHorizon returns how far into the future programme starts are kept
func (s *SourceSettings) GetFutureHorizon() time.Duration {
	if s.FutureHorizonHours <= 0 {
		return 192 * time.Hour // default 8 days ahead
	}
	return time.Duration(s.FutureHorizonHours) * time.Hour
}
