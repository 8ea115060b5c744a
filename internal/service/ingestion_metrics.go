package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionMetrics tracks statistics about one crawl
type IngestionMetrics struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	PlayersCrawled   int
	MatchesFetched   int
	MatchesStored    int
	Duplicates       int
	Ignored          int
	ValidationErrors int
	Errors           int
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{
		StartTime: time.Now(),
	}
}

func (m *IngestionMetrics) add(f func(*IngestionMetrics)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f(m)
}

// Finish records the crawl duration
func (m *IngestionMetrics) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Duration = time.Since(m.StartTime)
}

// String returns a one line summary
func (m *IngestionMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf(
		"players=%d fetched=%d stored=%d duplicates=%d ignored=%d invalid=%d errors=%d duration=%v",
		m.PlayersCrawled, m.MatchesFetched, m.MatchesStored, m.Duplicates,
		m.Ignored, m.ValidationErrors, m.Errors, m.Duration,
	)
}
