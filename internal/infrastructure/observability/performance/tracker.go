// Package performance provides performance tracking and monitoring
// capabilities for BookHaven portal operations.
package performance

import (
	"fmt"
	"sync"
	"time"
)

// Tracker manages performance markers and provides metrics aggregation
type Tracker struct {
	markers map[string]*Marker // Active and completed markers by unique ID
	mu      sync.RWMutex       // Protects concurrent access
	started time.Time          // When tracking started
	config  *TrackerConfig     // Tracker configuration
}

// TrackerConfig contains configuration options for the performance tracker
type TrackerConfig struct {
	MaxMarkers int `json:"maxMarkers"` // Maximum number of markers to retain
}

// DefaultTrackerConfig returns a sensible default configuration
func DefaultTrackerConfig() *TrackerConfig {
	return &TrackerConfig{
		MaxMarkers: 10000,
	}
}

// NewTracker creates a new performance tracker with the given configuration
func NewTracker(config *TrackerConfig) *Tracker {
	if config == nil {
		config = DefaultTrackerConfig()
	}

	return &Tracker{
		markers: make(map[string]*Marker),
		started: time.Now(),
		config:  config,
	}
}

// StartOperation creates and tracks a new performance marker for an operation
func (t *Tracker) StartOperation(operation string) *Marker {
	marker := &Marker{
		Operation: operation,
		StartTime: time.Now(),
		Metadata:  make(map[string]any),
		Success:   true, // Assume success until proven otherwise
	}

	markerID := fmt.Sprintf("%s_%d", operation, time.Now().UnixNano())

	t.mu.Lock()
	if len(t.markers) >= t.config.MaxMarkers {
		t.evictOldestLocked()
	}
	t.markers[markerID] = marker
	t.mu.Unlock()

	return marker
}

// evictOldestLocked removes the oldest marker; caller holds t.mu.
func (t *Tracker) evictOldestLocked() {
	var oldestID string
	var oldestStart time.Time
	for id, m := range t.markers {
		if oldestID == "" || m.StartTime.Before(oldestStart) {
			oldestID = id
			oldestStart = m.StartTime
		}
	}
	if oldestID != "" {
		delete(t.markers, oldestID)
	}
}

// Stats summarizes completed operations since tracking started
type Stats struct {
	Uptime          time.Duration `json:"uptime"`
	TotalOperations int           `json:"totalOperations"`
	FailedCount     int           `json:"failedCount"`
	AverageDuration time.Duration `json:"averageDuration"`
}

// GetStats returns aggregate statistics over completed markers
func (t *Tracker) GetStats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := Stats{Uptime: time.Since(t.started)}

	var totalDuration time.Duration
	for _, m := range t.markers {
		if !m.Completed {
			continue
		}
		stats.TotalOperations++
		totalDuration += m.Duration
		if !m.Success {
			stats.FailedCount++
		}
	}

	if stats.TotalOperations > 0 {
		stats.AverageDuration = totalDuration / time.Duration(stats.TotalOperations)
	}

	return stats
}
