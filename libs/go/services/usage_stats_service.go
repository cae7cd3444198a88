package services

import (
	"context"
	"sync"

	"github.com/churnlens/churn-api/libs/go/types/business"
)

// MemoryUsageStatsStore keeps usage counters in process memory. Counters are
// lost on restart and are per instance.
type MemoryUsageStatsStore struct {
	mu       sync.Mutex
	counters map[string]*business.UsageSnapshot
}

// NewMemoryUsageStatsStore creates an empty in-memory store
func NewMemoryUsageStatsStore() *MemoryUsageStatsStore {
	return &MemoryUsageStatsStore{
		counters: make(map[string]*business.UsageSnapshot),
	}
}

// Record implements interfaces.UsageStatsStore.
func (s *MemoryUsageStatsStore) Record(_ context.Context, event business.UsageEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.counters[event.Username]
	if !ok {
		snap = &business.UsageSnapshot{Username: event.Username}
		s.counters[event.Username] = snap
	}
	applyUsageEvent(snap, event)
	return nil
}

// Snapshot implements interfaces.UsageStatsStore.
func (s *MemoryUsageStatsStore) Snapshot(_ context.Context, username string) (business.UsageSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap, ok := s.counters[username]; ok {
		return *snap, nil
	}
	return business.UsageSnapshot{Username: username}, nil
}

func applyUsageEvent(snap *business.UsageSnapshot, event business.UsageEvent) {
	snap.Total++
	switch event.Outcome {
	case business.UsageOutcomeSuccess:
		snap.Success++
	case business.UsageOutcomeClientError:
		snap.ClientErrors++
	case business.UsageOutcomeServerError:
		snap.ServerErrors++
	}
	if event.Prediction != nil && *event.Prediction == 1 {
		snap.Positive++
	}
}
