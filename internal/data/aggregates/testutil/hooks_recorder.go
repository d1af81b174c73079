package testutil

import (
	"sync"
	"time"

	"github.com/investfolio/investfolio-backend/internal/data/aggregates"
)

// OperationEvent is one ObserveOperation call as the recorder saw it.
type OperationEvent struct {
	Name     string
	Status   string
	Duration time.Duration
}

// HooksRecorder collects every hook signal an aggregate emits during a test,
// in call order, so assertions can check both outcome and instrumentation.
type HooksRecorder struct {
	mu sync.Mutex

	Operations []OperationEvent
	Conflicts  []string
	Retries    []string
}

var _ aggregates.Hooks = (*HooksRecorder)(nil)

func (h *HooksRecorder) ObserveOperation(name, status string, dur time.Duration) {
	h.append(func() {
		h.Operations = append(h.Operations, OperationEvent{Name: name, Status: status, Duration: dur})
	})
}

func (h *HooksRecorder) IncConflict(name string) {
	h.append(func() { h.Conflicts = append(h.Conflicts, name) })
}

func (h *HooksRecorder) IncRetry(name string) {
	h.append(func() { h.Retries = append(h.Retries, name) })
}

func (h *HooksRecorder) append(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn()
}
