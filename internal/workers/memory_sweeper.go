package workers

import (
	"context"
	"time"

	"atlas/internal/domain/memory"
	"atlas/internal/metrics"
)

// MemorySweeperWorker removes expired memories on a fixed interval
// so stale conversation context stops influencing recall.
type MemorySweeperWorker struct {
	*BaseWorker
	memories *memory.Service
}

// NewMemorySweeperWorker creates a memory sweeper
func NewMemorySweeperWorker(memories *memory.Service, interval time.Duration, enabled bool) *MemorySweeperWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &MemorySweeperWorker{
		BaseWorker: NewBaseWorker("memory_sweeper", interval, enabled),
		memories:   memories,
	}
}

// Run deletes every memory whose expiry has passed
func (w *MemorySweeperWorker) Run(ctx context.Context) error {
	removed, err := w.memories.Sweep(ctx)
	metrics.RecordMemoryOperation("sweep", err)
	if err != nil {
		return err
	}

	if removed > 0 {
		w.Log().Infow("Swept expired memories", "removed", removed)
	}
	return nil
}
