package api

import (
	"sync"
	"time"

	"github.com/star-security/payroll-finisher/payroll"
)

// =============================================================================
// BATCH REGISTRY - In-memory results of processed uploads
// =============================================================================

// Batch is one processed upload, held in memory so the client can fetch
// the preview and then download the workbook. Nothing is written to disk;
// a restart clears all batches.
type Batch struct {
	ID        string
	CreatedAt time.Time
	Lines     []payroll.SummaryLine
	Stats     payroll.Stats
	Errors    []RowErrorDTO
}

// BatchRegistry is a mutex-guarded map of batch id to batch.
type BatchRegistry struct {
	mu      sync.RWMutex
	batches map[string]*Batch
}

func NewBatchRegistry() *BatchRegistry {
	return &BatchRegistry{batches: make(map[string]*Batch)}
}

func (r *BatchRegistry) Put(b *Batch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches[b.ID] = b
}

// Get returns the batch, or nil when unknown.
func (r *BatchRegistry) Get(id string) *Batch {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.batches[id]
}
