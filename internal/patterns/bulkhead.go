package patterns

import (
	"fmt"
	"time"

	"github.com/harshadelights/commerce-core/internal/metrics"
)

// Bulkhead caps concurrent calls to one collaborator so a slow dependency
// cannot exhaust the whole service.
type Bulkhead struct {
	semaphore chan struct{}
	name      string
	service   string
	wait      time.Duration
}

// NewBulkhead creates a bulkhead admitting at most size concurrent calls.
// Callers blocked longer than a second are rejected.
func NewBulkhead(size int, name, service string) *Bulkhead {
	return &Bulkhead{
		semaphore: make(chan struct{}, size),
		name:      name,
		service:   service,
		wait:      time.Second,
	}
}

// Execute runs fn within the bulkhead's capacity.
func (b *Bulkhead) Execute(fn func() error) error {
	select {
	case b.semaphore <- struct{}{}:
		metrics.BulkheadActiveRequests.WithLabelValues(b.service, b.name).Inc()

		defer func() {
			<-b.semaphore
			metrics.BulkheadActiveRequests.WithLabelValues(b.service, b.name).Dec()
		}()

		return fn()

	case <-time.After(b.wait):
		metrics.BulkheadRejectedRequests.WithLabelValues(b.service, b.name).Inc()
		return fmt.Errorf("bulkhead %s: timeout acquiring resource", b.name)
	}
}

// Name returns the bulkhead name
func (b *Bulkhead) Name() string {
	return b.name
}
