package server

import (
	"context"
	"encoding/csv"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"hours-reconciliation/internal/domain"
)

// cachedReport is one memoized pipeline run.
type cachedReport struct {
	RunID      string
	ComputedAt time.Time
	Report     *domain.Report
}

type runFunc func(ctx context.Context) (*domain.Report, error)

// reportCache memoizes the latest run for a TTL. A TTL of zero disables
// caching entirely. Concurrent callers during a recompute share the single
// in-flight run rather than racing their own.
type reportCache struct {
	mu     sync.Mutex
	run    runFunc
	ttl    time.Duration
	now    func() time.Time
	latest *cachedReport
}

func newReportCache(run runFunc, ttl time.Duration) *reportCache {
	return &reportCache{run: run, ttl: ttl, now: time.Now}
}

// Get returns the cached report, recomputing when stale. Errors are never
// cached; the next caller retries.
func (c *reportCache) Get(ctx context.Context) (*cachedReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.latest != nil && c.ttl > 0 && c.now().Sub(c.latest.ComputedAt) < c.ttl {
		return c.latest, nil
	}

	report, err := c.run(ctx)
	if err != nil {
		return nil, err
	}
	c.latest = &cachedReport{
		RunID:      uuid.New().String(),
		ComputedAt: c.now().UTC(),
		Report:     report,
	}
	return c.latest, nil
}

// Invalidate drops the cached run so the next Get recomputes.
func (c *reportCache) Invalidate() {
	c.mu.Lock()
	c.latest = nil
	c.mu.Unlock()
}

func writeTableCSV(out io.Writer, table domain.Table) error {
	w := csv.NewWriter(out)
	if err := w.Write(table.Columns); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
