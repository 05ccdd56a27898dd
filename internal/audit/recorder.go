package audit

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/election-service/internal/auth"
	"github.com/spec-kit/election-service/internal/domain"
)

// healthPrefix excludes liveness/readiness probes from the audit stream so
// probe traffic does not swamp the sink.
const healthPrefix = "/health"

// Sink persists completed audit entries. Implementations own the entry once
// Record is called; the recorder never retries.
type Sink interface {
	Record(ctx context.Context, entry *domain.AuditEntry) error
}

// Recorder captures one audit entry per completed request and hands it to
// the sink without the request goroutine waiting on sink I/O. Entries flow
// through a bounded queue; when the queue is full the entry is dropped and
// counted rather than delaying a response that has already been sent.
type Recorder struct {
	sink    Sink
	logger  *zap.Logger
	queue   chan *domain.AuditEntry
	dropped atomic.Int64
	closed  atomic.Bool

	closeOnce sync.Once
	done      chan struct{}
}

// NewRecorder starts the background dispatch worker. queueSize bounds the
// number of in-flight entries; non-positive values fall back to 1024.
func NewRecorder(sink Sink, logger *zap.Logger, queueSize int) *Recorder {
	if queueSize <= 0 {
		queueSize = 1024
	}
	r := &Recorder{
		sink:   sink,
		logger: logger,
		queue:  make(chan *domain.AuditEntry, queueSize),
		done:   make(chan struct{}),
	}
	go r.dispatch()
	return r
}

// Handle is the post-response middleware. The entry is built after c.Next()
// returns, when the response is committed, so sink latency can never affect
// what the client observes.
func (r *Recorder) Handle(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	endpoint := NormalizeEndpoint(c.Path())
	if strings.HasPrefix(endpoint, healthPrefix) {
		return err
	}

	entry := &domain.AuditEntry{
		Method:         c.Method(),
		Endpoint:       endpoint,
		StatusCode:     c.Response().StatusCode(),
		ResponseTimeMs: time.Since(start).Milliseconds(),
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		userID := identity.UserID
		entry.UserID = &userID
	}
	if country := c.Get("CF-IPCountry"); country != "" {
		entry.CFCountry = &country
	}
	if ray := c.Get("CF-Ray"); ray != "" {
		entry.CFRayID = &ray
	}

	r.submit(entry)
	return err
}

// submit enqueues without blocking. A full or closed queue drops the entry.
func (r *Recorder) submit(entry *domain.AuditEntry) {
	if r.closed.Load() {
		return
	}
	select {
	case r.queue <- entry:
	default:
		if n := r.dropped.Add(1); n == 1 || n%100 == 0 {
			r.logger.Warn("audit queue full; dropping entries", zap.Int64("dropped_total", n))
		}
	}
}

func (r *Recorder) dispatch() {
	for entry := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := r.sink.Record(ctx, entry); err != nil {
			r.logger.Warn("audit sink write failed",
				zap.String("endpoint", entry.Endpoint),
				zap.Error(err),
			)
		}
		cancel()
	}
	close(r.done)
}

// Dropped returns the number of entries discarded because the queue was full.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Close stops accepting entries and waits for the worker to drain the queue,
// up to the given timeout. Safe to call more than once.
func (r *Recorder) Close(timeout time.Duration) {
	r.closeOnce.Do(func() {
		r.closed.Store(true)
		close(r.queue)
	})
	select {
	case <-r.done:
	case <-time.After(timeout):
		r.logger.Warn("audit recorder close timed out before draining")
	}
}
