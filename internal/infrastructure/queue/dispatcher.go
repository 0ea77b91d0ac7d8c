package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ferremas/storefront-api/internal/core/domain"
	"github.com/ferremas/storefront-api/internal/core/ports"
	"github.com/ferremas/storefront-api/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes verified payment events to a fixed set of workers using
// consistent hashing on the order id, so events for one order are processed
// in delivery order.
type Dispatcher struct {
	workers   []chan domain.PaymentEvent
	processor ports.PaymentEventProcessor
	log       zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ports.PaymentEventProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.PaymentEvent, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.PaymentEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. ctx is passed to the processor;
// workers exit once Stop has drained their queue.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its order. It blocks
// when that worker's buffer is full. Events enqueued after Stop are dropped.
func (d *Dispatcher) Enqueue(event domain.PaymentEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		d.log.Warn().Str("event_id", event.ID).Msg("dispatcher stopped, event dropped")
		return
	}

	idx := d.shardIndex(shardKey(event))
	d.workers[idx] <- event
	metrics.WebhookQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// Stop closes the queues and waits until the workers have processed every
// event already enqueued, or until ctx is done.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func shardKey(event domain.PaymentEvent) string {
	if event.OrderID != "" {
		return event.OrderID
	}
	return event.ID
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.PaymentEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for event := range ch {
		metrics.WebhookQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
		if err := d.processor.Process(ctx, event); err != nil {
			d.log.Error().Err(err).
				Str("event_id", event.ID).
				Str("order_id", event.OrderID).
				Int("worker_id", id).
				Msg("payment event processing failed")
		}
	}
}
