package outbox

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/entities"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const defaultNotifyTimeout = 30 * time.Second

var ErrClosed = errors.New("outbox closed")

type Config struct {
	BufferSize    int
	Workers       int
	NotifyTimeout time.Duration
}

// Outbox decouples lifecycle operations from notification delivery.
// Batches are queued without blocking and dispatched by a fixed pool of
// workers; intents of one batch are delivered concurrently.
type Outbox struct {
	cfg        Config
	dispatcher Dispatcher
	log        handlerLogger

	mu     sync.RWMutex
	closed bool
	queue  chan []entities.Intent

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(cfg Config, dispatcher Dispatcher, log handlerLogger) *Outbox {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = defaultNotifyTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	o := &Outbox{
		cfg:        cfg,
		dispatcher: dispatcher,
		log:        log.With(logger.NewField("component", "outbox")),
		queue:      make(chan []entities.Intent, cfg.BufferSize),
		ctx:        ctx,
		cancel:     cancel,
	}

	o.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go o.work()
	}

	return o
}

// Enqueue never blocks. A batch that does not fit into the buffer, or that
// arrives after Close, is dropped.
func (o *Outbox) Enqueue(intents ...entities.Intent) {
	if len(intents) == 0 {
		return
	}

	batch := make([]entities.Intent, len(intents))
	copy(batch, intents)

	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.closed {
		o.drop(batch, dropReasonClosed)
		return
	}

	select {
	case o.queue <- batch:
		OutboxQueueLength.Inc()
	default:
		o.drop(batch, dropReasonFull)
	}
}

// Close stops accepting batches and waits for queued ones to be delivered.
// When ctx expires first, in-flight deliveries are cancelled.
func (o *Outbox) Close(ctx context.Context) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrClosed
	}
	o.closed = true
	close(o.queue)
	o.mu.Unlock()

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		o.cancel()
		return nil
	case <-ctx.Done():
		o.cancel()
		<-done
		return fmt.Errorf("drain outbox: %w", ctx.Err())
	}
}

func (o *Outbox) work() {
	defer o.wg.Done()

	for batch := range o.queue {
		OutboxQueueLength.Dec()
		o.process(batch)
	}
}

func (o *Outbox) process(batch []entities.Intent) {
	var g errgroup.Group
	for _, intent := range batch {
		g.Go(func() error {
			return o.dispatch(intent)
		})
	}

	if err := g.Wait(); err != nil {
		o.log.With(
			logger.NewField("order_id", batch[0].Order.ID),
			logger.NewField("event", batch[0].Event.String()),
			logger.NewField("error", err),
		).Warn("batch delivered with failures")
	}
}

func (o *Outbox) dispatch(intent entities.Intent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dispatch panic: %v", r)
			o.log.With(
				logger.NewField("channel", intent.Channel.String()),
				logger.NewField("recover", r),
				logger.NewField("stack", string(debug.Stack())),
			).Error("dispatch panic")
		}
	}()

	ctx, cancel := context.WithTimeout(o.ctx, o.cfg.NotifyTimeout)
	defer cancel()

	return o.dispatcher.Dispatch(ctx, intent)
}

func (o *Outbox) drop(batch []entities.Intent, reason string) {
	OutboxDroppedTotal.WithLabelValues(reason).Inc()
	o.log.With(
		logger.NewField("order_id", batch[0].Order.ID),
		logger.NewField("event", batch[0].Event.String()),
		logger.NewField("intents", len(batch)),
		logger.NewField("reason", reason),
	).Warn("notification batch dropped")
}
