package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Task is a job the Worker runs periodically.
type Task interface {
	// TTL is the interval between runs.
	TTL() time.Duration

	Do(context.Context) error

	// Info names the task in logs.
	Info() string
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Worker struct {
	log   handlerLogger
	tasks []Task
	done  chan struct{}
}

// New runs every task once synchronously and then keeps running them in the
// background until ctx is cancelled. A task that fails or panics during the
// first run makes New return an error and nothing is started.
func New(ctx context.Context, log handlerLogger, tasks []Task) (*Worker, error) {
	worker := &Worker{
		log:   log,
		tasks: tasks,
		done:  make(chan struct{}),
	}

	if len(tasks) == 0 {
		close(worker.done)
		return worker, nil
	}

	initGroup, initCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		initGroup.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					err = fmt.Errorf("init panic: %v", r)
					log.With(
						logger.NewField("task", task.Info()),
						logger.NewField("recover", r),
						logger.NewField("stack", string(stack)),
					).Error("task panic during init")
				}
			}()
			log.With(
				logger.NewField("task", task.Info()),
			).Info("initializing task")
			return task.Do(initCtx)
		})
	}

	if err := initGroup.Wait(); err != nil {
		return nil, fmt.Errorf("failed to initialize tasks: %w", err)
	}

	var runGroup errgroup.Group
	for _, task := range tasks {
		runGroup.Go(func() error {
			worker.runBackgroundTask(ctx, task)
			return nil
		})
	}
	go func() {
		_ = runGroup.Wait()
		close(worker.done)
	}()

	return worker, nil
}

// Done is closed once every task loop has stopped.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

func (w *Worker) runBackgroundTask(ctx context.Context, task Task) {
	taskLog := w.log.With(
		logger.NewField("task", task.Info()),
		logger.NewField("ttl", task.TTL().String()),
	)

	ttl := task.TTL()
	if ttl <= 0 {
		taskLog.Warn("invalid TTL, skipping periodic execution")
		return
	}
	taskLog.Info("starting periodic execution")

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			taskLog.Info("stopping task")
			return
		case <-ticker.C:
			w.executeTaskSafely(ctx, task)
		}
	}
}

func (w *Worker) executeTaskSafely(ctx context.Context, task Task) {
	defer func() {
		if r := recover(); r != nil {
			w.log.With(
				logger.NewField("task", task.Info()),
				logger.NewField("recover", r),
				logger.NewField("stack", string(debug.Stack())),
			).Error("background task panic")
		}
	}()

	if err := task.Do(ctx); err != nil {
		w.log.With(
			logger.NewField("task", task.Info()),
			logger.NewField("error", err),
		).Error("background task failed")
	}
}
