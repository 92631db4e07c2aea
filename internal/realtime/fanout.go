package realtime

import (
	"context"
	"errors"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/entities"
)

// Fanout publishes every event to all sinks. A failing sink does not stop
// the others; their errors are joined.
type Fanout []Sink

func NewFanout(sinks ...Sink) Fanout {
	f := make(Fanout, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			f = append(f, s)
		}
	}
	return f
}

func (f Fanout) Publish(ctx context.Context, event entities.RealtimeEvent) error {
	var errs []error
	for _, s := range f {
		if err := s.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
