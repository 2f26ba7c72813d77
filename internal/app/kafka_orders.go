package app

import (
	"context"
	"errors"
	"time"

	"service-courier-tracking/internal/apperr"
	"service-courier-tracking/internal/service/orders"
	"service-courier-tracking/internal/transport/kafka"
)

type orderEventHandler interface {
	Handle(ctx context.Context, e orders.Event) error
}

// makeOrdersKafka bounds every event by timeout and marks events that can
// never be applied as permanent.
func makeOrdersKafka(h orderEventHandler, timeout time.Duration) kafka.HandleFunc {
	return func(ctx context.Context, event orders.Event) error {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		err := h.Handle(ctx, event)
		if errors.Is(err, apperr.ErrInvalid) {
			return kafka.Permanent(err)
		}
		return err
	}
}
