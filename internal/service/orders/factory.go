package orders

import (
	"context"
	"strings"

	"service-courier-tracking/internal/domain"
)

type actionFunc func(context.Context, Event) error

type actionFactory struct {
	byStatus map[string]actionFunc
}

func newActionFactory(onCreated actionFunc, onStatus func(domain.OrderStatus) actionFunc) *actionFactory {
	return &actionFactory{
		byStatus: map[string]actionFunc{
			"created":          onCreated,
			"pending":          onCreated,
			"confirmed":        onStatus(domain.OrderConfirmed),
			"preparing":        onStatus(domain.OrderPreparing),
			"cooking":          onStatus(domain.OrderPreparing),
			"ready_for_pickup": onStatus(domain.OrderReadyForPickup),
			"picked_up":        onStatus(domain.OrderPickedUp),
			"in_transit":       onStatus(domain.OrderInTransit),
			"delivering":       onStatus(domain.OrderInTransit),
			"delivered":        onStatus(domain.OrderDelivered),
			"completed":        onStatus(domain.OrderDelivered),
			"cancelled":        onStatus(domain.OrderCancelled),
			"canceled":         onStatus(domain.OrderCancelled),
			"deleted":          onStatus(domain.OrderCancelled),
		},
	}
}

func (f *actionFactory) get(status string) (actionFunc, bool) {
	status = strings.ToLower(strings.TrimSpace(status))
	fn, ok := f.byStatus[status]
	return fn, ok
}
