//go:generate mockgen -source=contracts.go -destination=location_mocks_test.go -package=location_test

package location

import (
	"context"

	"service-courier-tracking/internal/ports/deliverytx"
	"service-courier-tracking/internal/realtime"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error
}

type broadcaster interface {
	Broadcast(ctx context.Context, room string, ev realtime.Event) error
}
