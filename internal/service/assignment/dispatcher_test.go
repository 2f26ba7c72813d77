package assignment_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"service-courier-tracking/internal/apperr"
	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/geo"
	"service-courier-tracking/internal/logx"
	"service-courier-tracking/internal/service/assignment"
	"service-courier-tracking/internal/service/scoring"
	"service-courier-tracking/internal/testutil/memstore"
)

type dispatcherMocks struct {
	orders   *MockorderReader
	pool     *MockcourierPool
	ranker   *MockcourierRanker
	assigner *MockcourierAssigner
}

func newDispatcher(t *testing.T) (*assignment.Dispatcher, dispatcherMocks) {
	t.Helper()
	ctrl := newCtrl(t)
	m := dispatcherMocks{
		orders:   NewMockorderReader(ctrl),
		pool:     NewMockcourierPool(ctrl),
		ranker:   NewMockcourierRanker(ctrl),
		assigner: NewMockcourierAssigner(ctrl),
	}
	return assignment.NewDispatcher(m.orders, m.pool, m.ranker, m.assigner, logx.Nop()), m
}

func TestDispatch_AssignsTopCandidate(t *testing.T) {
	t.Parallel()

	d, m := newDispatcher(t)
	order := pendingOrder(1)
	pool := []domain.Courier{onlineCourier(3, domain.TransportTypeCar, pt(0, 0)), onlineCourier(7, domain.TransportTypeCar, pt(0, 0))}
	want := domain.Assignment{DeliveryID: 11, OrderID: 1, CourierID: 7}

	gomock.InOrder(
		m.orders.EXPECT().Get(gomock.Any(), int64(1)).Return(&order, nil),
		m.pool.EXPECT().ListAvailable(gomock.Any()).Return(pool, nil),
		m.ranker.EXPECT().Rank(order, pool).Return([]scoring.Candidate{{CourierID: 7, Score: 0.9}, {CourierID: 3, Score: 0.5}}, nil),
		m.assigner.EXPECT().AssignCourier(gomock.Any(), int64(1), int64(7)).Return(want, nil),
	)

	got, found, err := d.Dispatch(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, want, got)
}

func TestDispatch_NoEligibleCourier(t *testing.T) {
	t.Parallel()

	d, m := newDispatcher(t)
	order := pendingOrder(1)
	m.orders.EXPECT().Get(gomock.Any(), int64(1)).Return(&order, nil)
	m.pool.EXPECT().ListAvailable(gomock.Any()).Return(nil, nil)
	m.ranker.EXPECT().Rank(order, gomock.Nil()).Return(nil, nil)

	_, found, err := d.Dispatch(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, found)
}

func TestDispatch_Rejections(t *testing.T) {
	t.Parallel()

	assigned := pendingOrder(2)
	courierID := int64(5)
	assigned.CourierID = &courierID

	cancelled := pendingOrder(3)
	cancelled.Status = domain.OrderCancelled

	tests := []struct {
		name  string
		id    int64
		order *domain.Order
		want  error
	}{
		{name: "invalid id", id: -1, want: apperr.ErrInvalid},
		{name: "missing order", id: 1, order: nil, want: apperr.ErrNotFound},
		{name: "already assigned", id: 2, order: &assigned, want: apperr.ErrConflict},
		{name: "cancelled", id: 3, order: &cancelled, want: apperr.ErrConflict},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d, m := newDispatcher(t)
			if tt.id > 0 {
				m.orders.EXPECT().Get(gomock.Any(), tt.id).Return(tt.order, nil)
			}

			_, found, err := d.Dispatch(context.Background(), tt.id)
			require.ErrorIs(t, err, tt.want)
			require.False(t, found)
		})
	}
}

func TestDispatch_AssignErrors(t *testing.T) {
	t.Parallel()

	t.Run("assignment failure is not found", func(t *testing.T) {
		t.Parallel()
		d, m := newDispatcher(t)
		order := pendingOrder(1)
		m.orders.EXPECT().Get(gomock.Any(), int64(1)).Return(&order, nil)
		m.pool.EXPECT().ListAvailable(gomock.Any()).Return([]domain.Courier{{ID: 7}}, nil)
		m.ranker.EXPECT().Rank(gomock.Any(), gomock.Any()).Return([]scoring.Candidate{{CourierID: 7}}, nil)
		m.assigner.EXPECT().AssignCourier(gomock.Any(), int64(1), int64(7)).
			Return(domain.Assignment{}, fmt.Errorf("%w: %w", apperr.ErrAssignmentFailed, apperr.ErrConflict))

		_, found, err := d.Dispatch(context.Background(), 1)
		require.ErrorIs(t, err, apperr.ErrAssignmentFailed)
		require.False(t, found)
	})

	t.Run("post update failure keeps the assignment", func(t *testing.T) {
		t.Parallel()
		d, m := newDispatcher(t)
		order := pendingOrder(1)
		res := domain.Assignment{DeliveryID: 4, OrderID: 1, CourierID: 7}
		m.orders.EXPECT().Get(gomock.Any(), int64(1)).Return(&order, nil)
		m.pool.EXPECT().ListAvailable(gomock.Any()).Return([]domain.Courier{{ID: 7}}, nil)
		m.ranker.EXPECT().Rank(gomock.Any(), gomock.Any()).Return([]scoring.Candidate{{CourierID: 7}}, nil)
		m.assigner.EXPECT().AssignCourier(gomock.Any(), int64(1), int64(7)).
			Return(res, fmt.Errorf("%w: timeout", apperr.ErrPostAssignmentUpdate))

		got, found, err := d.Dispatch(context.Background(), 1)
		require.ErrorIs(t, err, apperr.ErrPostAssignmentUpdate)
		require.True(t, found)
		require.Equal(t, res, got)
	})

	t.Run("pool error", func(t *testing.T) {
		t.Parallel()
		d, m := newDispatcher(t)
		order := pendingOrder(1)
		boom := errors.New("db down")
		m.orders.EXPECT().Get(gomock.Any(), int64(1)).Return(&order, nil)
		m.pool.EXPECT().ListAvailable(gomock.Any()).Return(nil, boom)

		_, _, err := d.Dispatch(context.Background(), 1)
		require.ErrorIs(t, err, boom)
	})
}

func TestCandidates(t *testing.T) {
	t.Parallel()

	d, m := newDispatcher(t)
	order := pendingOrder(1)
	ranked := []scoring.Candidate{{CourierID: 2}, {CourierID: 1}}
	m.orders.EXPECT().Get(gomock.Any(), int64(1)).Return(&order, nil)
	m.pool.EXPECT().ListAvailable(gomock.Any()).Return([]domain.Courier{{ID: 1}, {ID: 2}}, nil)
	m.ranker.EXPECT().Rank(gomock.Any(), gomock.Any()).Return(ranked, nil)

	got, err := d.Candidates(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, ranked, got)
}

func TestDispatch_EndToEndPicksHighestRated(t *testing.T) {
	t.Parallel()

	store := memstore.New()
	a := onlineCourier(1, domain.TransportTypeCar, pt(0, 0.01))
	a.Rating = 4.5
	b := onlineCourier(2, domain.TransportTypeCar, pt(0, 0.01))
	b.Rating = 4.0
	c := onlineCourier(3, domain.TransportTypeCar, pt(0, 0.001))
	c.Rating = 5
	c.Available = false
	store.PutCourier(a)
	store.PutCourier(b)
	store.PutCourier(c)
	store.PutOrder(pendingOrder(10))

	engine := scoring.NewEngine(scoring.Config{
		MaxDistanceKM:       10,
		MaxActiveDeliveries: 3,
		RatingWeight:        0.4,
		DistanceWeight:      0.3,
		LoadWeight:          0.3,
	}, geo.Planar{})
	coord := assignment.NewCoordinator(store, assignment.NewEstimator(geo.Planar{}), assignment.Config{
		MaxActiveDeliveries: 3,
		OnTimeTarget:        45 * time.Minute,
	}, nil, logx.Nop())
	d := assignment.NewDispatcher(store, store, engine, coord, logx.Nop())

	res, found, err := d.Dispatch(context.Background(), 10)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int64(1), res.CourierID)

	_, found, err = d.Dispatch(context.Background(), 10)
	require.ErrorIs(t, err, apperr.ErrConflict)
	require.False(t, found)
}
