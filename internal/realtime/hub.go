package realtime

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"service-courier-tracking/internal/logx"
)

const (
	resultDelivered = "delivered"
	resultDropped   = "dropped"
)

type deliveryCounter interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}

// Hub holds room memberships of the connections served by this process.
type Hub struct {
	mu          sync.RWMutex
	rooms       map[string]map[string]Subscriber
	memberships map[string]map[string]struct{}

	deliveries deliveryCounter
	logger     logx.Logger
}

var _ Broadcaster = (*Hub)(nil)

// NewHub creates an empty hub. deliveries may be nil.
func NewHub(deliveries deliveryCounter, logger logx.Logger) *Hub {
	if vec, ok := deliveries.(*prometheus.CounterVec); ok && vec == nil {
		deliveries = nil
	}
	return &Hub{
		rooms:       make(map[string]map[string]Subscriber),
		memberships: make(map[string]map[string]struct{}),
		deliveries:  deliveries,
		logger:      logger,
	}
}

// Join adds s to room. Joining twice is a no-op.
func (h *Hub) Join(room string, s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]Subscriber)
		h.rooms[room] = members
	}
	members[s.ID()] = s

	joined, ok := h.memberships[s.ID()]
	if !ok {
		joined = make(map[string]struct{})
		h.memberships[s.ID()] = joined
	}
	joined[room] = struct{}{}
}

// Leave removes a subscriber from room.
func (h *Hub) Leave(room, subscriberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(room, subscriberID)
}

func (h *Hub) leaveLocked(room, subscriberID string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, subscriberID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	if joined, ok := h.memberships[subscriberID]; ok {
		delete(joined, room)
		if len(joined) == 0 {
			delete(h.memberships, subscriberID)
		}
	}
}

// Disconnect drops every membership of a subscriber and returns how many
// rooms it was in.
func (h *Hub) Disconnect(subscriberID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	joined := h.memberships[subscriberID]
	n := len(joined)
	for room := range joined {
		h.leaveLocked(room, subscriberID)
	}
	return n
}

// Members returns the number of subscribers in room.
func (h *Hub) Members(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Rooms returns the rooms a subscriber is in.
func (h *Hub) Rooms(subscriberID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.memberships[subscriberID]))
	for room := range h.memberships[subscriberID] {
		out = append(out, room)
	}
	return out
}

// Broadcast sends ev to every member of room. A member that fails is
// skipped; the others still get the event.
func (h *Hub) Broadcast(ctx context.Context, room string, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ev.Room = room

	h.mu.RLock()
	members := make([]Subscriber, 0, len(h.rooms[room]))
	for _, s := range h.rooms[room] {
		members = append(members, s)
	}
	h.mu.RUnlock()

	for _, s := range members {
		if err := s.Send(ev); err != nil {
			h.count(resultDropped)
			h.logger.Warn("room event dropped",
				logx.Event("broadcast_dropped"),
				logx.String("room", room),
				logx.String("subscriber_id", s.ID()),
				logx.String("type", string(ev.Type)),
				logx.Err(err),
			)
			continue
		}
		h.count(resultDelivered)
	}
	return nil
}

func (h *Hub) count(result string) {
	if h.deliveries != nil {
		h.deliveries.WithLabelValues(result).Inc()
	}
}
