package realtime

import (
	"sync"

	"campus-event-chat/dto"
)

// Hub is the room table: which sessions are joined to which event. A session
// is in at most one room. Membership changes and deliveries are atomic with
// respect to each other.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[uint]map[*Session]struct{}
	joined map[*Session]uint

	locksMu sync.Mutex
	locks   map[uint]*roomLock
}

// roomLock is dropped from Hub.locks once no caller holds or waits for it.
type roomLock struct {
	sync.Mutex
	refs int
}

func NewHub() *Hub {
	return &Hub{
		rooms:  make(map[uint]map[*Session]struct{}),
		joined: make(map[*Session]uint),
		locks:  make(map[uint]*roomLock),
	}
}

// Join puts s into the room of eventID, leaving any previous room. A closed
// session is refused.
func (h *Hub) Join(s *Session, eventID uint) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s.Closed() {
		return false
	}
	h.removeLocked(s)

	members, ok := h.rooms[eventID]
	if !ok {
		members = make(map[*Session]struct{})
		h.rooms[eventID] = members
	}
	members[s] = struct{}{}
	h.joined[s] = eventID
	return true
}

func (h *Hub) Leave(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(s)
}

func (h *Hub) removeLocked(s *Session) {
	eventID, ok := h.joined[s]
	if !ok {
		return
	}
	delete(h.joined, s)
	if members, ok := h.rooms[eventID]; ok {
		delete(members, s)
		if len(members) == 0 {
			delete(h.rooms, eventID)
		}
	}
}

// RoomOf returns the event s is joined to.
func (h *Hub) RoomOf(s *Session) (uint, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	eventID, ok := h.joined[s]
	return eventID, ok
}

func (h *Hub) Members(eventID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[eventID])
}

// Broadcast queues ev to every session of the room and returns how many
// accepted it.
func (h *Hub) Broadcast(eventID uint, ev dto.OutboundEvent) int {
	return h.Deliver(eventID, ev, nil)
}

// Deliver is Broadcast restricted to the sessions accepted by filter.
func (h *Hub) Deliver(eventID uint, ev dto.OutboundEvent, filter func(*Session) bool) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for s := range h.rooms[eventID] {
		if filter != nil && !filter(s) {
			continue
		}
		if s.Push(ev) {
			delivered++
		}
	}
	return delivered
}

// WithRoomLock runs fn while holding the sequencing lock of eventID. Work done
// under the lock for one room is totally ordered.
func (h *Hub) WithRoomLock(eventID uint, fn func()) {
	h.locksMu.Lock()
	lock, ok := h.locks[eventID]
	if !ok {
		lock = &roomLock{}
		h.locks[eventID] = lock
	}
	lock.refs++
	h.locksMu.Unlock()

	defer func() {
		h.locksMu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(h.locks, eventID)
		}
		h.locksMu.Unlock()
	}()

	lock.Lock()
	defer lock.Unlock()
	fn()
}
