package realtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"campus-event-chat/dto"
	"campus-event-chat/enum"
	"campus-event-chat/security"
)

// Conn is the write side of a websocket connection.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Session is one authenticated realtime connection. All writes to the
// connection go through a single writer goroutine fed by a bounded queue.
type Session struct {
	ID     string
	UserID uint
	Role   enum.Role

	conn       Conn
	out        chan dto.OutboundEvent
	done       chan struct{}
	writerDone chan struct{}
	closeOnce  sync.Once
	log        zerolog.Logger
}

func NewSession(conn Conn, identity security.Identity, buffer int, log zerolog.Logger) *Session {
	if buffer <= 0 {
		buffer = 64
	}
	id := uuid.NewString()
	s := &Session{
		ID:         id,
		UserID:     identity.UserID,
		Role:       identity.Role,
		conn:       conn,
		out:        make(chan dto.OutboundEvent, buffer),
		done:       make(chan struct{}),
		writerDone: make(chan struct{}),
		log:        log.With().Str("session", id).Uint("user_id", identity.UserID).Logger(),
	}
	go s.writeLoop()
	return s
}

// Push queues ev without blocking. A session whose queue is full is closed
// instead of dropping the event; Push then reports false.
func (s *Session) Push(ev dto.OutboundEvent) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.out <- ev:
		return true
	case <-s.done:
		return false
	default:
		s.log.Warn().Str("event", string(ev.Event)).Msg("outbound queue full, closing session")
		s.shutdown()
		return false
	}
}

func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) Closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Close stops the session and waits until the writer no longer touches the
// connection.
func (s *Session) Close() {
	s.shutdown()
	<-s.writerDone
}

func (s *Session) shutdown() {
	s.closeOnce.Do(func() {
		close(s.done)
		if err := s.conn.Close(); err != nil {
			s.log.Debug().Err(err).Msg("close connection")
		}
	})
}

func (s *Session) writeLoop() {
	defer close(s.writerDone)
	for {
		select {
		case <-s.done:
			return
		case ev := <-s.out:
			if err := s.conn.WriteJSON(ev); err != nil {
				s.log.Warn().Err(err).Str("event", string(ev.Event)).Msg("write failed")
				s.shutdown()
				return
			}
		}
	}
}
