package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"campus-event-chat/apperror"
	"campus-event-chat/config/common"
	"campus-event-chat/config/logger"
	"campus-event-chat/dto"
	"campus-event-chat/dto/req"
	"campus-event-chat/dto/res"
	"campus-event-chat/entity"
	"campus-event-chat/enum"
	"campus-event-chat/usecase"
)

var errSessionClosed = errors.New("session closed")

// Reader is the read side of a websocket connection.
type Reader interface {
	ReadMessage() (messageType int, p []byte, err error)
}

// Router handles the realtime events of every session.
type Router struct {
	hub           *Hub
	participation usecase.ParticipationUsecase
	messages      usecase.MessageUsecase
	validate      *validator.Validate
	log           *logger.AppLogger

	mode         enum.DeliveryMode
	historyLimit int
	inboxBuffer  int
}

func NewRouter(
	hub *Hub,
	participation usecase.ParticipationUsecase,
	messages usecase.MessageUsecase,
	validate *validator.Validate,
	cfg common.ChatConfig,
	log *logger.AppLogger,
) *Router {
	inbox := cfg.InboxBuffer
	if inbox <= 0 {
		inbox = 16
	}
	return &Router{
		hub:           hub,
		participation: participation,
		messages:      messages,
		validate:      validate,
		log:           log,
		mode:          enum.ParseDeliveryMode(cfg.DeliveryMode),
		historyLimit:  cfg.HistoryLimit,
		inboxBuffer:   inbox,
	}
}

func (r *Router) Hub() *Hub {
	return r.hub
}

// Serve runs the session until conn stops delivering frames. Frames are
// handled one at a time by a worker in arrival order. When the connection
// ends the session is disconnected right away; a send already being handled
// still completes, frames not yet started are dropped.
func (r *Router) Serve(s *Session, conn Reader) {
	r.log.WS.Info.Info().Str("session", s.ID).Uint("user_id", s.UserID).Msg("session connected")

	inbox := make(chan []byte, r.inboxBuffer)
	go func() {
		for raw := range inbox {
			if s.Closed() {
				continue
			}
			r.Dispatch(context.Background(), s, raw)
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if !s.Closed() {
				r.log.WS.Trace.Debug().Err(err).Str("session", s.ID).Msg("read loop ended")
			}
			break
		}
		r.log.WS.Stream.Trace().Str("session", s.ID).Bytes("frame", raw).Msg("inbound")
		inbox <- raw
	}
	close(inbox)
	r.Disconnect(s)
}

// Disconnect closes s and drops it from its room.
func (r *Router) Disconnect(s *Session) {
	s.Close()
	r.hub.Leave(s)
	r.log.WS.Info.Info().Str("session", s.ID).Uint("user_id", s.UserID).Msg("session disconnected")
}

// Dispatch handles one inbound frame. Every failure is reported to s alone.
func (r *Router) Dispatch(ctx context.Context, s *Session, raw []byte) {
	var in dto.InboundEvent
	if err := json.Unmarshal(raw, &in); err != nil {
		r.pushError(s, apperror.Wrap(apperror.ErrValidation, "Malformed message", err))
		return
	}

	var err error
	switch in.Event {
	case enum.WsJoinRoom:
		var payload req.JoinRoomRequest
		if err = r.decode(in.Data, &payload); err == nil {
			err = r.Join(ctx, s, payload.EventID)
		}
	case enum.WsSendMessage:
		var payload req.SendMessageRequest
		if err = json.Unmarshal(in.Data, &payload); err != nil {
			err = apperror.Wrap(apperror.ErrValidation, "Invalid payload", err)
		} else {
			err = r.Send(ctx, s, payload)
		}
	default:
		err = apperror.Validation(fmt.Sprintf("Unknown event %q", in.Event))
	}

	if err != nil {
		r.pushError(s, err)
	}
}

// Join replays the recent history of eventID to s and then adds s to the room.
// Both happen under the room lock, so a concurrent send reaches s exactly once.
func (r *Router) Join(ctx context.Context, s *Session, eventID uint) error {
	if err := r.participation.CheckParticipant(ctx, s.UserID, eventID); err != nil {
		return err
	}

	var err error
	r.hub.WithRoomLock(eventID, func() {
		var history []entity.Message
		history, err = r.messages.RecentHistory(ctx, eventID, r.historyLimit)
		if err != nil {
			return
		}
		if history == nil {
			history = []entity.Message{}
		}
		s.Push(dto.OutboundEvent{Event: enum.WsRoomHistory, Data: history})
		if !r.hub.Join(s, eventID) {
			err = errSessionClosed
		}
	})
	if err != nil {
		return err
	}

	r.log.WS.Info.Info().Str("session", s.ID).Uint("event_id", eventID).Msg("joined room")
	return nil
}

// Send persists a message and delivers the stored record. Participation of
// both ends is checked on every call.
func (r *Router) Send(ctx context.Context, s *Session, payload req.SendMessageRequest) error {
	payload.Message = strings.TrimSpace(payload.Message)
	if payload.Message == "" {
		return apperror.Validation("Message text is required")
	}
	if err := r.validate.Struct(payload); err != nil {
		return apperror.Wrap(apperror.ErrValidation, "eventId, receiverId and message are required", err)
	}

	if err := r.participation.CheckParticipant(ctx, s.UserID, payload.EventID); err != nil {
		return err
	}
	if err := r.participation.CheckParticipant(ctx, payload.ReceiverID, payload.EventID); err != nil {
		if errors.Is(err, apperror.ErrForbidden) {
			return apperror.Forbidden("Receiver is not a participant of this event")
		}
		return err
	}

	var err error
	r.hub.WithRoomLock(payload.EventID, func() {
		var message entity.Message
		message, err = r.messages.Append(ctx, payload.EventID, s.UserID, payload.ReceiverID, payload.Message)
		if err != nil {
			return
		}
		r.deliver(message)
	})
	return err
}

func (r *Router) deliver(message entity.Message) {
	ev := dto.OutboundEvent{Event: enum.WsNewMessage, Data: message}

	var delivered int
	if r.mode == enum.DeliveryDirect {
		delivered = r.hub.Deliver(message.EventID, ev, func(member *Session) bool {
			return member.UserID == message.SenderID || member.UserID == message.ReceiverID
		})
	} else {
		delivered = r.hub.Broadcast(message.EventID, ev)
	}

	r.log.WS.Trace.Debug().
		Uint("event_id", message.EventID).
		Uint("message_id", message.ID).
		Int("delivered", delivered).
		Msg("message delivered")
}

func (r *Router) decode(data json.RawMessage, payload interface{}) error {
	if err := json.Unmarshal(data, payload); err != nil {
		return apperror.Wrap(apperror.ErrValidation, "Invalid payload", err)
	}
	if err := r.validate.Struct(payload); err != nil {
		return apperror.Wrap(apperror.ErrValidation, "eventId is required", err)
	}
	return nil
}

func (r *Router) pushError(s *Session, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) && !errors.Is(err, apperror.ErrPersistence) {
		r.log.WS.Warning.Warn().Err(err).Str("session", s.ID).Msg("request rejected")
	} else {
		r.log.WS.Error.Error().Err(err).Str("session", s.ID).Msg("request failed")
	}
	s.Push(dto.OutboundEvent{
		Event: enum.WsErrorMessage,
		Data:  res.WsErrorResponse{Msg: apperror.PublicMessage(err)},
	})
}
