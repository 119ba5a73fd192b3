package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"campus-event-chat/config/common"
	"campus-event-chat/config/logger"
	"campus-event-chat/dto"
	"campus-event-chat/dto/req"
	"campus-event-chat/dto/res"
	"campus-event-chat/entity"
	"campus-event-chat/enum"
	"campus-event-chat/repository"
	"campus-event-chat/security"
	"campus-event-chat/testutil"
	"campus-event-chat/usecase"
)

const waitFor = 2 * time.Second

type fakeConn struct {
	frames    chan dto.OutboundEvent
	in        chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		frames: make(chan dto.OutboundEvent, 256),
		in:     make(chan []byte, 16),
		closed: make(chan struct{}),
	}
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	select {
	case <-c.closed:
		return errors.New("use of closed connection")
	default:
	}
	c.frames <- v.(dto.OutboundEvent)
	return nil
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case raw := <-c.in:
		return 1, raw, nil
	case <-c.closed:
		return 0, nil, io.EOF
	}
}

func (c *fakeConn) send(t *testing.T, event enum.WsEvent, data interface{}) {
	t.Helper()
	payload, err := json.Marshal(data)
	require.NoError(t, err)
	raw, err := json.Marshal(dto.InboundEvent{Event: event, Data: payload})
	require.NoError(t, err)
	c.in <- raw
}

func (c *fakeConn) next(t *testing.T) dto.OutboundEvent {
	t.Helper()
	select {
	case ev := <-c.frames:
		return ev
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for a frame")
		return dto.OutboundEvent{}
	}
}

func (c *fakeConn) expectSilence(t *testing.T) {
	t.Helper()
	select {
	case ev := <-c.frames:
		t.Fatalf("unexpected frame %s: %+v", ev.Event, ev.Data)
	case <-time.After(100 * time.Millisecond):
	}
}

type harness struct {
	db     *gorm.DB
	router *Router
	s      testutil.Scenario
}

func newHarness(t *testing.T, mode enum.DeliveryMode) harness {
	t.Helper()
	db := testutil.NewTestDB(t)
	log := testutil.NewLogrus()
	participation := usecase.NewParticipationUsecase(repository.NewEventRepository(), db, log)
	messages := usecase.NewMessageUsecase(repository.NewMessageRepository(), db, log)

	router := NewRouter(NewHub(), participation, messages, validator.New(), common.ChatConfig{
		HistoryLimit: 50,
		DeliveryMode: string(mode),
		SendBuffer:   64,
		InboxBuffer:  16,
	}, logger.NewDiscardLogger())

	return harness{db: db, router: router, s: testutil.SeedScenario(t, db)}
}

func (h harness) connect(user entity.User) (*Session, *fakeConn) {
	conn := newFakeConn()
	return NewSession(conn, security.Identity{UserID: user.ID, Role: user.Role}, 64, logger.NewDiscardLogger().WS.Info), conn
}

// serve runs the session in the background and returns a channel closed when
// Serve returns.
func (h harness) serve(user entity.User) (*Session, *fakeConn, <-chan struct{}) {
	s, conn := h.connect(user)
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.router.Serve(s, conn)
	}()
	return s, conn, done
}

func (h harness) messageCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, h.db.Model(&entity.Message{}).Count(&count).Error)
	return count
}

func requireHistory(t *testing.T, ev dto.OutboundEvent) []entity.Message {
	t.Helper()
	require.Equal(t, enum.WsRoomHistory, ev.Event)
	history, ok := ev.Data.([]entity.Message)
	require.True(t, ok, "history payload is %T", ev.Data)
	return history
}

func requireNewMessage(t *testing.T, ev dto.OutboundEvent) entity.Message {
	t.Helper()
	require.Equal(t, enum.WsNewMessage, ev.Event)
	message, ok := ev.Data.(entity.Message)
	require.True(t, ok, "message payload is %T", ev.Data)
	return message
}

func requireError(t *testing.T, ev dto.OutboundEvent) string {
	t.Helper()
	require.Equal(t, enum.WsErrorMessage, ev.Event)
	payload, ok := ev.Data.(res.WsErrorResponse)
	require.True(t, ok, "error payload is %T", ev.Data)
	return payload.Msg
}

func TestRouter_OrganizerAndStudentChat(t *testing.T) {
	h := newHarness(t, enum.DeliveryRoom)
	eventID := h.s.Event.ID

	_, s1, _ := h.serve(h.s.Student1)
	s1.send(t, enum.WsJoinRoom, req.JoinRoomRequest{EventID: eventID})
	assert.Empty(t, requireHistory(t, s1.next(t)))

	_, org, _ := h.serve(h.s.Organizer)
	org.send(t, enum.WsJoinRoom, req.JoinRoomRequest{EventID: eventID})
	assert.Empty(t, requireHistory(t, org.next(t)))

	s1.send(t, enum.WsSendMessage, req.SendMessageRequest{EventID: eventID, ReceiverID: h.s.Organizer.ID, Message: "hello"})
	for _, conn := range []*fakeConn{s1, org} {
		msg := requireNewMessage(t, conn.next(t))
		assert.Equal(t, h.s.Student1.ID, msg.SenderID)
		assert.Equal(t, h.s.Organizer.ID, msg.ReceiverID)
		assert.Equal(t, "hello", msg.Message)
	}

	_, outsider, _ := h.serve(h.s.Outsider)
	outsider.send(t, enum.WsJoinRoom, req.JoinRoomRequest{EventID: eventID})
	assert.Equal(t, "Not allowed", requireError(t, outsider.next(t)))
	outsider.expectSilence(t)

	assert.Equal(t, 2, h.router.Hub().Members(eventID))
}

func TestRouter_JoinReplaysHistoryInOrder(t *testing.T) {
	h := newHarness(t, enum.DeliveryRoom)
	ctx := context.Background()
	sender, _ := h.connect(h.s.Student1)

	for i := 0; i < 3; i++ {
		require.NoError(t, h.router.Send(ctx, sender, req.SendMessageRequest{
			EventID: h.s.Event.ID, ReceiverID: h.s.Organizer.ID, Message: fmt.Sprintf("m%d", i),
		}))
	}

	org, conn := h.connect(h.s.Organizer)
	require.NoError(t, h.router.Join(ctx, org, h.s.Event.ID))

	history := requireHistory(t, conn.next(t))
	require.Len(t, history, 3)
	for i, m := range history {
		assert.Equal(t, fmt.Sprintf("m%d", i), m.Message)
		if i > 0 {
			assert.False(t, m.CreatedAt.Before(history[i-1].CreatedAt))
		}
	}
}

func TestRouter_NonParticipantNeverJoins(t *testing.T) {
	h := newHarness(t, enum.DeliveryRoom)
	ctx := context.Background()

	outsider, outsiderConn := h.connect(h.s.Outsider)
	h.router.Dispatch(ctx, outsider, mustFrame(t, enum.WsJoinRoom, req.JoinRoomRequest{EventID: h.s.Event.ID}))
	requireError(t, outsiderConn.next(t))

	_, joined := h.router.Hub().RoomOf(outsider)
	assert.False(t, joined)

	student, studentConn := h.connect(h.s.Student1)
	require.NoError(t, h.router.Join(ctx, student, h.s.Event.ID))
	requireHistory(t, studentConn.next(t))

	require.NoError(t, h.router.Send(ctx, student, req.SendMessageRequest{
		EventID: h.s.Event.ID, ReceiverID: h.s.Organizer.ID, Message: "hi",
	}))
	requireNewMessage(t, studentConn.next(t))
	outsiderConn.expectSilence(t)
}

func TestRouter_FailedSendsAreNotPersisted(t *testing.T) {
	h := newHarness(t, enum.DeliveryRoom)
	ctx := context.Background()

	student, studentConn := h.connect(h.s.Student1)
	require.NoError(t, h.router.Join(ctx, student, h.s.Event.ID))
	requireHistory(t, studentConn.next(t))

	org, orgConn := h.connect(h.s.Organizer)
	require.NoError(t, h.router.Join(ctx, org, h.s.Event.ID))
	requireHistory(t, orgConn.next(t))

	outsider, outsiderConn := h.connect(h.s.Outsider)

	cases := []struct {
		name    string
		session *Session
		conn    *fakeConn
		payload req.SendMessageRequest
	}{
		{"blank text", student, studentConn, req.SendMessageRequest{EventID: h.s.Event.ID, ReceiverID: h.s.Organizer.ID, Message: "   "}},
		{"missing receiver", student, studentConn, req.SendMessageRequest{EventID: h.s.Event.ID, Message: "hi"}},
		{"receiver not registered", student, studentConn, req.SendMessageRequest{EventID: h.s.Event.ID, ReceiverID: h.s.Outsider.ID, Message: "hi"}},
		{"sender not registered", outsider, outsiderConn, req.SendMessageRequest{EventID: h.s.Event.ID, ReceiverID: h.s.Organizer.ID, Message: "hi"}},
		{"unknown event", student, studentConn, req.SendMessageRequest{EventID: h.s.Event.ID + 50, ReceiverID: h.s.Organizer.ID, Message: "hi"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h.router.Dispatch(ctx, tc.session, mustFrame(t, enum.WsSendMessage, tc.payload))
			requireError(t, tc.conn.next(t))
			orgConn.expectSilence(t)
		})
	}

	assert.Zero(t, h.messageCount(t))
}

func TestRouter_BroadcastReachesExactlyTheRoom(t *testing.T) {
	h := newHarness(t, enum.DeliveryRoom)
	ctx := context.Background()
	other := testutil.SeedEvent(t, h.db, h.s.Student2.ID, "Other Room")

	var conns []*fakeConn
	for _, user := range []entity.User{h.s.Organizer, h.s.Student1, h.s.Student2} {
		s, conn := h.connect(user)
		require.NoError(t, h.router.Join(ctx, s, h.s.Event.ID))
		requireHistory(t, conn.next(t))
		conns = append(conns, conn)
	}

	elsewhere, elsewhereConn := h.connect(h.s.Student2)
	require.NoError(t, h.router.Join(ctx, elsewhere, other.ID))
	requireHistory(t, elsewhereConn.next(t))

	sender, _ := h.connect(h.s.Student1)
	require.NoError(t, h.router.Send(ctx, sender, req.SendMessageRequest{
		EventID: h.s.Event.ID, ReceiverID: h.s.Organizer.ID, Message: "to everyone here",
	}))

	for _, conn := range conns {
		assert.Equal(t, "to everyone here", requireNewMessage(t, conn.next(t)).Message)
	}
	elsewhereConn.expectSilence(t)
}

func TestRouter_DirectModeOnlyReachesTheThread(t *testing.T) {
	h := newHarness(t, enum.DeliveryDirect)
	ctx := context.Background()

	sessions := map[uint]*fakeConn{}
	var sender *Session
	for _, user := range []entity.User{h.s.Organizer, h.s.Student1, h.s.Student2} {
		s, conn := h.connect(user)
		require.NoError(t, h.router.Join(ctx, s, h.s.Event.ID))
		requireHistory(t, conn.next(t))
		sessions[user.ID] = conn
		if user.ID == h.s.Student1.ID {
			sender = s
		}
	}

	require.NoError(t, h.router.Send(ctx, sender, req.SendMessageRequest{
		EventID: h.s.Event.ID, ReceiverID: h.s.Organizer.ID, Message: "private",
	}))

	requireNewMessage(t, sessions[h.s.Student1.ID].next(t))
	requireNewMessage(t, sessions[h.s.Organizer.ID].next(t))
	sessions[h.s.Student2.ID].expectSilence(t)
}

func TestRouter_JoinMovesSessionBetweenRooms(t *testing.T) {
	h := newHarness(t, enum.DeliveryRoom)
	ctx := context.Background()
	second := testutil.SeedEvent(t, h.db, h.s.Organizer.ID, "Second")

	org, conn := h.connect(h.s.Organizer)
	require.NoError(t, h.router.Join(ctx, org, h.s.Event.ID))
	requireHistory(t, conn.next(t))
	require.NoError(t, h.router.Join(ctx, org, second.ID))
	requireHistory(t, conn.next(t))

	room, ok := h.router.Hub().RoomOf(org)
	require.True(t, ok)
	assert.Equal(t, second.ID, room)
	assert.Zero(t, h.router.Hub().Members(h.s.Event.ID))
	assert.Equal(t, 1, h.router.Hub().Members(second.ID))
}

func TestRouter_BadFramesKeepTheConnection(t *testing.T) {
	h := newHarness(t, enum.DeliveryRoom)

	_, conn, _ := h.serve(h.s.Student1)

	conn.in <- []byte("{not json")
	assert.Equal(t, "Malformed message", requireError(t, conn.next(t)))

	conn.send(t, "dance", map[string]int{"eventId": 1})
	assert.Contains(t, requireError(t, conn.next(t)), "Unknown event")

	conn.send(t, enum.WsJoinRoom, map[string]string{"eventId": "abc"})
	requireError(t, conn.next(t))

	conn.send(t, enum.WsJoinRoom, req.JoinRoomRequest{EventID: h.s.Event.ID})
	requireHistory(t, conn.next(t))
}

func TestRouter_DisconnectLeavesRoom(t *testing.T) {
	h := newHarness(t, enum.DeliveryRoom)

	s, conn, done := h.serve(h.s.Student1)
	conn.send(t, enum.WsJoinRoom, req.JoinRoomRequest{EventID: h.s.Event.ID})
	requireHistory(t, conn.next(t))
	require.Equal(t, 1, h.router.Hub().Members(h.s.Event.ID))

	require.NoError(t, conn.Close())
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("Serve did not return after the connection closed")
	}

	assert.True(t, s.Closed())
	assert.Zero(t, h.router.Hub().Members(h.s.Event.ID))

	org, orgConn := h.connect(h.s.Organizer)
	require.NoError(t, h.router.Join(context.Background(), org, h.s.Event.ID))
	requireHistory(t, orgConn.next(t))
	require.NoError(t, h.router.Send(context.Background(), org, req.SendMessageRequest{
		EventID: h.s.Event.ID, ReceiverID: h.s.Student1.ID, Message: "still there?",
	}))
	requireNewMessage(t, orgConn.next(t))
	assert.False(t, h.router.Hub().Join(s, h.s.Event.ID), "closed sessions cannot rejoin")
}

func TestRouter_ConcurrentSendsSeenInCommitOrder(t *testing.T) {
	h := newHarness(t, enum.DeliveryRoom)
	ctx := context.Background()

	var watchers []*fakeConn
	for _, user := range []entity.User{h.s.Organizer, h.s.Student2} {
		s, conn := h.connect(user)
		require.NoError(t, h.router.Join(ctx, s, h.s.Event.ID))
		requireHistory(t, conn.next(t))
		watchers = append(watchers, conn)
	}

	const senders, perSender = 4, 5
	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, _ := h.connect(h.s.Student1)
			for j := 0; j < perSender; j++ {
				assert.NoError(t, h.router.Send(ctx, s, req.SendMessageRequest{
					EventID: h.s.Event.ID, ReceiverID: h.s.Organizer.ID, Message: fmt.Sprintf("%d-%d", i, j),
				}))
			}
		}(i)
	}
	wg.Wait()

	var orders [][]uint
	for _, conn := range watchers {
		var ids []uint
		for k := 0; k < senders*perSender; k++ {
			ids = append(ids, requireNewMessage(t, conn.next(t)).ID)
		}
		for k := 1; k < len(ids); k++ {
			assert.Less(t, ids[k-1], ids[k])
		}
		orders = append(orders, ids)
	}
	assert.Equal(t, orders[0], orders[1])
	assert.EqualValues(t, senders*perSender, h.messageCount(t))
}

// waitForRoomWaiters blocks until n callers hold or wait for the room lock.
func waitForRoomWaiters(t *testing.T, hub *Hub, eventID uint, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		hub.locksMu.Lock()
		defer hub.locksMu.Unlock()
		lock, ok := hub.locks[eventID]
		return ok && lock.refs == n
	}, waitFor, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
}

// holdRoom takes the room lock until the returned func is called.
func holdRoom(t *testing.T, hub *Hub, eventID uint) func() {
	t.Helper()
	held := make(chan struct{})
	release := make(chan struct{})
	go hub.WithRoomLock(eventID, func() {
		close(held)
		<-release
	})
	<-held
	return func() { close(release) }
}

func TestRouter_JoinDuringSendsSeesEachMessageOnce(t *testing.T) {
	h := newHarness(t, enum.DeliveryRoom)
	ctx := context.Background()
	eventID := h.s.Event.ID
	hub := h.router.Hub()

	sender, _ := h.connect(h.s.Student1)
	send := func(text string) {
		assert.NoError(t, h.router.Send(ctx, sender, req.SendMessageRequest{
			EventID: eventID, ReceiverID: h.s.Organizer.ID, Message: text,
		}))
	}

	const committed, queued = 10, 10
	for i := 0; i < committed; i++ {
		send(fmt.Sprintf("committed-%d", i))
	}

	release := holdRoom(t, hub, eventID)
	var wg sync.WaitGroup
	queue := func(prefix string) {
		for i := 0; i < queued; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				send(fmt.Sprintf("%s-%d", prefix, i))
			}(i)
		}
	}

	queue("ahead")
	waitForRoomWaiters(t, hub, eventID, 1+queued)

	joiner, joinerConn := h.connect(h.s.Organizer)
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, h.router.Join(ctx, joiner, eventID))
	}()
	waitForRoomWaiters(t, hub, eventID, 2+queued)

	queue("behind")
	waitForRoomWaiters(t, hub, eventID, 2+2*queued)

	release()
	wg.Wait()

	total := committed + 2*queued
	require.EqualValues(t, total, h.messageCount(t))

	seen := map[uint]int{}
	history := requireHistory(t, joinerConn.next(t))
	for _, m := range history {
		seen[m.ID]++
	}
	broadcasts := total - len(history)
	for i := 0; i < broadcasts; i++ {
		seen[requireNewMessage(t, joinerConn.next(t)).ID]++
	}
	joinerConn.expectSilence(t)

	assert.Greater(t, len(history), committed, "join ran after some queued sends")
	assert.Positive(t, broadcasts, "join ran before some queued sends")

	var stored []entity.Message
	require.NoError(t, h.db.Order("id").Find(&stored).Error)
	for _, m := range stored {
		assert.Equal(t, 1, seen[m.ID], "message %d (%s)", m.ID, m.Message)
	}
	assert.Len(t, seen, total)
}

func TestRouter_SendInFlightSurvivesDisconnect(t *testing.T) {
	h := newHarness(t, enum.DeliveryRoom)
	ctx := context.Background()
	eventID := h.s.Event.ID
	hub := h.router.Hub()

	student, studentConn := h.connect(h.s.Student1)
	require.NoError(t, h.router.Join(ctx, student, eventID))
	requireHistory(t, studentConn.next(t))

	org, orgConn := h.connect(h.s.Organizer)
	require.NoError(t, h.router.Join(ctx, org, eventID))
	requireHistory(t, orgConn.next(t))

	release := holdRoom(t, hub, eventID)
	result := make(chan error, 1)
	go func() {
		result <- h.router.Send(ctx, student, req.SendMessageRequest{
			EventID: eventID, ReceiverID: h.s.Organizer.ID, Message: "sent before leaving",
		})
	}()
	waitForRoomWaiters(t, hub, eventID, 2)

	h.router.Disconnect(student)
	require.True(t, student.Closed())
	require.Equal(t, 1, hub.Members(eventID))
	release()

	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(waitFor):
		t.Fatal("send did not complete")
	}

	msg := requireNewMessage(t, orgConn.next(t))
	assert.Equal(t, h.s.Student1.ID, msg.SenderID)
	assert.Equal(t, "sent before leaving", msg.Message)
	assert.EqualValues(t, 1, h.messageCount(t))
	studentConn.expectSilence(t)
}

func mustFrame(t *testing.T, event enum.WsEvent, data interface{}) []byte {
	t.Helper()
	payload, err := json.Marshal(data)
	require.NoError(t, err)
	raw, err := json.Marshal(dto.InboundEvent{Event: event, Data: payload})
	require.NoError(t, err)
	return raw
}
