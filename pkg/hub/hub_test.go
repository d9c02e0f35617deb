package hub_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/herohde/checkai/pkg/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *hub.Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := hub.New()
	go h.Run(ctx)
	return h
}

func recvWithTimeout(t *testing.T, s *hub.Session) hub.Event {
	t.Helper()
	select {
	case ev := <-s.Events():
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return hub.Event{}
	}
}

func TestSubscribeReceivesBroadcast(t *testing.T) {
	h := startHub(t)

	sessionID := uuid.New()
	gameID := uuid.New()

	s := h.Connect(sessionID)
	h.Subscribe(sessionID, gameID)

	h.Broadcast(hub.Event{GameID: gameID, Type: "game_updated", Payload: []byte(`{}`)})

	ev := recvWithTimeout(t, s)
	assert.Equal(t, gameID, ev.GameID)
	assert.Equal(t, "game_updated", ev.Type)
}

func TestUnsubscribedSessionDoesNotReceive(t *testing.T) {
	h := startHub(t)

	sessionID := uuid.New()
	gameID := uuid.New()

	s := h.Connect(sessionID)
	h.Subscribe(sessionID, gameID)
	h.Unsubscribe(sessionID, gameID)

	h.Broadcast(hub.Event{GameID: gameID, Type: "game_updated"})

	select {
	case ev := <-s.Events():
		t.Fatalf("unexpected event after unsubscribe: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDisconnectClosesMailbox(t *testing.T) {
	h := startHub(t)

	sessionID := uuid.New()
	s := h.Connect(sessionID)
	h.Disconnect(sessionID)

	require.Eventually(t, func() bool {
		_, ok := <-s.Events()
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestBroadcastOnlyReachesSubscribers(t *testing.T) {
	h := startHub(t)

	gameA := uuid.New()
	gameB := uuid.New()

	sA := h.Connect(uuid.New())
	sB := h.Connect(uuid.New())

	h.Subscribe(uuid.New(), gameA) // different session, irrelevant
	idA := uuid.New()
	h.Disconnect(idA) // no-op, never connected

	h.Subscribe(sA.ID, gameA)
	h.Subscribe(sB.ID, gameB)

	h.Broadcast(hub.Event{GameID: gameA, Type: "game_updated"})

	ev := recvWithTimeout(t, sA)
	assert.Equal(t, gameA, ev.GameID)

	select {
	case ev := <-sB.Events():
		t.Fatalf("session subscribed to a different game received an event: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMailboxDropsOldestUnderBackpressure(t *testing.T) {
	h := startHub(t)

	sessionID := uuid.New()
	gameID := uuid.New()
	s := h.Connect(sessionID)
	h.Subscribe(sessionID, gameID)

	for i := 0; i < 100; i++ {
		h.Broadcast(hub.Event{GameID: gameID, Type: "game_updated", Payload: []byte(strconv.Itoa(i))})
	}

	// The hub must keep processing commands without blocking even though
	// nothing ever drains the session's mailbox. Connect waits for the hub's
	// reply, so it returns only after every broadcast above was handled.
	h.Connect(uuid.New())

	// The mailbox holds 32 events: the newest ones, 68 through 99.
	require.Len(t, s.Events(), 32)
	first := <-s.Events()
	assert.Equal(t, "68", string(first.Payload))
}
