// Package hub fans out real-time game events to subscribed sessions.
//
// It mirrors the actor model of the original GameBroadcaster: a single
// goroutine owns all subscription state and processes commands off a
// channel, so no locking is needed around the subscription maps. Each
// session gets a bounded mailbox; a slow consumer has events dropped rather
// than blocking the broadcaster (spec §5 Event hub).
package hub

import (
	"context"

	"github.com/google/uuid"
	"github.com/seekerror/logw"
)

// mailboxSize bounds how many pending events a session can accumulate
// before the hub starts dropping its oldest undelivered event.
const mailboxSize = 32

// Event is pushed to every session subscribed to a game.
type Event struct {
	GameID  uuid.UUID
	Type    string // "game_updated", "game_created", "game_deleted"
	Payload []byte // JSON-encoded event body
}

// Session is a single connected client's mailbox.
type Session struct {
	ID     uuid.UUID
	events chan Event
}

// Events returns the channel the session should range over to receive
// pushed events.
func (s *Session) Events() <-chan Event { return s.events }

type command struct {
	kind      commandKind
	sessionID uuid.UUID
	gameID    uuid.UUID
	event     Event
	reply     chan *Session
}

type commandKind int

const (
	cmdConnect commandKind = iota
	cmdDisconnect
	cmdSubscribe
	cmdUnsubscribe
	cmdBroadcast
)

// Hub is the central event fan-out actor. It must be started with Run
// before use.
type Hub struct {
	commands chan command
}

// New creates a Hub. Call Run in its own goroutine to start processing.
func New() *Hub {
	return &Hub{commands: make(chan command, 256)}
}

// Run processes commands until ctx is cancelled. It owns all subscriber
// state and must run in exactly one goroutine.
func (h *Hub) Run(ctx context.Context) {
	sessions := make(map[uuid.UUID]*Session)
	subscriptions := make(map[uuid.UUID]map[uuid.UUID]bool)

	for {
		select {
		case <-ctx.Done():
			return

		case cmd := <-h.commands:
			switch cmd.kind {
			case cmdConnect:
				logw.Debugf(ctx, "session %v connected to hub", cmd.sessionID)
				s := &Session{ID: cmd.sessionID, events: make(chan Event, mailboxSize)}
				sessions[cmd.sessionID] = s
				cmd.reply <- s

			case cmdDisconnect:
				logw.Debugf(ctx, "session %v disconnected from hub", cmd.sessionID)
				if s, ok := sessions[cmd.sessionID]; ok {
					close(s.events)
					delete(sessions, cmd.sessionID)
				}
				for gameID, subs := range subscriptions {
					delete(subs, cmd.sessionID)
					if len(subs) == 0 {
						delete(subscriptions, gameID)
					}
				}

			case cmdSubscribe:
				logw.Debugf(ctx, "session %v subscribed to game %v", cmd.sessionID, cmd.gameID)
				subs, ok := subscriptions[cmd.gameID]
				if !ok {
					subs = make(map[uuid.UUID]bool)
					subscriptions[cmd.gameID] = subs
				}
				subs[cmd.sessionID] = true

			case cmdUnsubscribe:
				logw.Debugf(ctx, "session %v unsubscribed from game %v", cmd.sessionID, cmd.gameID)
				if subs, ok := subscriptions[cmd.gameID]; ok {
					delete(subs, cmd.sessionID)
					if len(subs) == 0 {
						delete(subscriptions, cmd.gameID)
					}
				}

			case cmdBroadcast:
				subs := subscriptions[cmd.event.GameID]
				for sessionID := range subs {
					s, ok := sessions[sessionID]
					if !ok {
						continue
					}
					deliver(ctx, s, cmd.event)
				}
			}
		}
	}
}

// deliver pushes an event to a session's mailbox, dropping the oldest
// pending event if the mailbox is full rather than blocking the hub on a
// stalled consumer.
func deliver(ctx context.Context, s *Session, ev Event) {
	select {
	case s.events <- ev:
		return
	default:
	}

	select {
	case <-s.events:
	default:
	}

	select {
	case s.events <- ev:
	default:
		logw.Warningf(ctx, "dropped event %v for game %v: session %v mailbox full", ev.Type, ev.GameID, s.ID)
	}
}

// Connect registers a new session and returns its mailbox.
func (h *Hub) Connect(sessionID uuid.UUID) *Session {
	reply := make(chan *Session, 1)
	h.commands <- command{kind: cmdConnect, sessionID: sessionID, reply: reply}
	return <-reply
}

// Disconnect unregisters a session and closes its mailbox.
func (h *Hub) Disconnect(sessionID uuid.UUID) {
	h.commands <- command{kind: cmdDisconnect, sessionID: sessionID}
}

// Subscribe adds a session to a game's subscriber set.
func (h *Hub) Subscribe(sessionID, gameID uuid.UUID) {
	h.commands <- command{kind: cmdSubscribe, sessionID: sessionID, gameID: gameID}
}

// Unsubscribe removes a session from a game's subscriber set.
func (h *Hub) Unsubscribe(sessionID, gameID uuid.UUID) {
	h.commands <- command{kind: cmdUnsubscribe, sessionID: sessionID, gameID: gameID}
}

// Broadcast pushes an event to every session subscribed to ev.GameID.
func (h *Hub) Broadcast(ev Event) {
	h.commands <- command{kind: cmdBroadcast, event: ev}
}
