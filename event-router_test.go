package chatclient

import (
	"strings"
	"sync"
	"testing"
)

// mockRenderer records every call so tests can assert both content and
// ordering (history snapshots must clear before repopulating).
type mockRenderer struct {
	mu       sync.Mutex
	calls    []string
	messages []Message
	notices  []string
	users    []OnlineUser
	joined   []string
	catalog  []DiscoverableRoom
	convs    []Conversation
}

func newMockRenderer() *mockRenderer {
	return &mockRenderer{}
}

func (r *mockRenderer) ClearMessages() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "clear")
	r.messages = nil
}

func (r *mockRenderer) AppendMessage(msg Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "append")
	r.messages = append(r.messages, msg)
}

func (r *mockRenderer) ShowSystemNotice(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "notice")
	r.notices = append(r.notices, text)
}

func (r *mockRenderer) ShowOnlineUsers(users []OnlineUser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "users")
	r.users = users
}

func (r *mockRenderer) ShowJoinedRooms(rooms []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "rooms")
	r.joined = rooms
}

func (r *mockRenderer) ShowDiscoverableRooms(rooms []DiscoverableRoom) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "catalog")
	r.catalog = rooms
}

func (r *mockRenderer) ShowConversations(convs []Conversation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "convs")
	r.convs = convs
}

func (r *mockRenderer) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

func (r *mockRenderer) Notices() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.notices...)
}

func (r *mockRenderer) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// setupRouter wires a router for "alice" with recording collaborators.
func setupRouter(t *testing.T) (*Router, *SessionContext, *mockRenderer, *recordingEmitter) {
	t.Helper()
	emitter := &recordingEmitter{}
	renderer := newMockRenderer()
	session := NewSessionContext("alice", emitter, nil)
	return NewRouter(session, renderer, nil), session, renderer, emitter
}

func TestRouter_RoomMessageFiltering(t *testing.T) {
	t.Run("message for the active room renders", func(t *testing.T) {
		router, _, renderer, _ := setupRouter(t)

		router.Handle(ChatMessageEvent{Room: "general", User: "bob", Text: "hi", Time: "10:00"})

		msgs := renderer.Messages()
		if len(msgs) != 1 {
			t.Fatalf("rendered %d messages, want 1", len(msgs))
		}
		want := Message{Author: "bob", Text: "hi", Time: "10:00", Scope: ScopeRoom, Room: "general"}
		if msgs[0] != want {
			t.Errorf("message = %+v, want %+v", msgs[0], want)
		}
	})

	t.Run("message for another room is dropped", func(t *testing.T) {
		router, _, renderer, _ := setupRouter(t)

		router.Handle(ChatMessageEvent{Room: "random", User: "bob", Text: "hi", Time: "10:00"})

		if n := len(renderer.Messages()); n != 0 {
			t.Errorf("rendered %d messages, want 0", n)
		}
		if n := len(renderer.Notices()); n != 0 {
			t.Errorf("room messages never notify, got %d notices", n)
		}
	})

	t.Run("room message is dropped while a private chat is open", func(t *testing.T) {
		router, session, renderer, _ := setupRouter(t)
		session.State.EnterPrivateChat("carol")

		router.Handle(ChatMessageEvent{Room: "general", User: "bob", Text: "hi", Time: "10:00"})

		if n := len(renderer.Messages()); n != 0 {
			t.Errorf("rendered %d messages, want 0", n)
		}
	})
}

func TestRouter_PrivateMessage(t *testing.T) {
	t.Run("outside the active view it notifies and promotes", func(t *testing.T) {
		router, session, renderer, _ := setupRouter(t)

		router.Handle(PrivateMessageEvent{From: "carol", To: "alice", Text: "hey", Time: "10:01"})

		if n := len(renderer.Messages()); n != 0 {
			t.Errorf("rendered %d messages, want 0", n)
		}
		notices := renderer.Notices()
		if len(notices) != 1 {
			t.Fatalf("got %d notices, want 1", len(notices))
		}
		if !strings.Contains(notices[0], "carol") || !strings.Contains(notices[0], "hey") {
			t.Errorf("notice %q should carry author and text", notices[0])
		}
		convs := session.Lists.Conversations()
		if len(convs) != 1 || convs[0].Peer != "carol" {
			t.Errorf("conversations = %+v, want carol at position 0", convs)
		}
	})

	t.Run("inside the matching view it renders", func(t *testing.T) {
		router, session, renderer, _ := setupRouter(t)
		session.State.EnterPrivateChat("carol")

		router.Handle(PrivateMessageEvent{From: "carol", To: "alice", Text: "hey", Time: "10:01"})

		msgs := renderer.Messages()
		if len(msgs) != 1 {
			t.Fatalf("rendered %d messages, want 1", len(msgs))
		}
		if msgs[0].Scope != ScopePrivate || msgs[0].Peer != "carol" || msgs[0].Author != "carol" {
			t.Errorf("message = %+v, want private from carol", msgs[0])
		}
		if n := len(renderer.Notices()); n != 0 {
			t.Errorf("matching private message must not notify, got %d", n)
		}
	})

	t.Run("own echoed message renders in the matching view", func(t *testing.T) {
		router, session, renderer, _ := setupRouter(t)
		session.State.EnterPrivateChat("carol")

		router.Handle(PrivateMessageEvent{From: "alice", To: "carol", Text: "hi back", Time: "10:02"})

		msgs := renderer.Messages()
		if len(msgs) != 1 {
			t.Fatalf("rendered %d messages, want 1", len(msgs))
		}
		if msgs[0].Author != "alice" || msgs[0].Peer != "carol" {
			t.Errorf("message = %+v, want author alice peer carol", msgs[0])
		}
	})

	t.Run("message in another private chat notifies", func(t *testing.T) {
		router, session, renderer, _ := setupRouter(t)
		session.State.EnterPrivateChat("dave")

		router.Handle(PrivateMessageEvent{From: "carol", To: "alice", Text: "hey", Time: "10:01"})

		if n := len(renderer.Messages()); n != 0 {
			t.Errorf("rendered %d messages, want 0", n)
		}
		if n := len(renderer.Notices()); n != 1 {
			t.Errorf("got %d notices, want 1", n)
		}
	})

	t.Run("repeated sender promotes once", func(t *testing.T) {
		router, session, _, _ := setupRouter(t)

		router.Handle(PrivateMessageEvent{From: "carol", To: "alice", Text: "hey", Time: "10:01"})
		router.Handle(PrivateMessageEvent{From: "carol", To: "alice", Text: "again", Time: "10:02"})
		router.Handle(PrivateMessageEvent{From: "dave", To: "alice", Text: "yo", Time: "10:03"})

		convs := session.Lists.Conversations()
		if len(convs) != 2 {
			t.Fatalf("conversations = %+v, want 2 entries", convs)
		}
		if convs[0].Peer != "dave" || convs[1].Peer != "carol" {
			t.Errorf("order = %+v, want most recent peer first", convs)
		}
	})
}

func TestRouter_Snapshots(t *testing.T) {
	t.Run("system message always renders", func(t *testing.T) {
		router, session, renderer, _ := setupRouter(t)
		session.State.EnterPrivateChat("carol")

		router.Handle(SystemMessageEvent{Text: "bob joined"})

		if notices := renderer.Notices(); len(notices) != 1 || notices[0] != "bob joined" {
			t.Errorf("notices = %+v, want [bob joined]", notices)
		}
	})

	t.Run("online users tag self", func(t *testing.T) {
		router, _, renderer, _ := setupRouter(t)

		router.Handle(OnlineUsersEvent{Users: []string{"bob", "alice"}})

		want := []OnlineUser{{Name: "bob"}, {Name: "alice", Self: true}}
		if len(renderer.users) != 2 || renderer.users[0] != want[0] || renderer.users[1] != want[1] {
			t.Errorf("users = %+v, want %+v", renderer.users, want)
		}
	})

	t.Run("joined rooms snapshot keeps default room", func(t *testing.T) {
		router, session, renderer, _ := setupRouter(t)

		router.Handle(JoinedRoomsEvent{Rooms: []string{"random"}})

		joined := session.Lists.JoinedRooms()
		if joined[0] != DefaultRoom {
			t.Errorf("joined = %+v, want default room present", joined)
		}
		if len(renderer.joined) != len(joined) {
			t.Errorf("renderer saw %d rooms, lists hold %d", len(renderer.joined), len(joined))
		}
	})

	t.Run("room history clears pane then repopulates and confirms room", func(t *testing.T) {
		router, session, renderer, emitter := setupRouter(t)

		router.Handle(RoomHistoryEvent{
			Room: "random",
			History: []ChatMessageEvent{
				{User: "bob", Text: "old", Time: "09:00"},
				{User: "carol", Text: "older", Time: "09:01"},
			},
		})

		if view := session.State.View(); view.Kind != RoomView || view.Room != "random" {
			t.Errorf("view = %+v, want RoomView random", view)
		}
		calls := renderer.Calls()
		if len(calls) != 3 || calls[0] != "clear" || calls[1] != "append" || calls[2] != "append" {
			t.Errorf("calls = %v, want clear before appends", calls)
		}
		if len(emitter.events) != 0 {
			t.Errorf("history snapshot must not emit, got %+v", emitter.events)
		}
	})

	t.Run("private history clears pane and renders as private", func(t *testing.T) {
		router, session, renderer, _ := setupRouter(t)
		session.State.EnterPrivateChat("carol")

		router.Handle(PrivateHistoryEvent{
			History: []PrivateMessageEvent{
				{From: "carol", To: "alice", Text: "hey", Time: "09:30"},
				{From: "alice", To: "carol", Text: "hi", Time: "09:31"},
			},
		})

		msgs := renderer.Messages()
		if len(msgs) != 2 {
			t.Fatalf("rendered %d messages, want 2", len(msgs))
		}
		for _, msg := range msgs {
			if msg.Scope != ScopePrivate || msg.Peer != "carol" {
				t.Errorf("message = %+v, want private with peer carol", msg)
			}
		}
		if calls := renderer.Calls(); calls[len(calls)-3] != "clear" {
			t.Errorf("calls = %v, want clear before appends", calls)
		}
	})

	t.Run("conversation snapshot overrides promotions", func(t *testing.T) {
		router, session, _, _ := setupRouter(t)
		router.Handle(PrivateMessageEvent{From: "carol", To: "alice", Text: "hey", Time: "10:01"})

		router.Handle(PrivateChatsEvent{Chats: []Conversation{
			{Peer: "erin", LastTime: "10:05:00"},
		}})

		convs := session.Lists.Conversations()
		if len(convs) != 1 || convs[0].Peer != "erin" {
			t.Errorf("conversations = %+v, want snapshot only", convs)
		}
	})
}

func TestRouter_HandleRaw(t *testing.T) {
	router, _, renderer, _ := setupRouter(t)

	if err := router.HandleRaw([]byte(`{"event":"system_message","data":{"text":"hello"}}`)); err != nil {
		t.Fatalf("HandleRaw() error: %v", err)
	}
	if notices := renderer.Notices(); len(notices) != 1 {
		t.Errorf("notices = %+v, want 1", notices)
	}

	if err := router.HandleRaw([]byte(`{"event":"typing","data":{}}`)); err == nil {
		t.Error("HandleRaw() expected error for unknown event")
	}
}

// The full walkthrough: alice loads, watches general, misses random, then
// follows carol into a private chat.
func TestRouter_SessionWalkthrough(t *testing.T) {
	router, session, renderer, emitter := setupRouter(t)

	router.Handle(ChatMessageEvent{Room: "general", User: "bob", Text: "hi", Time: "10:00"})
	if n := len(renderer.Messages()); n != 1 {
		t.Fatalf("general message should render, got %d", n)
	}

	router.Handle(ChatMessageEvent{Room: "random", User: "bob", Text: "psst", Time: "10:00"})
	if n := len(renderer.Messages()); n != 1 {
		t.Fatalf("random message should drop, got %d", n)
	}

	router.Handle(PrivateMessageEvent{From: "carol", To: "alice", Text: "hey", Time: "10:01"})
	if n := len(renderer.Notices()); n != 1 {
		t.Fatalf("private message should notify, got %d notices", n)
	}
	if convs := session.Lists.Conversations(); len(convs) != 1 || convs[0].Peer != "carol" {
		t.Fatalf("conversations = %+v, want carol at position 0", convs)
	}

	session.State.EnterPrivateChat("carol")
	if got, want := emitter.last(t), (LoadPrivateHistory{Peer: "carol"}); got != want {
		t.Fatalf("emitted %+v, want %+v", got, want)
	}

	router.Handle(PrivateMessageEvent{From: "carol", To: "alice", Text: "there?", Time: "10:02"})
	msgs := renderer.Messages()
	if len(msgs) != 2 || msgs[1].Scope != ScopePrivate {
		t.Fatalf("in-view private message should render, got %+v", msgs)
	}
	if n := len(renderer.Notices()); n != 1 {
		t.Fatalf("no extra notice expected, got %d", n)
	}
}
