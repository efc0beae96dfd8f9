package chatclient

import "log/slog"

type ViewKind int8

const (
	RoomView ViewKind = iota
	PrivateView
)

func (v ViewKind) String() string {
	switch v {
	case RoomView:
		return "RoomView"
	case PrivateView:
		return "PrivateView"
	default:
		return "Unknown"
	}
}

// ViewState is the single active display context: one room or one private
// peer. There is no "no active context" state.
type ViewState struct {
	Kind ViewKind
	Room string // set when Kind == RoomView
	Peer string // set when Kind == PrivateView
}

// SessionState is the view-state machine. The current room name is retained
// while in a private view so ExitPrivateChat can restore it without a server
// round trip. Only the client event loop writes it.
type SessionState struct {
	view     ViewState
	lastRoom string

	emitter Emitter
	Slogger *slog.Logger
}

func NewSessionState(emitter Emitter, slogger *slog.Logger) *SessionState {
	if slogger == nil {
		slogger = slog.Default()
	}
	return &SessionState{
		view:     ViewState{Kind: RoomView, Room: DefaultRoom},
		lastRoom: DefaultRoom,
		emitter:  emitter,
		Slogger:  slogger,
	}
}

func (s *SessionState) View() ViewState {
	return s.view
}

// EnterRoom makes room the active view and asks the server for its history.
func (s *SessionState) EnterRoom(room string) {
	s.Slogger.Debug("enter room", "room", room)
	s.view = ViewState{Kind: RoomView, Room: room}
	s.lastRoom = room
	s.emitter.Emit(SwitchRoom{Name: room})
}

// EnterPrivateChat makes peer the active view and asks the server for the
// conversation history.
func (s *SessionState) EnterPrivateChat(peer string) {
	s.Slogger.Debug("enter private chat", "peer", peer)
	if s.view.Kind == RoomView {
		s.lastRoom = s.view.Room
	}
	s.view = ViewState{Kind: PrivateView, Peer: peer}
	s.emitter.Emit(LoadPrivateHistory{Peer: peer})
}

// ExitPrivateChat restores the room that was active before the last
// EnterPrivateChat, re-emitting the same history fetch as EnterRoom.
func (s *SessionState) ExitPrivateChat() {
	s.Slogger.Debug("exit private chat", "room", s.lastRoom)
	s.EnterRoom(s.lastRoom)
}

// SetRoom records a server-confirmed room without emitting another fetch.
// Used when a room_history snapshot names the room itself.
func (s *SessionState) SetRoom(room string) {
	s.view = ViewState{Kind: RoomView, Room: room}
	s.lastRoom = room
}
