package chatclient

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	// ErrEmptyMessage rejects whitespace-only outgoing text.
	ErrEmptyMessage = errors.New("empty message")
	// ErrDefaultRoom rejects leaving the always-joined default room.
	ErrDefaultRoom = errors.New("cannot leave default room")
)

// UserAction is the closed set of triggers the rendering layer may fire.
// Each variant maps to one Dispatcher method, decoupling action semantics
// from any specific input widget.
type UserAction interface {
	userAction()
}

type SendMessageAction struct{ Text string }
type CreateRoomAction struct{ Name string }
type JoinRoomAction struct{ Name string }
type LeaveRoomAction struct{ Name string }
type SwitchRoomAction struct{ Name string }
type StartPrivateChatAction struct{ Peer string }
type ExitPrivateChatAction struct{}

func (SendMessageAction) userAction()      {}
func (CreateRoomAction) userAction()       {}
func (JoinRoomAction) userAction()         {}
func (LeaveRoomAction) userAction()        {}
func (SwitchRoomAction) userAction()       {}
func (StartPrivateChatAction) userAction() {}
func (ExitPrivateChatAction) userAction()  {}

// Dispatcher maps user actions to outbound events. All sends are
// fire-and-forget: no acknowledgement, retry or timeout. The authoritative
// outcome is whatever the next snapshot event says.
type Dispatcher struct {
	session *SessionContext
	emitter Emitter

	Slogger *slog.Logger
}

func NewDispatcher(session *SessionContext, emitter Emitter, slogger *slog.Logger) *Dispatcher {
	if slogger == nil {
		slogger = slog.Default()
	}
	return &Dispatcher{
		session: session,
		emitter: emitter,
		Slogger: slogger,
	}
}

// Do runs one user action. Errors report local rejections only.
func (d *Dispatcher) Do(action UserAction) error {
	switch action := action.(type) {
	case SendMessageAction:
		return d.SendMessage(action.Text)
	case CreateRoomAction:
		d.CreateRoom(action.Name)
	case JoinRoomAction:
		d.JoinRoom(action.Name)
	case LeaveRoomAction:
		return d.LeaveRoom(action.Name)
	case SwitchRoomAction:
		d.SwitchRoom(action.Name)
	case StartPrivateChatAction:
		d.StartPrivateChat(action.Peer)
	case ExitPrivateChatAction:
		d.ExitPrivateChat()
	default:
		return fmt.Errorf("unhandled user action %T", action)
	}
	return nil
}

// SendMessage routes text to the active view: a private message when a
// private chat is open, otherwise a room message with no room name.
func (d *Dispatcher) SendMessage(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}
	if view := d.session.State.View(); view.Kind == PrivateView {
		d.emitter.Emit(SendPrivateMessage{To: view.Peer, Text: text})
		return nil
	}
	d.emitter.Emit(SendChatMessage{Text: text})
	return nil
}

func (d *Dispatcher) CreateRoom(name string) {
	d.emitter.Emit(CreateRoom{Name: name})
}

func (d *Dispatcher) JoinRoom(name string) {
	d.emitter.Emit(JoinRoom{Name: name})
}

// LeaveRoom rejects the default room locally; no event is emitted.
func (d *Dispatcher) LeaveRoom(name string) error {
	if name == DefaultRoom {
		d.Slogger.Debug("refusing to leave default room")
		return ErrDefaultRoom
	}
	d.emitter.Emit(LeaveRoom{Name: name})
	return nil
}

func (d *Dispatcher) SwitchRoom(name string) {
	d.session.State.EnterRoom(name)
}

func (d *Dispatcher) StartPrivateChat(peer string) {
	d.session.State.EnterPrivateChat(peer)
}

func (d *Dispatcher) ExitPrivateChat() {
	d.session.State.ExitPrivateChat()
}
