package chatclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Wire event names, shared by both directions where the shapes overlap
// (a chat_message from the server carries room/user/time, an outbound one
// only text).
const (
	EvOnlineUsers        = "online_users"
	EvChatMessage        = "chat_message"
	EvPrivateMessage     = "private_message"
	EvRoomsList          = "rooms_list"
	EvJoinedRooms        = "joined_rooms"
	EvRoomHistory        = "room_history"
	EvPrivateHistory     = "private_history"
	EvPrivateChats       = "private_chats"
	EvSystemMessage      = "system_message"
	EvCreateRoom         = "create_room"
	EvJoinRoom           = "join_room"
	EvLeaveRoom          = "leave_room"
	EvSwitchRoom         = "switch_room"
	EvLoadPrivateHistory = "load_private_history"
)

// envelope is the wire frame: {"event": <name>, "data": <payload>}.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

var ErrUnknownEvent = errors.New("unknown event")

// ServerEvent is the closed set of inbound events. The router matches it
// exhaustively; an event name outside the set fails to decode instead of
// being silently ignored.
type ServerEvent interface {
	serverEvent()
}

type OnlineUsersEvent struct {
	Users []string
}

type ChatMessageEvent struct {
	Room string `json:"room"`
	User string `json:"user"`
	Text string `json:"text"`
	Time string `json:"time"`
}

type PrivateMessageEvent struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
	Time string `json:"time"`
}

type RoomsListEvent struct {
	Rooms []DiscoverableRoom
}

type JoinedRoomsEvent struct {
	Rooms []string
}

type RoomHistoryEvent struct {
	Room    string             `json:"room"`
	History []ChatMessageEvent `json:"history"`
}

type PrivateHistoryEvent struct {
	History []PrivateMessageEvent `json:"history"`
}

type PrivateChatsEvent struct {
	Chats []Conversation
}

type SystemMessageEvent struct {
	Text string `json:"text"`
}

func (OnlineUsersEvent) serverEvent()    {}
func (ChatMessageEvent) serverEvent()    {}
func (PrivateMessageEvent) serverEvent() {}
func (RoomsListEvent) serverEvent()      {}
func (JoinedRoomsEvent) serverEvent()    {}
func (RoomHistoryEvent) serverEvent()    {}
func (PrivateHistoryEvent) serverEvent() {}
func (PrivateChatsEvent) serverEvent()   {}
func (SystemMessageEvent) serverEvent()  {}

// ParseServerEvent decodes one wire frame into its typed event.
func ParseServerEvent(raw []byte) (ServerEvent, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	switch env.Event {
	case EvOnlineUsers:
		var users []string
		if err := decodeData(env, &users); err != nil {
			return nil, err
		}
		return OnlineUsersEvent{Users: users}, nil
	case EvChatMessage:
		var ev ChatMessageEvent
		if err := decodeData(env, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case EvPrivateMessage:
		var ev PrivateMessageEvent
		if err := decodeData(env, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case EvRoomsList:
		var rooms []DiscoverableRoom
		if err := decodeData(env, &rooms); err != nil {
			return nil, err
		}
		return RoomsListEvent{Rooms: rooms}, nil
	case EvJoinedRooms:
		var rooms []string
		if err := decodeData(env, &rooms); err != nil {
			return nil, err
		}
		return JoinedRoomsEvent{Rooms: rooms}, nil
	case EvRoomHistory:
		var ev RoomHistoryEvent
		if err := decodeData(env, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case EvPrivateHistory:
		var ev PrivateHistoryEvent
		if err := decodeData(env, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case EvPrivateChats:
		var chats []Conversation
		if err := decodeData(env, &chats); err != nil {
			return nil, err
		}
		return PrivateChatsEvent{Chats: chats}, nil
	case EvSystemMessage:
		var ev SystemMessageEvent
		if err := decodeData(env, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Event)
	}
}

func decodeData(env envelope, target any) error {
	if err := json.Unmarshal(env.Data, target); err != nil {
		return fmt.Errorf("decode %s data: %w", env.Event, err)
	}
	return nil
}

// ClientEvent is the closed set of outbound events. All sends are
// fire-and-forget; the server never acknowledges them directly.
type ClientEvent interface {
	eventName() string
}

// SendChatMessage carries no room name. The server resolves the room from
// the user's session, never from client-supplied data.
type SendChatMessage struct {
	Text string `json:"text"`
}

type SendPrivateMessage struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

type CreateRoom struct {
	Name string `json:"name"`
}

type JoinRoom struct {
	Name string `json:"name"`
}

type LeaveRoom struct {
	Name string `json:"name"`
}

// SwitchRoom doubles as the room history fetch: the server answers with a
// room_history snapshot for the named room.
type SwitchRoom struct {
	Name string `json:"name"`
}

type LoadPrivateHistory struct {
	Peer string `json:"peer"`
}

func (SendChatMessage) eventName() string    { return EvChatMessage }
func (SendPrivateMessage) eventName() string { return EvPrivateMessage }
func (CreateRoom) eventName() string         { return EvCreateRoom }
func (JoinRoom) eventName() string           { return EvJoinRoom }
func (LeaveRoom) eventName() string          { return EvLeaveRoom }
func (SwitchRoom) eventName() string         { return EvSwitchRoom }
func (LoadPrivateHistory) eventName() string { return EvLoadPrivateHistory }

// EncodeClientEvent wraps an outbound event in the wire envelope.
func EncodeClientEvent(ev ClientEvent) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode %s data: %w", ev.eventName(), err)
	}
	raw, err := json.Marshal(envelope{Event: ev.eventName(), Data: data})
	if err != nil {
		return nil, fmt.Errorf("encode %s envelope: %w", ev.eventName(), err)
	}
	return raw, nil
}

// Emitter is the outbound half of the transport as seen by the core.
// Implementations must not block the event loop.
type Emitter interface {
	Emit(ev ClientEvent)
}
